package handlers

import (
	"fmt"
	"net/http"

	"go-pos-admin/internal/database"
	"go-pos-admin/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// ProvisionRequest is what the super admin sends to onboard a tenant.
type ProvisionRequest struct {
	BusinessName    string   `json:"business_name" binding:"required"`
	OwnerUsername   string   `json:"owner_username" binding:"required"`
	Password        string   `json:"password" binding:"required"`
	ConfirmPassword string   `json:"confirm_password" binding:"required"`
	BranchCount     int      `json:"branch_count"`
	BranchNames     []string `json:"branch_names"`
	CurrencyCode    string   `json:"currency_code"`
}

// ProvisionBusiness creates a tenant: the business record, its branches
// and the owner account, all in one database transaction. The owner is
// attached to the first branch.
func ProvisionBusiness(c *gin.Context) {
	var req ProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	// Validation happens BEFORE anything is written.
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password confirmation does not match"})
		return
	}
	branchNames := req.BranchNames
	if len(branchNames) == 0 {
		if req.BranchCount < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Branch count must be at least 1"})
			return
		}
		for i := 1; i <= req.BranchCount; i++ {
			branchNames = append(branchNames, fmt.Sprintf("Cabang %d", i))
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	currencyCode := req.CurrencyCode
	if currencyCode == "" {
		currencyCode = "IDR"
	}

	biz := models.Business{
		Name:            req.BusinessName,
		CurrencyCode:    currencyCode,
		DebtMethodLabel: "Utang",
		Units:           []string{"pcs", "kg", "liter"},
		PaymentMethods:  []string{"Cash", "QRIS", "Utang"},
		PaperSize:       "58mm",
	}

	tx := database.DB.Begin()

	if err := tx.Create(&biz).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create business"})
		return
	}

	branches := make([]models.Branch, 0, len(branchNames))
	for _, name := range branchNames {
		branches = append(branches, models.Branch{BusinessID: biz.ID, Name: name})
	}
	if err := tx.Create(&branches).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create branches"})
		return
	}

	owner := models.User{
		BusinessID:   biz.ID,
		BranchID:     branches[0].ID,
		Username:     req.OwnerUsername,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleAdmin,
	}
	if err := tx.Create(&owner).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Owner username is already taken"})
		return
	}

	tx.Commit()

	biz.Branches = branches
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Business provisioned successfully!",
		"business": biz,
		"owner":    owner,
	})
}

// GetBusinesses lists every tenant for the super admin console.
func GetBusinesses(c *gin.Context) {
	var businesses []models.Business
	if err := database.DB.Preload("Branches").Find(&businesses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch businesses"})
		return
	}
	c.JSON(http.StatusOK, businesses)
}

// GetSettings returns the caller's business configuration (currency,
// tax, units, payment methods, paper size).
func GetSettings(c *gin.Context) {
	businessID, _ := tenantScope(c)

	var biz models.Business
	if err := database.DB.First(&biz, businessID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return
	}
	c.JSON(http.StatusOK, biz)
}

// UpdateSettings applies a partial settings update and returns the FULL
// business record so the client reloads its cached configuration
// wholesale instead of patching it incrementally.
func UpdateSettings(c *gin.Context) {
	businessID, _ := tenantScope(c)

	var biz models.Business
	if err := database.DB.First(&biz, businessID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return
	}

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	// Identity fields are not settings.
	delete(updateData, "id")
	delete(updateData, "branches")

	if err := database.DB.Model(&biz).Updates(updateData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully", "business": biz})
}

// CreateStaff lets a business admin add a cashier account on a branch of
// their own business.
func CreateStaff(c *gin.Context) {
	businessID, branchID := tenantScope(c)

	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		BranchID uint   `json:"branch_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	targetBranch := req.BranchID
	if targetBranch == 0 {
		targetBranch = branchID
	}
	// The branch must belong to the caller's business.
	var branch models.Branch
	if err := database.DB.Where("id = ? AND business_id = ?", targetBranch, businessID).First(&branch).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Branch does not belong to your business"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		BusinessID:   businessID,
		BranchID:     targetBranch,
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleStaff,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User likely already exists"})
		return
	}

	c.JSON(http.StatusCreated, user)
}
