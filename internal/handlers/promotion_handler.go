package handlers

import (
	"net/http"
	"strconv"
	"time"

	"go-pos-admin/internal/database"
	"go-pos-admin/internal/models"
	"go-pos-admin/internal/pricing"

	"github.com/gin-gonic/gin"
)

// promotionView decorates the stored record with its derived status.
// Status is recomputed on every read against the request time.
type promotionView struct {
	models.Promotion
	Status pricing.PromoStatus `json:"status"`
}

func decoratePromotions(promos []models.Promotion, now time.Time) []promotionView {
	views := make([]promotionView, 0, len(promos))
	for _, p := range promos {
		views = append(views, promotionView{
			Promotion: p,
			Status:    pricing.PromotionStatus(now, p.StartDate, p.EndDate),
		})
	}
	return views
}

// --- GET: List the branch's promotions ---
func GetPromotions(c *gin.Context) {
	businessID, branchID := tenantScope(c)

	var promos []models.Promotion
	err := database.DB.
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		Preload("Product").
		Find(&promos).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch promotions"})
		return
	}

	c.JSON(http.StatusOK, decoratePromotions(promos, time.Now()))
}

// --- POST: Create a promotion ---
func AddPromotion(c *gin.Context) {
	businessID, branchID := tenantScope(c)

	var promo models.Promotion
	if err := c.ShouldBindJSON(&promo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if promo.PromoPrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Promo price must not be negative"})
		return
	}
	if !promo.EndDate.After(promo.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must be after start date"})
		return
	}

	// The promoted product must exist on this branch.
	var product models.Product
	err := database.DB.
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		First(&product, promo.ProductID).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found on this branch"})
		return
	}

	promo.BusinessID = businessID
	promo.BranchID = branchID
	promo.Product = product

	if err := database.DB.Create(&promo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create promotion"})
		return
	}

	now := time.Now()
	c.JSON(http.StatusCreated, promotionView{
		Promotion: promo,
		Status:    pricing.PromotionStatus(now, promo.StartDate, promo.EndDate),
	})
}

// --- PUT: Update a promotion's price or window ---
func UpdatePromotion(c *gin.Context) {
	businessID, branchID := tenantScope(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Promotion ID"})
		return
	}

	var promo models.Promotion
	err = database.DB.
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		First(&promo, id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	delete(updateData, "business_id")
	delete(updateData, "branch_id")

	if err := database.DB.Model(&promo).Updates(updateData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update promotion"})
		return
	}

	now := time.Now()
	c.JSON(http.StatusOK, promotionView{
		Promotion: promo,
		Status:    pricing.PromotionStatus(now, promo.StartDate, promo.EndDate),
	})
}

// --- DELETE: Remove a promotion ---
func DeletePromotion(c *gin.Context) {
	businessID, branchID := tenantScope(c)
	id := c.Param("id")

	result := database.DB.
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		Delete(&models.Promotion{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete promotion"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Promotion deleted successfully"})
}
