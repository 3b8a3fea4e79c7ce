package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go-pos-admin/internal/database"
	"go-pos-admin/internal/models"
	"go-pos-admin/internal/pricing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

// --- GET: List the branch's products ---
func GetProducts(c *gin.Context) {
	businessID, branchID := tenantScope(c)

	var products []models.Product
	result := database.DB.
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		Preload("BundleTiers").
		Find(&products)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// --- GET: Barcode lookup for the cashier scanner ---
func ScanProduct(c *gin.Context) {
	businessID, branchID := tenantScope(c)
	barcode := c.Param("barcode")

	var product models.Product
	err := database.DB.
		Where("business_id = ? AND branch_id = ? AND barcode = ?", businessID, branchID, barcode).
		Preload("BundleTiers").
		First(&product).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// --- POST: Add a new product ---
func AddProduct(c *gin.Context) {
	businessID, branchID := tenantScope(c)

	var newProduct models.Product
	if err := c.ShouldBindJSON(&newProduct); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if newProduct.Price < 0 || newProduct.CostPrice < 0 || newProduct.StockQuantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price and stock must not be negative"})
		return
	}

	// Tenancy comes from the token, never from the request body.
	newProduct.BusinessID = businessID
	newProduct.BranchID = branchID

	if err := database.DB.Create(&newProduct).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, newProduct)
}

// --- PUT: Update price, stock or details ---
func UpdateProduct(c *gin.Context) {
	businessID, branchID := tenantScope(c)

	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Product ID"})
		return
	}

	var product models.Product
	err = database.DB.
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		First(&product, id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	// A map so we only update what was sent (partial update)
	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	delete(updateData, "business_id")
	delete(updateData, "branch_id")

	if err := database.DB.Model(&product).Updates(updateData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// --- DELETE: Remove a product ---
func DeleteProduct(c *gin.Context) {
	businessID, branchID := tenantScope(c)
	id := c.Param("id")

	result := database.DB.
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		Delete(&models.Product{}, id)
	if result.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not delete product. It might be linked to past sales."})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// CheckoutItem is one cart row as the frontend sends it.
type CheckoutItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// CheckoutRequest defines what the frontend sends us
type CheckoutRequest struct {
	Items         []CheckoutItem `json:"items" binding:"required"`
	CustomerID    *uint          `json:"customer_id"`
	Discount      float64        `json:"discount"`
	PaymentMethod string         `json:"payment_method" binding:"required"`
}

// mergeCartItems collapses repeated product IDs into one entry each,
// summing their quantities; first-appearance order is kept. The checkout
// loops below lock each product once and save it once - a duplicated
// product would otherwise overwrite its own stock decrement.
func mergeCartItems(items []CheckoutItem) []CheckoutItem {
	merged := make([]CheckoutItem, 0, len(items))
	index := make(map[uint]int, len(items))
	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

// ProcessCheckout prices the cart (promo overrides included), decrements
// stock and writes the transaction - all inside ONE database transaction
// with row locks, so two cashiers cannot oversell the same product.
func ProcessCheckout(c *gin.Context) {
	businessID, branchID := tenantScope(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	userID := c.MustGet("userID").(uint)

	settings, err := businessSettings(businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load business settings"})
		return
	}

	// Branch promotions; the pricing engine decides which are Active.
	var promos []models.Promotion
	if err := database.DB.
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		Find(&promos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load promotions"})
		return
	}

	now := time.Now()
	cartItems := mergeCartItems(req.Items)
	tx := database.DB.Begin()

	// Lock and validate every product, then hand the cart to the engine.
	entries := make([]pricing.CartEntry, 0, len(cartItems))
	for _, item := range cartItems {
		var product models.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("business_id = ? AND branch_id = ?", businessID, branchID).
			Preload("BundleTiers").
			First(&product, item.ProductID).Error
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product %d not found", item.ProductID)})
			return
		}
		entries = append(entries, pricing.CartEntry{Product: product, Quantity: item.Quantity})
	}

	lines, err := pricing.BuildLines(entries, promos, now)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	totals := pricing.CalculateTotals(lines, decimal.NewFromFloat(req.Discount), settings)

	// Deduct stock now that the whole cart validated.
	for _, e := range entries {
		e.Product.StockQuantity -= e.Quantity
		if err := tx.Save(&e.Product).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			return
		}
	}

	items := make([]models.TransactionItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.TransactionItem{
			ProductID:     l.ProductID,
			ProductName:   l.Name,
			Unit:          l.Unit,
			Quantity:      l.Quantity,
			Price:         l.Price.InexactFloat64(),
			OriginalPrice: l.OriginalPrice.InexactFloat64(),
		})
	}

	sale := models.Transaction{
		ReceiptNumber: uuid.NewString(),
		BusinessID:    businessID,
		BranchID:      branchID,
		UserID:        userID,
		CustomerID:    req.CustomerID,
		Items:         items, // GORM inserts these with the header
		Subtotal:      totals.Subtotal.InexactFloat64(),
		Discount:      totals.Discount.InexactFloat64(),
		Tax:           totals.Tax.InexactFloat64(),
		TotalAmount:   totals.Total.InexactFloat64(),
		Currency:      settings.CurrencyCode,
		PaymentMethod: req.PaymentMethod,
		Status:        models.StatusPaid,
		SaleTime:      now,
		// Credit sales start unsettled; everything else counts as paid up.
		IsPaid: !settings.IsDebt(req.PaymentMethod),
	}

	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale record"})
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{
		"message":        "Sale successful!",
		"transaction_id": sale.ID,
		"receipt_number": sale.ReceiptNumber,
		"subtotal":       sale.Subtotal,
		"tax":            sale.Tax,
		"discount":       sale.Discount,
		"total":          sale.TotalAmount,
		"total_display":  pricing.FormatAmount(sale.TotalAmount, settings.CurrencyCode),
	})
}
