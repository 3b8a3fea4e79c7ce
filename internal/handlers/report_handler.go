package handlers

import (
	"net/http"

	"go-pos-admin/internal/database"
	"go-pos-admin/internal/models"
	"go-pos-admin/internal/pricing"

	"github.com/gin-gonic/gin"
)

// ReportData defines the shape of our analytics response
type ReportData struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalOrders  int64   `json:"total_orders"`
	TopSelling   []struct {
		ProductName string  `json:"product_name"`
		Sold        int     `json:"sold"`
		Revenue     float64 `json:"revenue"`
	} `json:"top_selling"`
	RecentSales []models.Transaction `json:"recent_sales"`
}

// --- GET: /api/reports ---
func GetSalesReport(c *gin.Context) {
	businessID, branchID := tenantScope(c)
	var data ReportData

	// 1. Total revenue, all time, this branch
	err := database.DB.Model(&models.Transaction{}).
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&data.TotalRevenue).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate revenue"})
		return
	}

	// 2. Count total orders
	err = database.DB.Model(&models.Transaction{}).
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		Count(&data.TotalOrders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
		return
	}

	// 3. Top 5 best sellers
	err = database.DB.Table("transaction_items").
		Select("transaction_items.product_name as product_name, SUM(transaction_items.quantity) as sold, SUM(transaction_items.quantity * transaction_items.price) as revenue").
		Joins("JOIN transactions ON transaction_items.transaction_id = transactions.id").
		Where("transactions.business_id = ? AND transactions.branch_id = ?", businessID, branchID).
		Group("transaction_items.product_name").
		Order("sold desc").
		Limit(5).
		Scan(&data.TopSelling).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch top selling items"})
		return
	}

	// 4. Last 10 transactions, newest first
	err = database.DB.
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		Order("sale_time desc").Limit(10).
		Find(&data.RecentSales).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent sales"})
		return
	}

	c.JSON(http.StatusOK, data)
}

// --- GET: /api/reports/debts ---
// GetDebtReport totals the branch's Utang ledger.
func GetDebtReport(c *gin.Context) {
	businessID, branchID := tenantScope(c)

	settings, err := businessSettings(businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load business settings"})
		return
	}

	result, err := database.GetDebtReport(businessID, branchID, settings.DebtMethodLabel)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate debt totals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"outstanding_amount":  result.OutstandingAmount,
		"outstanding_count":   result.OutstandingCount,
		"settled_amount":      result.SettledAmount,
		"outstanding_display": pricing.FormatAmount(result.OutstandingAmount, settings.CurrencyCode),
	})
}

// --- DATA STRUCTURES FOR VALUATION REPORT ---

// ValuationItem represents a single row in the report table
type ValuationItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	CostPrice float64 `json:"cost_price"`
	TotalCost float64 `json:"total_cost"`
}

// CategoryGroup represents one table in the report (e.g. "DRINKS")
type CategoryGroup struct {
	CategoryName string          `json:"category_name"`
	Items        []ValuationItem `json:"items"`
	Subtotal     float64         `json:"subtotal"`
}

// ValuationResponse is the final payload
type ValuationResponse struct {
	Categories []CategoryGroup `json:"categories"`
	GrandTotal float64         `json:"grand_total"`
}

// --- GET: /api/reports/valuation ---
// GetStockValuation calculates the monetary value of the branch's
// physical inventory at cost price, grouped by category.
func GetStockValuation(c *gin.Context) {
	businessID, branchID := tenantScope(c)

	var products []models.Product
	err := database.DB.
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	var grandTotal float64
	// Pointers so the subtotal can be bumped in place.
	groupedMap := make(map[string]*CategoryGroup)

	for _, p := range products {
		catName := p.Category
		if catName == "" {
			catName = "Uncategorized"
		}

		if _, exists := groupedMap[catName]; !exists {
			groupedMap[catName] = &CategoryGroup{
				CategoryName: catName,
				Items:        []ValuationItem{},
			}
		}

		itemTotal := float64(p.StockQuantity) * p.CostPrice

		groupedMap[catName].Items = append(groupedMap[catName].Items, ValuationItem{
			Name:      p.Name,
			Quantity:  p.StockQuantity,
			CostPrice: p.CostPrice,
			TotalCost: itemTotal,
		})
		groupedMap[catName].Subtotal += itemTotal
		grandTotal += itemTotal
	}

	var response ValuationResponse
	response.GrandTotal = grandTotal
	for _, group := range groupedMap {
		response.Categories = append(response.Categories, *group)
	}

	c.JSON(http.StatusOK, response)
}
