package handlers

import (
	"go-pos-admin/internal/database"
	"go-pos-admin/internal/models"
	"go-pos-admin/internal/pricing"

	"github.com/gin-gonic/gin"
)

// tenantScope pulls the caller's business and branch out of the gin
// context (set by AuthMiddleware). Every query in this package must be
// filtered through these two values.
func tenantScope(c *gin.Context) (businessID, branchID uint) {
	return c.MustGet("businessID").(uint), c.MustGet("branchID").(uint)
}

// businessSettings loads the caller's business and converts its stored
// configuration into the value the pricing engine takes. The engine never
// reads the database itself.
func businessSettings(businessID uint) (pricing.Settings, error) {
	var biz models.Business
	if err := database.DB.First(&biz, businessID).Error; err != nil {
		return pricing.Settings{}, err
	}
	return settingsOf(biz), nil
}

func settingsOf(biz models.Business) pricing.Settings {
	label := biz.DebtMethodLabel
	if label == "" {
		label = "Utang"
	}
	currencyCode := biz.CurrencyCode
	if currencyCode == "" {
		currencyCode = "IDR"
	}
	return pricing.Settings{
		CurrencyCode:    currencyCode,
		TaxEnabled:      biz.TaxEnabled,
		TaxRate:         biz.TaxRate,
		DebtMethodLabel: label,
	}
}
