package handlers

import (
	"testing"

	"go-pos-admin/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSettingsOfDefaults(t *testing.T) {
	// A freshly provisioned business with nothing configured still
	// produces a usable pricing configuration.
	s := settingsOf(models.Business{})
	assert.Equal(t, "IDR", s.CurrencyCode)
	assert.Equal(t, "Utang", s.DebtMethodLabel)
	assert.False(t, s.TaxEnabled)

	s = settingsOf(models.Business{
		CurrencyCode:    "USD",
		TaxEnabled:      true,
		TaxRate:         8,
		DebtMethodLabel: "Tab",
	})
	assert.Equal(t, "USD", s.CurrencyCode)
	assert.True(t, s.TaxEnabled)
	assert.Equal(t, 8.0, s.TaxRate)
	assert.Equal(t, "Tab", s.DebtMethodLabel)
	assert.True(t, s.IsDebt("Tab"))
	assert.False(t, s.IsDebt("Utang"))
}

func TestMergeCartItems(t *testing.T) {
	merged := mergeCartItems([]CheckoutItem{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 1},
		{ProductID: 1, Quantity: 3},
	})

	// One entry per product so checkout locks and saves each row exactly
	// once; quantities add up instead of overwriting each other.
	assert.Equal(t, []CheckoutItem{
		{ProductID: 1, Quantity: 6},
		{ProductID: 2, Quantity: 1},
	}, merged)

	// No duplicates: untouched.
	plain := []CheckoutItem{{ProductID: 7, Quantity: 2}}
	assert.Equal(t, plain, mergeCartItems(plain))

	assert.Empty(t, mergeCartItems(nil))
}
