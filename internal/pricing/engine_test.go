package pricing

import (
	"testing"
	"time"

	"go-pos-admin/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var checkoutTime = time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

func product(id uint, price float64, stock int) models.Product {
	return models.Product{ID: id, Name: "Product", Price: price, StockQuantity: stock, Unit: "pcs"}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name     string
		entries  []CartEntry
		discount decimal.Decimal
		settings Settings
		want     Totals
	}{
		{
			name:     "tax disabled no discount",
			entries:  []CartEntry{{Product: product(1, 10.00, 10), Quantity: 3}},
			discount: decimal.Zero,
			settings: Settings{CurrencyCode: "USD"},
			want:     Totals{Subtotal: dec("30"), Tax: dec("0"), Discount: dec("0"), Total: dec("30")},
		},
		{
			name:     "tax 8 percent enabled",
			entries:  []CartEntry{{Product: product(1, 10.00, 10), Quantity: 3}},
			discount: decimal.Zero,
			settings: Settings{CurrencyCode: "USD", TaxEnabled: true, TaxRate: 8},
			want:     Totals{Subtotal: dec("30"), Tax: dec("2.40"), Discount: dec("0"), Total: dec("32.40")},
		},
		{
			name:     "discount comes off after tax",
			entries:  []CartEntry{{Product: product(1, 10.00, 10), Quantity: 3}},
			discount: dec("5"),
			settings: Settings{CurrencyCode: "USD", TaxEnabled: true, TaxRate: 8},
			want:     Totals{Subtotal: dec("30"), Tax: dec("2.40"), Discount: dec("5"), Total: dec("27.40")},
		},
		{
			name:     "tax disabled ignores configured rate",
			entries:  []CartEntry{{Product: product(1, 100, 5), Quantity: 2}},
			discount: decimal.Zero,
			settings: Settings{CurrencyCode: "IDR", TaxEnabled: false, TaxRate: 11},
			want:     Totals{Subtotal: dec("200"), Tax: dec("0"), Discount: dec("0"), Total: dec("200")},
		},
		{
			name:     "negative discount clamps to zero",
			entries:  []CartEntry{{Product: product(1, 10, 10), Quantity: 1}},
			discount: dec("-7"),
			settings: Settings{CurrencyCode: "USD"},
			want:     Totals{Subtotal: dec("10"), Tax: dec("0"), Discount: dec("0"), Total: dec("10")},
		},
		{
			// Deliberately not clamped to the subtotal.
			name:     "discount above subtotal drives total negative",
			entries:  []CartEntry{{Product: product(1, 10, 10), Quantity: 1}},
			discount: dec("25"),
			settings: Settings{CurrencyCode: "USD"},
			want:     Totals{Subtotal: dec("10"), Tax: dec("0"), Discount: dec("25"), Total: dec("-15")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := BuildLines(tt.entries, nil, checkoutTime)
			require.NoError(t, err)
			got := CalculateTotals(lines, tt.discount, tt.settings)
			assert.True(t, tt.want.Subtotal.Equal(got.Subtotal), "subtotal %s", got.Subtotal)
			assert.True(t, tt.want.Tax.Equal(got.Tax), "tax %s", got.Tax)
			assert.True(t, tt.want.Discount.Equal(got.Discount), "discount %s", got.Discount)
			assert.True(t, tt.want.Total.Equal(got.Total), "total %s", got.Total)
		})
	}
}

func TestBuildLinesRejectsBadQuantities(t *testing.T) {
	p := product(1, 10, 5)

	_, err := BuildLines([]CartEntry{{Product: p, Quantity: 0}}, nil, checkoutTime)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = BuildLines([]CartEntry{{Product: p, Quantity: -2}}, nil, checkoutTime)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = BuildLines([]CartEntry{{Product: p, Quantity: 6}}, nil, checkoutTime)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	lines, err := BuildLines([]CartEntry{{Product: p, Quantity: 5}}, nil, checkoutTime)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestBuildLinesChecksAggregateStockAcrossDuplicates(t *testing.T) {
	p := product(1, 10, 5)

	// Each entry fits the stock on its own, but together they oversell.
	_, err := BuildLines([]CartEntry{
		{Product: p, Quantity: 3},
		{Product: p, Quantity: 3},
	}, nil, checkoutTime)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	// Splitting a product across entries is fine while the sum fits.
	lines, err := BuildLines([]CartEntry{
		{Product: p, Quantity: 3},
		{Product: p, Quantity: 2},
	}, nil, checkoutTime)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.True(t, dec("50").Equal(Subtotal(lines)))

	// A second product keeps its own budget.
	other := product(2, 4, 1)
	lines, err = BuildLines([]CartEntry{
		{Product: p, Quantity: 5},
		{Product: other, Quantity: 1},
	}, nil, checkoutTime)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestBuildLinesAppliesActivePromo(t *testing.T) {
	p := product(7, 20.00, 10)
	promos := []models.Promotion{{
		ProductID:  7,
		PromoPrice: 15.00,
		StartDate:  checkoutTime.AddDate(0, 0, -1), // yesterday
		EndDate:    checkoutTime.AddDate(0, 0, 1),  // tomorrow
	}}

	lines, err := BuildLines([]CartEntry{{Product: p, Quantity: 2}}, promos, checkoutTime)
	require.NoError(t, err)

	assert.True(t, dec("15").Equal(lines[0].Price), "charged price %s", lines[0].Price)
	assert.True(t, dec("20").Equal(lines[0].OriginalPrice), "original price %s", lines[0].OriginalPrice)
	assert.True(t, dec("30").Equal(Subtotal(lines)))
}

func TestBuildLinesIgnoresExpiredPromo(t *testing.T) {
	p := product(7, 20.00, 10)
	promos := []models.Promotion{{
		ProductID:  7,
		PromoPrice: 15.00,
		StartDate:  checkoutTime.AddDate(0, 0, -7),
		EndDate:    checkoutTime.AddDate(0, 0, -1), // ended yesterday
	}}

	lines, err := BuildLines([]CartEntry{{Product: p, Quantity: 1}}, promos, checkoutTime)
	require.NoError(t, err)
	assert.True(t, dec("20").Equal(lines[0].Price), "expired promo must not apply")
}

func TestUnitPriceBundleTiers(t *testing.T) {
	p := product(3, 10.00, 100)
	p.BundleTiers = []models.BundleTier{
		{ProductID: 3, MinQuantity: 6, Price: 8.00},
		{ProductID: 3, MinQuantity: 12, Price: 7.00},
	}

	assert.True(t, dec("10").Equal(UnitPrice(p, 1, nil, checkoutTime)))
	assert.True(t, dec("8").Equal(UnitPrice(p, 6, nil, checkoutTime)))
	assert.True(t, dec("7").Equal(UnitPrice(p, 20, nil, checkoutTime)), "highest reached tier wins")

	// An active promo beats the bundle price.
	promos := []models.Promotion{{
		ProductID:  3,
		PromoPrice: 5.00,
		StartDate:  checkoutTime.Add(-time.Hour),
		EndDate:    checkoutTime.Add(time.Hour),
	}}
	assert.True(t, dec("5").Equal(UnitPrice(p, 20, promos, checkoutTime)))
}

func TestSettingsIsDebt(t *testing.T) {
	s := Settings{DebtMethodLabel: "Utang"}
	assert.True(t, s.IsDebt("Utang"))
	assert.False(t, s.IsDebt("Cash"))

	// Empty label falls back to the default.
	assert.True(t, Settings{}.IsDebt("Utang"))
}
