package pricing

import (
	"errors"
	"fmt"
	"time"

	"go-pos-admin/internal/models"

	"github.com/shopspring/decimal"
)

// Settings is the slice of business configuration the calculators need.
// Callers pass it in on every call - the engine never reads ambient
// globals or the wall clock, which is what keeps it testable.
type Settings struct {
	CurrencyCode    string
	TaxEnabled      bool
	TaxRate         float64 // percentage, e.g. 11 for 11%
	DebtMethodLabel string  // payment method treated as a credit sale
}

// Line is one costed cart entry, ready to be persisted as a
// TransactionItem or rendered on the checkout panel.
type Line struct {
	ProductID     uint
	Name          string
	Unit          string
	Quantity      int
	Price         decimal.Decimal // unit price actually charged (promo/bundle/list)
	OriginalPrice decimal.Decimal // listed price, for strikethrough display
}

// Totals is the checkout summary for a priced cart.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// CartEntry pairs a product with the quantity the operator keyed in.
type CartEntry struct {
	Product  models.Product
	Quantity int
}

var ErrInvalidQuantity = errors.New("quantity must be between 1 and available stock")

// BuildLines turns cart entries into costed lines. Quantities outside
// [1, stock] are rejected here, before any totals are computed. A cart
// may list the same product more than once; the stock check is against
// the product's AGGREGATE quantity across all its entries, so a split
// cart cannot oversell what a single entry would not. The promotions
// slice should hold the branch's promotions and is checked against the
// supplied instant.
func BuildLines(entries []CartEntry, promos []models.Promotion, now time.Time) ([]Line, error) {
	lines := make([]Line, 0, len(entries))
	totalQty := make(map[uint]int, len(entries))
	for _, e := range entries {
		if e.Quantity < 1 {
			return nil, fmt.Errorf("%w: %q qty %d, stock %d",
				ErrInvalidQuantity, e.Product.Name, e.Quantity, e.Product.StockQuantity)
		}
		totalQty[e.Product.ID] += e.Quantity
		if totalQty[e.Product.ID] > e.Product.StockQuantity {
			return nil, fmt.Errorf("%w: %q qty %d, stock %d",
				ErrInvalidQuantity, e.Product.Name, totalQty[e.Product.ID], e.Product.StockQuantity)
		}
		lines = append(lines, Line{
			ProductID:     e.Product.ID,
			Name:          e.Product.Name,
			Unit:          e.Product.Unit,
			Quantity:      e.Quantity,
			Price:         UnitPrice(e.Product, e.Quantity, promos, now),
			OriginalPrice: decimal.NewFromFloat(e.Product.Price),
		})
	}
	return lines, nil
}

// UnitPrice resolves the price a single unit of the product sells for at
// the given quantity and instant. An Active promotion always wins; next a
// bundle tier the quantity qualifies for; otherwise the listed price.
func UnitPrice(p models.Product, quantity int, promos []models.Promotion, now time.Time) decimal.Decimal {
	if promo, ok := PromoPriceFor(p.ID, promos, now); ok {
		return promo
	}
	if tier, ok := bestTier(p.BundleTiers, quantity); ok {
		return decimal.NewFromFloat(tier.Price)
	}
	return decimal.NewFromFloat(p.Price)
}

// bestTier picks the tier with the highest MinQuantity the buyer reaches.
func bestTier(tiers []models.BundleTier, quantity int) (models.BundleTier, bool) {
	var best models.BundleTier
	found := false
	for _, t := range tiers {
		if quantity >= t.MinQuantity && (!found || t.MinQuantity > best.MinQuantity) {
			best = t
			found = true
		}
	}
	return best, found
}

// Subtotal sums price x quantity over the lines.
func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// CalculateTotals computes the checkout summary.
//
// Tax is applied to the subtotal BEFORE the discount is subtracted, then
// the discount comes off the taxed amount: total = subtotal + tax - discount.
// The discount is a flat amount clamped to be non-negative; it is NOT
// clamped to the subtotal, so an over-generous operator can drive the
// total below zero.
func CalculateTotals(lines []Line, discount decimal.Decimal, s Settings) Totals {
	if discount.Sign() < 0 {
		discount = decimal.Zero
	}
	subtotal := Subtotal(lines)
	tax := decimal.Zero
	if s.TaxEnabled {
		tax = subtotal.Mul(decimal.NewFromFloat(s.TaxRate)).Div(decimal.NewFromInt(100)).Round(2)
	}
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal.Add(tax).Sub(discount),
	}
}

// IsDebt reports whether a payment method is a credit ("Utang") sale
// under the business's settings.
func (s Settings) IsDebt(paymentMethod string) bool {
	label := s.DebtMethodLabel
	if label == "" {
		label = "Utang"
	}
	return paymentMethod == label
}
