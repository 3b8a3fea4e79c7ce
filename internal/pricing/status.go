package pricing

import (
	"time"

	"go-pos-admin/internal/models"

	"github.com/shopspring/decimal"
)

// PromoStatus is derived from the validity window on every read. It is
// never persisted.
type PromoStatus string

const (
	PromoScheduled PromoStatus = "scheduled"
	PromoActive    PromoStatus = "active"
	PromoExpired   PromoStatus = "expired"
)

// PromotionStatus classifies an instant against a [start, end) window.
func PromotionStatus(now, start, end time.Time) PromoStatus {
	if now.Before(start) {
		return PromoScheduled
	}
	if !now.Before(end) {
		return PromoExpired
	}
	return PromoActive
}

// PromoPriceFor returns the override price for a product if one of the
// supplied promotions is Active at the given instant.
func PromoPriceFor(productID uint, promos []models.Promotion, now time.Time) (decimal.Decimal, bool) {
	for _, p := range promos {
		if p.ProductID != productID {
			continue
		}
		if PromotionStatus(now, p.StartDate, p.EndDate) == PromoActive {
			return decimal.NewFromFloat(p.PromoPrice), true
		}
	}
	return decimal.Zero, false
}

// Debt settlement badges shown on the Utang ledger.
const (
	DebtBadgePaid   = "Lunas"
	DebtBadgeUnpaid = "Belum Lunas"
)

func DebtBadge(isPaid bool) string {
	if isPaid {
		return DebtBadgePaid
	}
	return DebtBadgeUnpaid
}
