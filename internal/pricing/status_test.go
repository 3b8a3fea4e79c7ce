package pricing

import (
	"testing"
	"time"

	"go-pos-admin/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPromotionStatus(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want PromoStatus
	}{
		{"before window", start.Add(-time.Minute), PromoScheduled},
		{"at start", start, PromoActive},
		{"mid window", start.AddDate(0, 0, 14), PromoActive},
		{"just before end", end.Add(-time.Second), PromoActive},
		{"at end is already over", end, PromoExpired},
		{"after window", end.AddDate(0, 0, 3), PromoExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PromotionStatus(tt.now, start, end))
			// Pure function of its inputs: a second call agrees.
			assert.Equal(t, tt.want, PromotionStatus(tt.now, start, end))
		})
	}
}

func TestPromoPriceFor(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	promos := []models.Promotion{
		{ProductID: 1, PromoPrice: 9.00, StartDate: now.Add(time.Hour), EndDate: now.Add(48 * time.Hour)},   // scheduled
		{ProductID: 2, PromoPrice: 8.00, StartDate: now.Add(-48 * time.Hour), EndDate: now.Add(-time.Hour)}, // expired
		{ProductID: 3, PromoPrice: 7.00, StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour)},       // active
	}

	_, ok := PromoPriceFor(1, promos, now)
	assert.False(t, ok, "scheduled promo must not price the cart")

	_, ok = PromoPriceFor(2, promos, now)
	assert.False(t, ok, "expired promo must not price the cart")

	price, ok := PromoPriceFor(3, promos, now)
	assert.True(t, ok)
	assert.True(t, dec("7").Equal(price))

	_, ok = PromoPriceFor(42, promos, now)
	assert.False(t, ok)
}

func TestDebtBadge(t *testing.T) {
	assert.Equal(t, "Lunas", DebtBadge(true))
	assert.Equal(t, "Belum Lunas", DebtBadge(false))
}
