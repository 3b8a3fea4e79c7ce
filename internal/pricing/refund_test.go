package pricing

import (
	"testing"

	"go-pos-admin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func soldItems() []models.TransactionItem {
	return []models.TransactionItem{
		{ID: 1, ProductName: "A", Quantity: 2, Price: 5.00},
		{ID: 2, ProductName: "B", Quantity: 1, Price: 20.00},
	}
}

func TestRefundTotalPartial(t *testing.T) {
	items := soldItems()

	total, err := RefundTotal(items, map[uint]int{1: 1, 2: 0})
	require.NoError(t, err)
	assert.True(t, dec("5").Equal(total), "got %s", total)

	assert.Equal(t, models.StatusPartiallyRefunded, NextStatus(items, map[uint]int{1: 1, 2: 0}))
}

func TestRefundTotalFull(t *testing.T) {
	items := soldItems()
	qty := map[uint]int{1: 2, 2: 1}

	total, err := RefundTotal(items, qty)
	require.NoError(t, err)
	assert.True(t, dec("30").Equal(total))
	assert.Equal(t, models.StatusRefunded, NextStatus(items, qty))
}

func TestRefundTotalRejectsZero(t *testing.T) {
	_, err := RefundTotal(soldItems(), map[uint]int{1: 0, 2: 0})
	assert.ErrorIs(t, err, ErrNothingToRefund)

	_, err = RefundTotal(soldItems(), nil)
	assert.ErrorIs(t, err, ErrNothingToRefund)
}

func TestRefundTotalBounds(t *testing.T) {
	_, err := RefundTotal(soldItems(), map[uint]int{1: 3})
	assert.ErrorIs(t, err, ErrRefundExceedsPurchased)

	_, err = RefundTotal(soldItems(), map[uint]int{1: -1})
	assert.ErrorIs(t, err, ErrRefundExceedsPurchased)

	_, err = RefundTotal(soldItems(), map[uint]int{99: 1})
	assert.ErrorIs(t, err, ErrUnknownRefundItem)
}

func TestRefundTotalRespectsEarlierRefunds(t *testing.T) {
	items := []models.TransactionItem{
		{ID: 1, ProductName: "A", Quantity: 3, RefundedQty: 2, Price: 4.00},
	}

	// Only one unit is left to give back.
	_, err := RefundTotal(items, map[uint]int{1: 2})
	assert.ErrorIs(t, err, ErrRefundExceedsPurchased)

	total, err := RefundTotal(items, map[uint]int{1: 1})
	require.NoError(t, err)
	assert.True(t, dec("4").Equal(total))
	assert.Equal(t, models.StatusRefunded, NextStatus(items, map[uint]int{1: 1}))
}

func TestFullyRefundedTransactionHasNothingLeft(t *testing.T) {
	items := []models.TransactionItem{
		{ID: 1, ProductName: "A", Quantity: 2, RefundedQty: 2, Price: 5.00},
	}

	// Any further positive quantity is out of bounds, and all-zero is a no-op,
	// so a second full refund can never be accepted.
	_, err := RefundTotal(items, map[uint]int{1: 1})
	assert.ErrorIs(t, err, ErrRefundExceedsPurchased)

	_, err = RefundTotal(items, map[uint]int{1: 0})
	assert.ErrorIs(t, err, ErrNothingToRefund)
}
