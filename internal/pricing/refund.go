package pricing

import (
	"errors"
	"fmt"

	"go-pos-admin/internal/models"

	"github.com/shopspring/decimal"
)

var (
	// ErrNothingToRefund means every requested quantity was zero; the
	// confirm action must stay disabled for such a request.
	ErrNothingToRefund = errors.New("refund total must be greater than zero")

	// ErrRefundExceedsPurchased means a requested quantity is negative or
	// larger than what is still refundable on that line.
	ErrRefundExceedsPurchased = errors.New("refund quantity exceeds remaining purchased quantity")

	// ErrUnknownRefundItem means the request references an item ID that is
	// not part of the transaction.
	ErrUnknownRefundItem = errors.New("refund references an item not on this transaction")
)

// RefundTotal computes the amount to hand back for a partial refund.
// quantities maps transaction item IDs to the quantity being returned;
// missing entries count as zero. Each quantity is bounded by the line's
// remaining (purchased minus already refunded) quantity.
func RefundTotal(items []models.TransactionItem, quantities map[uint]int) (decimal.Decimal, error) {
	known := make(map[uint]bool, len(items))
	total := decimal.Zero
	for _, it := range items {
		known[it.ID] = true
		qty := quantities[it.ID]
		remaining := it.Quantity - it.RefundedQty
		if qty < 0 || qty > remaining {
			return decimal.Zero, fmt.Errorf("%w: %q requested %d, remaining %d",
				ErrRefundExceedsPurchased, it.ProductName, qty, remaining)
		}
		if qty == 0 {
			continue
		}
		total = total.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(qty))))
	}
	for id := range quantities {
		if !known[id] {
			return decimal.Zero, fmt.Errorf("%w: item %d", ErrUnknownRefundItem, id)
		}
	}
	if total.Sign() <= 0 {
		return decimal.Zero, ErrNothingToRefund
	}
	return total, nil
}

// NextStatus derives the transaction status after the given quantities
// are applied: Refunded once every line is exhausted, otherwise
// Partially Refunded. Call only after RefundTotal accepted the request.
func NextStatus(items []models.TransactionItem, quantities map[uint]int) string {
	for _, it := range items {
		if it.RefundedQty+quantities[it.ID] < it.Quantity {
			return models.StatusPartiallyRefunded
		}
	}
	return models.StatusRefunded
}
