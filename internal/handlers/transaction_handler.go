package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"go-pos-admin/internal/database"
	"go-pos-admin/internal/models"
	"go-pos-admin/internal/pricing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// --- GET: List the branch's transactions ---
// Filters: ?status=paid|partially_refunded|refunded, ?customer_id=N,
// ?debt=true (only credit sales), ?unsettled=true (debt still owed).
func GetTransactions(c *gin.Context) {
	businessID, branchID := tenantScope(c)

	query := database.DB.
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		Preload("Items").
		Preload("Customer").
		Order("sale_time desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if c.Query("debt") == "true" || c.Query("unsettled") == "true" {
		settings, err := businessSettings(businessID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load business settings"})
			return
		}
		query = query.Where("payment_method = ?", settings.DebtMethodLabel)
		if c.Query("unsettled") == "true" {
			query = query.Where("is_paid = ?", false)
		}
	}

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// --- GET: One transaction with its debt badge ---
func GetTransaction(c *gin.Context) {
	businessID, branchID := tenantScope(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Transaction ID"})
		return
	}

	var trx models.Transaction
	err = database.DB.
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		Preload("Items").
		Preload("Customer").
		First(&trx, id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transaction":   trx,
		"debt_badge":    pricing.DebtBadge(trx.IsPaid),
		"total_display": pricing.FormatAmount(trx.TotalAmount, trx.Currency),
	})
}

// RefundRequest carries the quantity to give back per transaction item.
// Items left out (or sent with 0) are excluded from the refund.
type RefundRequest struct {
	Items []struct {
		ItemID   uint `json:"item_id"`
		Quantity int  `json:"quantity"`
	} `json:"items" binding:"required"`
}

// RefundTransaction applies a (possibly partial) refund: validates the
// quantities against what is still refundable, restores stock, bumps the
// per-line refunded counters and moves the status forward. All writes
// ride one database transaction; a failure leaves the sale untouched.
func RefundTransaction(c *gin.Context) {
	businessID, branchID := tenantScope(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Transaction ID"})
		return
	}

	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	quantities := make(map[uint]int, len(req.Items))
	for _, item := range req.Items {
		quantities[item.ItemID] = item.Quantity
	}

	tx := database.DB.Begin()

	var trx models.Transaction
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		First(&trx, id).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}
	if err := tx.Where("transaction_id = ?", trx.ID).Find(&trx.Items).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transaction items"})
		return
	}

	refundTotal, err := pricing.RefundTotal(trx.Items, quantities)
	if err != nil {
		tx.Rollback()
		status := http.StatusBadRequest
		if errors.Is(err, pricing.ErrUnknownRefundItem) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	newStatus := pricing.NextStatus(trx.Items, quantities)

	// Put the returned quantities back on the shelf.
	for i := range trx.Items {
		item := &trx.Items[i]
		qty := quantities[item.ID]
		if qty == 0 {
			continue
		}

		item.RefundedQty += qty
		if err := tx.Save(item).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update refund quantities"})
			return
		}

		var product models.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, item.ProductID).Error
		if err != nil {
			// Product deleted since the sale; the money still goes back.
			continue
		}
		product.StockQuantity += qty
		if err := tx.Save(&product).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore stock"})
			return
		}
	}

	trx.Status = newStatus
	if err := tx.Model(&trx).Update("status", newStatus).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction status"})
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{
		"message":        "Refund processed successfully",
		"refund_total":   refundTotal.InexactFloat64(),
		"refund_display": pricing.FormatAmount(refundTotal.InexactFloat64(), trx.Currency),
		"status":         newStatus,
	})
}

// DebtUpdateRequest is a partial update of the Utang settlement fields.
// Pointer fields so "not sent" and "sent as zero value" stay distinct.
type DebtUpdateRequest struct {
	IsPaid              *bool   `json:"is_paid"`
	DebtNoteImageURL    *string `json:"debt_note_image_url"`
	PaymentNoteImageURL *string `json:"payment_note_image_url"`
}

// SettleDebt updates the paid flag and evidence image references of a
// credit sale. Marking paid stamps paid_at; unmarking clears it.
func SettleDebt(c *gin.Context) {
	businessID, branchID := tenantScope(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Transaction ID"})
		return
	}

	var req DebtUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var trx models.Transaction
	err = database.DB.
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		First(&trx, id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	settings, err := businessSettings(businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load business settings"})
		return
	}
	if !settings.IsDebt(trx.PaymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transaction is not a credit sale"})
		return
	}

	updates := map[string]interface{}{}
	if req.IsPaid != nil {
		updates["is_paid"] = *req.IsPaid
		if *req.IsPaid {
			updates["paid_at"] = time.Now()
		} else {
			updates["paid_at"] = nil
		}
	}
	if req.DebtNoteImageURL != nil {
		updates["debt_note_image_url"] = *req.DebtNoteImageURL
	}
	if req.PaymentNoteImageURL != nil {
		updates["payment_note_image_url"] = *req.PaymentNoteImageURL
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&trx).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update debt status"})
		return
	}

	// Reflect the applied update in the response body.
	if req.IsPaid != nil {
		trx.IsPaid = *req.IsPaid
		if *req.IsPaid {
			now := time.Now()
			trx.PaidAt = &now
		} else {
			trx.PaidAt = nil
		}
	}
	if req.DebtNoteImageURL != nil {
		trx.DebtNoteImageURL = *req.DebtNoteImageURL
	}
	if req.PaymentNoteImageURL != nil {
		trx.PaymentNoteImageURL = *req.PaymentNoteImageURL
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Debt record updated successfully",
		"transaction": trx,
		"debt_badge":  pricing.DebtBadge(trx.IsPaid),
	})
}
