package database

import (
	"time"

	"go-pos-admin/internal/models"
)

// SalesReportResult is the summary the report handler and the AI
// assistant both consume.
type SalesReportResult struct {
	TotalRevenue float64
	TotalCount   int64
}

// GetSalesReport calculates branch revenue within a date range.
func GetSalesReport(businessID, branchID uint, start, end time.Time) (*SalesReportResult, error) {
	var result SalesReportResult

	// COALESCE ensures we get 0 instead of NULL if no sales exist
	err := DB.Model(&models.Transaction{}).
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		Where("sale_time BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.TotalRevenue).Error

	if err != nil {
		return nil, err
	}

	err = DB.Model(&models.Transaction{}).
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		Where("sale_time BETWEEN ? AND ?", start, end).
		Count(&result.TotalCount).Error

	if err != nil {
		return nil, err
	}

	return &result, nil
}

// DebtReportResult summarizes the outstanding Utang ledger of a branch.
type DebtReportResult struct {
	OutstandingAmount float64
	OutstandingCount  int64
	SettledAmount     float64
}

// GetDebtReport totals credit sales, split into settled and still-owed,
// for the business's configured debt payment method.
func GetDebtReport(businessID, branchID uint, debtMethod string) (*DebtReportResult, error) {
	var result DebtReportResult

	err := DB.Model(&models.Transaction{}).
		Where("business_id = ? AND branch_id = ? AND payment_method = ?", businessID, branchID, debtMethod).
		Where("is_paid = ?", false).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.OutstandingAmount).Error
	if err != nil {
		return nil, err
	}

	err = DB.Model(&models.Transaction{}).
		Where("business_id = ? AND branch_id = ? AND payment_method = ?", businessID, branchID, debtMethod).
		Where("is_paid = ?", false).
		Count(&result.OutstandingCount).Error
	if err != nil {
		return nil, err
	}

	err = DB.Model(&models.Transaction{}).
		Where("business_id = ? AND branch_id = ? AND payment_method = ?", businessID, branchID, debtMethod).
		Where("is_paid = ?", true).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.SettledAmount).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
