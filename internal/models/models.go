package models

import (
	"time"
)

// Transaction status values. A sale starts its life as Paid and can only
// move forward to Partially Refunded or Refunded. There is no way back.
const (
	StatusPaid              = "paid"
	StatusPartiallyRefunded = "partially_refunded"
	StatusRefunded          = "refunded"
)

// User roles
const (
	RoleSuperAdmin = "superadmin" // provisions tenants, belongs to no business
	RoleAdmin      = "admin"      // business owner / manager
	RoleStaff      = "staff"      // cashier
)

// Business - a tenant. Owns branches, users and all the settings that
// drive pricing (currency, tax, debt method label).
type Business struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:100" json:"name"`
	CurrencyCode    string    `json:"currency_code"`                          // ISO 4217, e.g. "IDR"
	TaxEnabled      bool      `json:"tax_enabled"`                            // PPN on/off
	TaxRate         float64   `json:"tax_rate"`                               // percentage, e.g. 11 for 11%
	DebtMethodLabel string    `json:"debt_method_label"`                      // payment method treated as credit, default "Utang"
	Units           []string  `gorm:"serializer:json" json:"units"`           // e.g. pcs, kg, liter
	PaymentMethods  []string  `gorm:"serializer:json" json:"payment_methods"` // e.g. Cash, QRIS, Utang
	PaperSize       string    `json:"paper_size"`                             // receipt printer: "58mm" or "80mm"
	Branches        []Branch  `gorm:"foreignKey:BusinessID" json:"branches,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Branch - a physical location under a Business. Inventory and
// transactions are always recorded at branch level.
type Branch struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	BusinessID uint   `gorm:"index" json:"business_id"`
	Name       string `gorm:"size:100" json:"name"`
	Address    string `json:"address"`
}

// User - The person interacting with the system
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BusinessID   uint      `gorm:"index" json:"business_id"` // 0 for super admins
	BranchID     uint      `json:"branch_id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"` // Never return this in JSON
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Product - The Inventory
type Product struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	BusinessID    uint         `gorm:"index" json:"business_id"`
	BranchID      uint         `gorm:"index" json:"branch_id"`
	Name          string       `json:"name"`
	Barcode       string       `gorm:"index;size:64" json:"barcode"`
	Price         float64      `json:"price"`      // selling price
	CostPrice     float64      `json:"cost_price"` // purchase price, for valuation
	StockQuantity int          `json:"stock_quantity"`
	Unit          string       `json:"unit"`
	Category      string       `json:"category"`
	ImageURL      string       `json:"image_url"`
	BundleTiers   []BundleTier `gorm:"foreignKey:ProductID" json:"bundle_tiers,omitempty"`
}

// BundleTier - quantity break pricing. Buying at least MinQuantity of the
// product drops the unit price to Price.
type BundleTier struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	ProductID   uint    `gorm:"index" json:"product_id"`
	MinQuantity int     `json:"min_quantity"`
	Price       float64 `json:"price"`
}

// Promotion - a time-bounded price override for a single product.
// Status (Scheduled/Active/Expired) is derived from the window on every
// read, never stored.
type Promotion struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BusinessID uint      `gorm:"index" json:"business_id"`
	BranchID   uint      `gorm:"index" json:"branch_id"`
	ProductID  uint      `json:"product_id"`
	Product    Product   `json:"product"` // Preload for display
	PromoPrice float64   `json:"promo_price"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"` // exclusive: promo is over AT this instant
}

// Customer - optional; transactions may be anonymous
type Customer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BusinessID uint      `gorm:"index" json:"business_id"`
	BranchID   uint      `gorm:"index" json:"branch_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

// Transaction - The Sale Header
type Transaction struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	ReceiptNumber string            `gorm:"uniqueIndex;size:40" json:"receipt_number"`
	BusinessID    uint              `gorm:"index" json:"business_id"`
	BranchID      uint              `gorm:"index" json:"branch_id"`
	UserID        uint              `json:"user_id"` // Who processed it
	CustomerID    *uint             `json:"customer_id"`
	Customer      *Customer         `json:"customer,omitempty"`
	Items         []TransactionItem `gorm:"foreignKey:TransactionID" json:"items"`
	Subtotal      float64           `json:"subtotal"`
	Discount      float64           `json:"discount"` // flat amount entered by the operator
	Tax           float64           `json:"tax"`
	TotalAmount   float64           `json:"total_amount"` // subtotal + tax - discount
	Currency      string            `json:"currency"`
	PaymentMethod string            `json:"payment_method"`
	Status        string            `json:"status"` // StatusPaid / StatusPartiallyRefunded / StatusRefunded
	SaleTime      time.Time         `json:"sale_time"`

	// Debt ("Utang") fields. Only meaningful when PaymentMethod equals the
	// business's DebtMethodLabel.
	IsPaid              bool       `json:"is_paid"`
	PaidAt              *time.Time `json:"paid_at"`
	DebtNoteImageURL    string     `json:"debt_note_image_url"`
	PaymentNoteImageURL string     `json:"payment_note_image_url"`
}

// TransactionItem - The specific items in a cart
type TransactionItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	TransactionID uint    `json:"transaction_id"`
	ProductID     uint    `json:"product_id"`
	ProductName   string  `json:"product_name"` // snapshot, survives product deletion
	Unit          string  `json:"unit"`
	Quantity      int     `json:"quantity"`
	RefundedQty   int     `json:"refunded_qty"`   // running total across refunds
	Price         float64 `json:"price"`          // unit price actually charged (promo or list)
	OriginalPrice float64 `json:"original_price"` // list price at time of sale
}
