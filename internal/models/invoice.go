package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType selects the document's posting convention: which side the
// party and account entries take, and the sign of inventory movement.
type InvoiceType string

const (
	InvoiceSales      InvoiceType = "SALES"
	InvoicePurchase   InvoiceType = "PURCHASE"
	InvoiceCreditNote InvoiceType = "CREDIT_NOTE"
	InvoiceDebitNote  InvoiceType = "DEBIT_NOTE"
)

// PaymentStatus is derived from paid vs grand total, never set directly.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// Invoice is a business document backed 1:1 by a voucher. The voucher
// id never changes across edits; entries underneath it are replaced.
type Invoice struct {
	ID              uint            `gorm:"primaryKey"`
	CompanyID       uint            `gorm:"index;not null"`
	VoucherID       uint            `gorm:"index"` // set during creation, stable afterwards
	PartyLedgerID   uint            `gorm:"index;not null"`
	AccountLedgerID uint            `gorm:"index;not null"` // sales or purchase ledger
	Type            InvoiceType     `gorm:"size:16;index;not null"`
	InvoiceNumber   string          `gorm:"size:32;not null"`
	Date            time.Time       `gorm:"index;not null"`
	DueDate         *time.Time      `gorm:"index"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TaxTotal        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	GrandTotal      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	// OutstandingAmount must always equal GrandTotal - PaidAmount.
	OutstandingAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PaymentStatus     PaymentStatus   `gorm:"size:8;index;not null;default:UNPAID"`
	Narration         string          `gorm:"size:255"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Items []InvoiceItem `gorm:"constraint:OnDelete:CASCADE"`
}

// InvoiceItem is one invoice line. ItemID may be zero for service lines,
// which never move stock.
type InvoiceItem struct {
	ID              uint            `gorm:"primaryKey"`
	InvoiceID       uint            `gorm:"index;not null"`
	ItemID          uint            `gorm:"index"`
	Description     string          `gorm:"size:255"`
	Quantity        decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	Rate            decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	TaxableAmount   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CGSTRate        decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CGSTAmount      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	SGSTRate        decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	SGSTAmount      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	IGSTRate        decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	IGSTAmount      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt       time.Time
}

// Payment records money received or paid against an invoice. Rows are
// written by the payment flow; their mere existence freezes the invoice
// against edit and delete.
type Payment struct {
	ID           uint            `gorm:"primaryKey"`
	CompanyID    uint            `gorm:"index;not null"`
	InvoiceID    uint            `gorm:"index;not null"`
	VoucherID    uint            `gorm:"index"`
	BankLedgerID uint            `gorm:"index;not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Date         time.Time       `gorm:"index;not null"`
	Narration    string          `gorm:"size:255"`
	CreatedAt    time.Time
}
