package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType is a company-scoped label (Sales, Purchase, Payment,
// Receipt, Journal, Credit Note, Debit Note...). The engine auto-creates
// missing rows by (company, name); everything else is master data.
type VoucherType struct {
	ID        uint   `gorm:"primaryKey"`
	CompanyID uint   `gorm:"index:idx_voucher_type_company_name,unique;not null"`
	Name      string `gorm:"size:32;index:idx_voucher_type_company_name,unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Voucher is a balanced double-entry transaction header. TotalAmount
// caches the debit-side sum.
type Voucher struct {
	ID            uint            `gorm:"primaryKey"`
	CompanyID     uint            `gorm:"index;not null"`
	VoucherTypeID uint            `gorm:"index;not null"`
	VoucherNumber string          `gorm:"size:32;not null"`
	Date          time.Time       `gorm:"index;not null"`
	Narration     string          `gorm:"size:255"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Entries []VoucherEntry `gorm:"constraint:OnDelete:CASCADE"`
}

// VoucherEntry is one leg of a voucher. Amount is a non-negative
// magnitude; Side carries the sign. Insertion order (the primary key)
// is the tie-break when replaying same-day entries.
type VoucherEntry struct {
	ID        uint            `gorm:"primaryKey"`
	VoucherID uint            `gorm:"index;not null"`
	LedgerID  uint            `gorm:"index;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Side      EntrySide       `gorm:"size:2;not null"`
	CreatedAt time.Time
}
