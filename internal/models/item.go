package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit is an item measurement unit (Nos, Kg, Ltr...). Master data,
// read-only to this service.
type Unit struct {
	ID        uint   `gorm:"primaryKey"`
	CompanyID uint   `gorm:"index;not null"`
	Name      string `gorm:"size:32;not null"`
	Symbol    string `gorm:"size:8"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item is a stock-keeping unit. CurrentQuantity is mutated only by the
// inventory sync inside the same transaction as the document mutation
// that moves stock; negative quantities are allowed.
type Item struct {
	ID              uint            `gorm:"primaryKey"`
	CompanyID       uint            `gorm:"index;not null"`
	UnitID          uint            `gorm:"index"`
	Name            string          `gorm:"size:128;not null"`
	TaxRate         decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"` // GST percent
	SalesRate       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PurchaseRate    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CurrentQuantity decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
