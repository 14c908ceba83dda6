package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroupType classifies a ledger group and controls the sign convention
// used when building statements: Dr increases Asset/Expense balances,
// Cr increases Liability/Income balances.
type GroupType string

const (
	GroupAsset     GroupType = "ASSET"
	GroupLiability GroupType = "LIABILITY"
	GroupIncome    GroupType = "INCOME"
	GroupExpense   GroupType = "EXPENSE"
)

// EntrySide is the debit/credit side of a voucher entry or an opening
// balance.
type EntrySide string

const (
	SideDr EntrySide = "Dr"
	SideCr EntrySide = "Cr"
)

// Opposite returns the other side.
func (s EntrySide) Opposite() EntrySide {
	if s == SideDr {
		return SideCr
	}
	return SideDr
}

// LedgerGroup is a node in the company's chart-of-accounts tree.
// Parent, when set, must belong to the same company.
type LedgerGroup struct {
	ID        uint      `gorm:"primaryKey"`
	CompanyID uint      `gorm:"index;not null"`
	ParentID  *uint     `gorm:"index"`
	Name      string    `gorm:"size:64;not null"`
	Type      GroupType `gorm:"size:16;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ledger is an account in the chart of accounts. State is the party's
// GST state, blank for non-party accounts. OpeningBalance is a
// non-negative magnitude with OpeningBalanceType carrying its side.
// CurrentBalance is a cached convenience value; the entry stream is the
// source of truth.
type Ledger struct {
	ID                 uint            `gorm:"primaryKey"`
	CompanyID          uint            `gorm:"index;not null"`
	GroupID            uint            `gorm:"index;not null"`
	Name               string          `gorm:"size:128;not null"`
	GSTIN              string          `gorm:"size:15"`
	State              string          `gorm:"size:64"`
	OpeningBalance     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	OpeningBalanceType EntrySide       `gorm:"size:2;not null;default:Dr"`
	CurrentBalance     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Group LedgerGroup `gorm:"constraint:OnDelete:RESTRICT"`
}
