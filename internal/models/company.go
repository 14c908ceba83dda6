package models

import "time"

// Company is the tenant root. Rows are provisioned by an external
// onboarding flow; this service only reads them.
type Company struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:128;not null"`
	GSTIN     string `gorm:"size:15"`
	State     string `gorm:"size:64"` // used for inter-state GST determination
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanySettings binds a company's tax ledgers explicitly.
// A zero ledger ID means "not configured" and the matching tax entry
// is skipped when posting invoices.
type CompanySettings struct {
	ID           uint `gorm:"primaryKey"`
	CompanyID    uint `gorm:"uniqueIndex;not null"`
	CGSTLedgerID uint `gorm:"index"`
	SGSTLedgerID uint `gorm:"index"`
	IGSTLedgerID uint `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
