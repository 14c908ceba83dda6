package database

import (
	"fmt"

	"gstbooks/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Company{},
		&models.CompanySettings{},
		&models.FinancialYear{},
		&models.LedgerGroup{},
		&models.Ledger{},
		&models.VoucherType{},
		&models.Voucher{},
		&models.VoucherEntry{},
		&models.Unit{},
		&models.Item{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Payment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
