package engine

import (
	"fmt"

	"gstbooks/internal/models"

	"gorm.io/gorm"
)

// DeleteLedger removes an account from the chart of accounts. A ledger
// with any posted entries cannot be deleted.
func (e *Engine) DeleteLedger(companyID, ledgerID uint) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		ledger, err := loadLedger(tx, companyID, ledgerID)
		if err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.VoucherEntry{}).Where("ledger_id = ?", ledgerID).Count(&count).Error; err != nil {
			return fmt.Errorf("count ledger entries: %w", err)
		}
		if count > 0 {
			return conflictf("ledger %q has %d posted entries", ledger.Name, count)
		}
		return tx.Delete(&models.Ledger{}, ledgerID).Error
	})
}
