package engine

import (
	"fmt"

	"gstbooks/internal/models"

	"gorm.io/gorm"
)

// increaseSide returns the entry side that increases balances for a
// ledger group type: Dr for Asset/Expense, Cr for Liability/Income.
func increaseSide(t models.GroupType) models.EntrySide {
	if t == models.GroupAsset || t == models.GroupExpense {
		return models.SideDr
	}
	return models.SideCr
}

// loadLedger fetches a company's ledger with its group.
func loadLedger(tx *gorm.DB, companyID, ledgerID uint) (*models.Ledger, error) {
	var ledger models.Ledger
	err := tx.Preload("Group").
		Where("id = ? AND company_id = ?", ledgerID, companyID).
		First(&ledger).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Entity: "ledger", ID: ledgerID}
		}
		return nil, fmt.Errorf("load ledger %d: %w", ledgerID, err)
	}
	return &ledger, nil
}

// applyEntryBalances adjusts the cached CurrentBalance of each entry's
// ledger. direction is +1 when posting entries and -1 when removing
// them. The cache is informational; the entry stream stays the source
// of truth.
func applyEntryBalances(tx *gorm.DB, companyID uint, entries []models.VoucherEntry, direction int64) error {
	for _, en := range entries {
		ledger, err := loadLedger(tx, companyID, en.LedgerID)
		if err != nil {
			return err
		}
		delta := en.Amount
		if en.Side != increaseSide(ledger.Group.Type) {
			delta = delta.Neg()
		}
		if direction < 0 {
			delta = delta.Neg()
		}
		err = tx.Model(&models.Ledger{}).
			Where("id = ?", ledger.ID).
			UpdateColumn("current_balance", gorm.Expr("current_balance + ?", delta)).Error
		if err != nil {
			return fmt.Errorf("update ledger %d balance: %w", ledger.ID, err)
		}
	}
	return nil
}
