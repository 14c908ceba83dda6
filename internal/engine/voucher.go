package engine

import (
	"fmt"
	"time"

	"gstbooks/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// balanceEpsilon is the largest tolerated |ΣDr - ΣCr| difference.
var balanceEpsilon = decimal.New(1, -2) // 0.01

// VoucherEntryInput is one leg of a voucher submission.
type VoucherEntryInput struct {
	LedgerID uint
	Amount   decimal.Decimal
	Side     models.EntrySide
}

// VoucherInput is a voucher header plus its entries.
type VoucherInput struct {
	VoucherTypeID uint
	VoucherNumber string
	Date          time.Time
	Narration     string
	Entries       []VoucherEntryInput
}

// validateEntries enforces the double-entry invariant: at least two
// entries, positive magnitudes, and Dr/Cr sums equal within epsilon.
// Returns the Dr-side total, cached on the header.
func validateEntries(entries []VoucherEntryInput) (decimal.Decimal, error) {
	if len(entries) < 2 {
		return decimal.Zero, validationf("a voucher needs at least 2 entries, got %d", len(entries))
	}
	drTotal, crTotal := decimal.Zero, decimal.Zero
	for i, en := range entries {
		if en.LedgerID == 0 {
			return decimal.Zero, validationf("entry %d: ledger is required", i)
		}
		if !en.Amount.IsPositive() {
			return decimal.Zero, validationf("entry %d: amount must be positive", i)
		}
		switch en.Side {
		case models.SideDr:
			drTotal = drTotal.Add(en.Amount)
		case models.SideCr:
			crTotal = crTotal.Add(en.Amount)
		default:
			return decimal.Zero, validationf("entry %d: side must be Dr or Cr", i)
		}
	}
	if drTotal.Sub(crTotal).Abs().GreaterThan(balanceEpsilon) {
		return decimal.Zero, validationf("voucher is unbalanced: Dr %s vs Cr %s", drTotal, crTotal)
	}
	return drTotal, nil
}

// PostVoucher creates a voucher with its entries as one atomic unit.
func (e *Engine) PostVoucher(companyID uint, in VoucherInput) (*models.Voucher, error) {
	var voucher *models.Voucher
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var err error
		voucher, err = postVoucherTx(tx, companyID, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return voucher, nil
}

func postVoucherTx(tx *gorm.DB, companyID uint, in VoucherInput) (*models.Voucher, error) {
	if err := guardPeriod(tx, companyID, in.Date); err != nil {
		return nil, err
	}
	if in.VoucherTypeID == 0 {
		return nil, validationf("voucher type is required")
	}
	drTotal, err := validateEntries(in.Entries)
	if err != nil {
		return nil, err
	}

	number := in.VoucherNumber
	if number == "" {
		number, err = nextVoucherNumber(tx, companyID)
		if err != nil {
			return nil, err
		}
	}

	voucher := &models.Voucher{
		CompanyID:     companyID,
		VoucherTypeID: in.VoucherTypeID,
		VoucherNumber: number,
		Date:          in.Date,
		Narration:     in.Narration,
		TotalAmount:   drTotal,
	}
	if err := tx.Create(voucher).Error; err != nil {
		return nil, fmt.Errorf("create voucher: %w", err)
	}

	entries, err := insertEntriesTx(tx, companyID, voucher.ID, in.Entries)
	if err != nil {
		return nil, err
	}
	voucher.Entries = entries
	return voucher, nil
}

// insertEntriesTx writes voucher entries and applies their balance
// deltas to the ledgers' cached balances.
func insertEntriesTx(tx *gorm.DB, companyID, voucherID uint, inputs []VoucherEntryInput) ([]models.VoucherEntry, error) {
	entries := make([]models.VoucherEntry, 0, len(inputs))
	for _, in := range inputs {
		entries = append(entries, models.VoucherEntry{
			VoucherID: voucherID,
			LedgerID:  in.LedgerID,
			Amount:    in.Amount,
			Side:      in.Side,
		})
	}
	if err := tx.Create(&entries).Error; err != nil {
		return nil, fmt.Errorf("create voucher entries: %w", err)
	}
	if err := applyEntryBalances(tx, companyID, entries, +1); err != nil {
		return nil, err
	}
	return entries, nil
}

// ReplaceVoucher supersedes all entries of an existing voucher under
// the same voucher id, so foreign keys to the voucher stay valid. Both
// the old and the new date are period-gated.
func (e *Engine) ReplaceVoucher(companyID, voucherID uint, in VoucherInput) (*models.Voucher, error) {
	var voucher *models.Voucher
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var err error
		voucher, err = replaceVoucherTx(tx, companyID, voucherID, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return voucher, nil
}

func replaceVoucherTx(tx *gorm.DB, companyID, voucherID uint, in VoucherInput) (*models.Voucher, error) {
	voucher, err := loadVoucher(tx, companyID, voucherID)
	if err != nil {
		return nil, err
	}
	if err := guardPeriod(tx, companyID, voucher.Date); err != nil {
		return nil, err
	}
	if err := guardPeriod(tx, companyID, in.Date); err != nil {
		return nil, err
	}
	drTotal, err := validateEntries(in.Entries)
	if err != nil {
		return nil, err
	}

	if err := removeEntriesTx(tx, companyID, voucher.ID); err != nil {
		return nil, err
	}

	voucher.Date = in.Date
	voucher.Narration = in.Narration
	voucher.TotalAmount = drTotal
	if in.VoucherTypeID != 0 {
		voucher.VoucherTypeID = in.VoucherTypeID
	}
	if in.VoucherNumber != "" {
		voucher.VoucherNumber = in.VoucherNumber
	}
	if err := tx.Save(voucher).Error; err != nil {
		return nil, fmt.Errorf("update voucher: %w", err)
	}

	entries, err := insertEntriesTx(tx, companyID, voucher.ID, in.Entries)
	if err != nil {
		return nil, err
	}
	voucher.Entries = entries
	return voucher, nil
}

// VoidVoucher deletes a voucher and its entries. It refuses while an
// invoice or payment still references the voucher; those flows remove
// their own rows first inside the same unit.
func (e *Engine) VoidVoucher(companyID, voucherID uint) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		voucher, err := loadVoucher(tx, companyID, voucherID)
		if err != nil {
			return err
		}
		if err := guardPeriod(tx, companyID, voucher.Date); err != nil {
			return err
		}

		var refs int64
		if err := tx.Model(&models.Invoice{}).Where("voucher_id = ?", voucherID).Count(&refs).Error; err != nil {
			return fmt.Errorf("count invoice refs: %w", err)
		}
		if refs > 0 {
			return conflictf("voucher %d is backing an invoice", voucherID)
		}
		if err := tx.Model(&models.Payment{}).Where("voucher_id = ?", voucherID).Count(&refs).Error; err != nil {
			return fmt.Errorf("count payment refs: %w", err)
		}
		if refs > 0 {
			return conflictf("voucher %d is backing a payment", voucherID)
		}

		return voidVoucherTx(tx, companyID, voucher)
	})
}

// voidVoucherTx removes entries then the header; no orphan entries may
// survive a voucher.
func voidVoucherTx(tx *gorm.DB, companyID uint, voucher *models.Voucher) error {
	if err := removeEntriesTx(tx, companyID, voucher.ID); err != nil {
		return err
	}
	if err := tx.Delete(&models.Voucher{}, voucher.ID).Error; err != nil {
		return fmt.Errorf("delete voucher: %w", err)
	}
	return nil
}

// removeEntriesTx reverses the cached balance deltas of a voucher's
// entries and deletes them.
func removeEntriesTx(tx *gorm.DB, companyID, voucherID uint) error {
	var entries []models.VoucherEntry
	if err := tx.Where("voucher_id = ?", voucherID).Find(&entries).Error; err != nil {
		return fmt.Errorf("load voucher entries: %w", err)
	}
	if err := applyEntryBalances(tx, companyID, entries, -1); err != nil {
		return err
	}
	if err := tx.Where("voucher_id = ?", voucherID).Delete(&models.VoucherEntry{}).Error; err != nil {
		return fmt.Errorf("delete voucher entries: %w", err)
	}
	return nil
}

func loadVoucher(tx *gorm.DB, companyID, voucherID uint) (*models.Voucher, error) {
	var voucher models.Voucher
	err := tx.Where("id = ? AND company_id = ?", voucherID, companyID).First(&voucher).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Entity: "voucher", ID: voucherID}
		}
		return nil, fmt.Errorf("load voucher %d: %w", voucherID, err)
	}
	return &voucher, nil
}

// nextVoucherNumber resolves a simple per-company sequence. Uniqueness
// under concurrent creation is the caller's responsibility.
func nextVoucherNumber(tx *gorm.DB, companyID uint) (string, error) {
	var count int64
	if err := tx.Model(&models.Voucher{}).Where("company_id = ?", companyID).Count(&count).Error; err != nil {
		return "", fmt.Errorf("count vouchers: %w", err)
	}
	return fmt.Sprintf("V-%05d", count+1), nil
}

// resolveVoucherType finds or auto-creates the company's voucher type
// by name, the engine's only master-data write.
func resolveVoucherType(tx *gorm.DB, companyID uint, name string) (*models.VoucherType, error) {
	var vt models.VoucherType
	err := tx.Where(models.VoucherType{CompanyID: companyID, Name: name}).
		FirstOrCreate(&vt).Error
	if err != nil {
		return nil, fmt.Errorf("resolve voucher type %q: %w", name, err)
	}
	return &vt, nil
}
