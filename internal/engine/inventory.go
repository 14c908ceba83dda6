package engine

import (
	"fmt"

	"gstbooks/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// applyInventory adds the signed quantity delta of every stock line to
// its item's cached quantity. reverse flips the sign (edit-away or
// delete). Lines without an item are service lines and move no stock;
// negative stock is permitted, the engine does not reserve or check
// availability.
func applyInventory(tx *gorm.DB, companyID uint, items []models.InvoiceItem, docType models.InvoiceType, reverse bool) error {
	sign := quantitySign[docType]
	if reverse {
		sign = -sign
	}
	for _, it := range items {
		if it.ItemID == 0 {
			continue
		}
		delta := it.Quantity.Mul(decimal.NewFromInt(sign))
		err := tx.Model(&models.Item{}).
			Where("id = ? AND company_id = ?", it.ItemID, companyID).
			UpdateColumn("current_quantity", gorm.Expr("current_quantity + ?", delta)).Error
		if err != nil {
			return fmt.Errorf("adjust item %d quantity: %w", it.ItemID, err)
		}
	}
	return nil
}
