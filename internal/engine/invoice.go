package engine

import (
	"fmt"
	"time"

	"gstbooks/internal/models"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var invoiceNumberPrefix = map[models.InvoiceType]string{
	models.InvoiceSales:      "INV",
	models.InvoicePurchase:   "PUR",
	models.InvoiceCreditNote: "CRN",
	models.InvoiceDebitNote:  "DBN",
}

// InvoiceItemInput is one invoice line as submitted. ItemID zero marks
// a service line (no stock movement, no item tax rate).
type InvoiceItemInput struct {
	ItemID          uint
	Description     string
	Quantity        decimal.Decimal
	Rate            decimal.Decimal
	DiscountPercent decimal.Decimal
}

// InvoiceInput describes a sales/purchase/credit-note/debit-note
// document to be translated into a balanced voucher.
type InvoiceInput struct {
	Type            models.InvoiceType
	PartyLedgerID   uint
	AccountLedgerID uint
	InvoiceNumber   string
	Date            time.Time
	DueDate         *time.Time
	DiscountPercent decimal.Decimal
	Narration       string
	Items           []InvoiceItemInput
}

type invoiceTotals struct {
	Subtotal       decimal.Decimal
	CGST           decimal.Decimal
	SGST           decimal.Decimal
	IGST           decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxTotal       decimal.Decimal
	GrandTotal     decimal.Decimal
}

// CreateInvoice computes GST and totals for the document, posts the
// backing voucher, persists the invoice with its items and applies the
// inventory deltas as one atomic unit, gated by the period lock.
func (e *Engine) CreateInvoice(companyID uint, in InvoiceInput) (*models.Invoice, error) {
	var invoice *models.Invoice
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := guardPeriod(tx, companyID, in.Date); err != nil {
			return err
		}
		conv, err := conventionFor(in.Type)
		if err != nil {
			return err
		}

		lines, totals, err := computeInvoiceLines(tx, companyID, in)
		if err != nil {
			return err
		}

		vt, err := resolveVoucherType(tx, companyID, voucherTypeName[in.Type])
		if err != nil {
			return err
		}
		entries, err := buildInvoiceEntries(tx, companyID, in, conv, totals)
		if err != nil {
			return err
		}

		number := in.InvoiceNumber
		if number == "" {
			number, err = nextInvoiceNumber(tx, companyID, in.Type)
			if err != nil {
				return err
			}
		}

		voucher, err := postVoucherTx(tx, companyID, VoucherInput{
			VoucherTypeID: vt.ID,
			VoucherNumber: number,
			Date:          in.Date,
			Narration:     in.Narration,
			Entries:       entries,
		})
		if err != nil {
			return err
		}

		invoice = &models.Invoice{
			CompanyID:         companyID,
			VoucherID:         voucher.ID,
			PartyLedgerID:     in.PartyLedgerID,
			AccountLedgerID:   in.AccountLedgerID,
			Type:              in.Type,
			InvoiceNumber:     number,
			Date:              in.Date,
			DueDate:           in.DueDate,
			Subtotal:          totals.Subtotal,
			TaxTotal:          totals.TaxTotal,
			DiscountPercent:   in.DiscountPercent,
			DiscountAmount:    totals.DiscountAmount,
			GrandTotal:        totals.GrandTotal,
			PaidAmount:        decimal.Zero,
			OutstandingAmount: totals.GrandTotal,
			PaymentStatus:     models.PaymentUnpaid,
			Narration:         in.Narration,
		}
		if err := tx.Create(invoice).Error; err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}

		for i := range lines {
			lines[i].InvoiceID = invoice.ID
		}
		if err := tx.Create(&lines).Error; err != nil {
			return fmt.Errorf("create invoice items: %w", err)
		}
		invoice.Items = lines

		return applyInventory(tx, companyID, lines, in.Type, false)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// UpdateInvoice performs reversal then re-creation under the invoice's
// stable voucher id: old inventory deltas are reversed with the
// pre-edit items and type, old items and voucher entries are removed,
// then the new document is written exactly as in create. Rejected when
// the invoice has payments.
func (e *Engine) UpdateInvoice(companyID, invoiceID uint, in InvoiceInput) (*models.Invoice, error) {
	var invoice *models.Invoice
	err := e.db.Transaction(func(tx *gorm.DB) error {
		old, err := loadInvoice(tx, companyID, invoiceID)
		if err != nil {
			return err
		}
		if err := guardNoPayments(tx, old.ID, "edit"); err != nil {
			return err
		}
		if err := guardPeriod(tx, companyID, old.Date); err != nil {
			return err
		}
		if err := guardPeriod(tx, companyID, in.Date); err != nil {
			return err
		}
		conv, err := conventionFor(in.Type)
		if err != nil {
			return err
		}

		// Reverse the pre-edit state.
		if err := applyInventory(tx, companyID, old.Items, old.Type, true); err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", old.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return fmt.Errorf("delete invoice items: %w", err)
		}

		// Recompute and reapply.
		lines, totals, err := computeInvoiceLines(tx, companyID, in)
		if err != nil {
			return err
		}
		vt, err := resolveVoucherType(tx, companyID, voucherTypeName[in.Type])
		if err != nil {
			return err
		}
		entries, err := buildInvoiceEntries(tx, companyID, in, conv, totals)
		if err != nil {
			return err
		}

		number := in.InvoiceNumber
		if number == "" {
			number = old.InvoiceNumber
		}
		if _, err := replaceVoucherTx(tx, companyID, old.VoucherID, VoucherInput{
			VoucherTypeID: vt.ID,
			VoucherNumber: number,
			Date:          in.Date,
			Narration:     in.Narration,
			Entries:       entries,
		}); err != nil {
			return err
		}

		old.PartyLedgerID = in.PartyLedgerID
		old.AccountLedgerID = in.AccountLedgerID
		old.Type = in.Type
		old.InvoiceNumber = number
		old.Date = in.Date
		old.DueDate = in.DueDate
		old.Subtotal = totals.Subtotal
		old.TaxTotal = totals.TaxTotal
		old.DiscountPercent = in.DiscountPercent
		old.DiscountAmount = totals.DiscountAmount
		old.GrandTotal = totals.GrandTotal
		old.OutstandingAmount = totals.GrandTotal.Sub(old.PaidAmount)
		old.PaymentStatus = derivePaymentStatus(old.PaidAmount, totals.GrandTotal)
		old.Narration = in.Narration
		// Save upserts loaded associations; the stale pre-edit items
		// must not ride along after their rows were deleted.
		old.Items = nil
		if err := tx.Save(old).Error; err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}

		for i := range lines {
			lines[i].InvoiceID = old.ID
		}
		if err := tx.Create(&lines).Error; err != nil {
			return fmt.Errorf("create invoice items: %w", err)
		}
		old.Items = lines
		invoice = old

		return applyInventory(tx, companyID, lines, in.Type, false)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// DeleteInvoice reverses inventory, removes items, invoice and the
// backing voucher with its entries, atomically. Rejected when the
// invoice has payments.
func (e *Engine) DeleteInvoice(companyID, invoiceID uint) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		invoice, err := loadInvoice(tx, companyID, invoiceID)
		if err != nil {
			return err
		}
		if err := guardNoPayments(tx, invoice.ID, "delete"); err != nil {
			return err
		}
		if err := guardPeriod(tx, companyID, invoice.Date); err != nil {
			return err
		}

		if err := applyInventory(tx, companyID, invoice.Items, invoice.Type, true); err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return fmt.Errorf("delete invoice items: %w", err)
		}
		if err := tx.Delete(&models.Invoice{}, invoice.ID).Error; err != nil {
			return fmt.Errorf("delete invoice: %w", err)
		}

		voucher, err := loadVoucher(tx, companyID, invoice.VoucherID)
		if err != nil {
			return err
		}
		return voidVoucherTx(tx, companyID, voucher)
	})
}

// computeInvoiceLines resolves states and items and produces the
// per-line GST decomposition and document totals (create steps 1-3).
func computeInvoiceLines(tx *gorm.DB, companyID uint, in InvoiceInput) ([]models.InvoiceItem, invoiceTotals, error) {
	var totals invoiceTotals
	if len(in.Items) == 0 {
		return nil, totals, validationf("an invoice needs at least 1 item")
	}
	if in.PartyLedgerID == 0 || in.AccountLedgerID == 0 {
		return nil, totals, validationf("party and account ledgers are required")
	}

	var company models.Company
	if err := tx.First(&company, companyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, totals, &NotFoundError{Entity: "company", ID: companyID}
		}
		return nil, totals, fmt.Errorf("load company: %w", err)
	}
	party, err := loadLedger(tx, companyID, in.PartyLedgerID)
	if err != nil {
		return nil, totals, err
	}
	if _, err := loadLedger(tx, companyID, in.AccountLedgerID); err != nil {
		return nil, totals, err
	}
	interState := InterState(company.State, party.State)

	lines := make([]models.InvoiceItem, 0, len(in.Items))
	for i, li := range in.Items {
		if !li.Quantity.IsPositive() {
			return nil, totals, validationf("item %d: quantity must be positive", i)
		}
		if li.Rate.IsNegative() {
			return nil, totals, validationf("item %d: rate cannot be negative", i)
		}

		taxRate := decimal.Zero
		if li.ItemID != 0 {
			var item models.Item
			err := tx.Where("id = ? AND company_id = ?", li.ItemID, companyID).First(&item).Error
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return nil, totals, &NotFoundError{Entity: "item", ID: li.ItemID}
				}
				return nil, totals, fmt.Errorf("load item %d: %w", li.ItemID, err)
			}
			taxRate = item.TaxRate
		}

		amount := li.Quantity.Mul(li.Rate)
		discount := amount.Mul(li.DiscountPercent).Div(hundred).Round(2)
		taxable := amount.Sub(discount).Round(2)
		split := SplitGST(taxable, taxRate, interState)

		lines = append(lines, models.InvoiceItem{
			ItemID:          li.ItemID,
			Description:     li.Description,
			Quantity:        li.Quantity,
			Rate:            li.Rate,
			DiscountPercent: li.DiscountPercent,
			TaxableAmount:   taxable,
			CGSTRate:        split.CGSTRate,
			CGSTAmount:      split.CGSTAmount,
			SGSTRate:        split.SGSTRate,
			SGSTAmount:      split.SGSTAmount,
			IGSTRate:        split.IGSTRate,
			IGSTAmount:      split.IGSTAmount,
			LineTotal:       taxable.Add(split.Total()),
		})

		totals.Subtotal = totals.Subtotal.Add(taxable)
		totals.CGST = totals.CGST.Add(split.CGSTAmount)
		totals.SGST = totals.SGST.Add(split.SGSTAmount)
		totals.IGST = totals.IGST.Add(split.IGSTAmount)
	}

	totals.DiscountAmount = totals.Subtotal.Mul(in.DiscountPercent).Div(hundred).Round(2)
	totals.TaxTotal = totals.CGST.Add(totals.SGST).Add(totals.IGST)
	totals.GrandTotal = totals.Subtotal.Add(totals.TaxTotal).Sub(totals.DiscountAmount)
	return lines, totals, nil
}

// buildInvoiceEntries assembles the voucher legs: the party entry at
// grand total, the account entry at subtotal minus document discount,
// and one tax entry per non-zero bucket on the account side. A tax
// bucket whose ledger is not configured for the company gets no entry
// of its own; its amount is folded into the account entry so the
// voucher stays balanced, and the skip is logged.
func buildInvoiceEntries(tx *gorm.DB, companyID uint, in InvoiceInput, conv sideConvention, totals invoiceTotals) ([]VoucherEntryInput, error) {
	var settings models.CompanySettings
	if err := tx.Where("company_id = ?", companyID).First(&settings).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("load company settings: %w", err)
		}
		// no settings row: all tax ledgers unbound
	}

	accountAmount := totals.Subtotal.Sub(totals.DiscountAmount)
	taxBuckets := []struct {
		name     string
		ledgerID uint
		amount   decimal.Decimal
	}{
		{"CGST", settings.CGSTLedgerID, totals.CGST},
		{"SGST", settings.SGSTLedgerID, totals.SGST},
		{"IGST", settings.IGSTLedgerID, totals.IGST},
	}

	entries := []VoucherEntryInput{
		{LedgerID: in.PartyLedgerID, Amount: totals.GrandTotal, Side: conv.Party},
	}
	taxEntries := make([]VoucherEntryInput, 0, 3)
	for _, b := range taxBuckets {
		if b.amount.IsZero() {
			continue
		}
		if b.ledgerID == 0 {
			log.Warn().
				Uint("company_id", companyID).
				Str("bucket", b.name).
				Str("amount", b.amount.String()).
				Msg("tax ledger not configured, folding into account entry")
			accountAmount = accountAmount.Add(b.amount)
			continue
		}
		taxEntries = append(taxEntries, VoucherEntryInput{
			LedgerID: b.ledgerID,
			Amount:   b.amount,
			Side:     conv.Account,
		})
	}

	entries = append(entries, VoucherEntryInput{
		LedgerID: in.AccountLedgerID,
		Amount:   accountAmount,
		Side:     conv.Account,
	})
	return append(entries, taxEntries...), nil
}

func loadInvoice(tx *gorm.DB, companyID, invoiceID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := tx.Preload("Items").
		Where("id = ? AND company_id = ?", invoiceID, companyID).
		First(&invoice).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Entity: "invoice", ID: invoiceID}
		}
		return nil, fmt.Errorf("load invoice %d: %w", invoiceID, err)
	}
	return &invoice, nil
}

// guardNoPayments freezes invoices that have payment rows.
func guardNoPayments(tx *gorm.DB, invoiceID uint, action string) error {
	var count int64
	if err := tx.Model(&models.Payment{}).Where("invoice_id = ?", invoiceID).Count(&count).Error; err != nil {
		return fmt.Errorf("count payments: %w", err)
	}
	if count > 0 {
		return conflictf("cannot %s invoice %d: it has payments", action, invoiceID)
	}
	return nil
}

func derivePaymentStatus(paid, grand decimal.Decimal) models.PaymentStatus {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return models.PaymentUnpaid
	case paid.GreaterThanOrEqual(grand):
		return models.PaymentPaid
	default:
		return models.PaymentPartial
	}
}

// nextInvoiceNumber resolves a simple per-company, per-type sequence.
// Uniqueness under concurrent creation is the caller's responsibility.
func nextInvoiceNumber(tx *gorm.DB, companyID uint, t models.InvoiceType) (string, error) {
	var count int64
	err := tx.Model(&models.Invoice{}).
		Where("company_id = ? AND type = ?", companyID, t).
		Count(&count).Error
	if err != nil {
		return "", fmt.Errorf("count invoices: %w", err)
	}
	return fmt.Sprintf("%s-%05d", invoiceNumberPrefix[t], count+1), nil
}
