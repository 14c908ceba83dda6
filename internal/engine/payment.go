package engine

import (
	"fmt"
	"time"

	"gstbooks/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentInput records money received or paid against an invoice.
type PaymentInput struct {
	Amount       decimal.Decimal
	BankLedgerID uint
	Date         time.Time
	Narration    string
}

// RecordPayment posts a Receipt/Payment voucher (bank or cash ledger
// against the party ledger) and rolls the invoice's paid, outstanding
// and status fields forward, atomically. The invariant
// outstanding = grandTotal - paidAmount always holds afterwards.
func (e *Engine) RecordPayment(companyID, invoiceID uint, in PaymentInput) (*models.Payment, error) {
	var payment *models.Payment
	err := e.db.Transaction(func(tx *gorm.DB) error {
		invoice, err := loadInvoice(tx, companyID, invoiceID)
		if err != nil {
			return err
		}
		if err := guardPeriod(tx, companyID, in.Date); err != nil {
			return err
		}
		if !in.Amount.IsPositive() {
			return validationf("payment amount must be positive")
		}
		if in.Amount.GreaterThan(invoice.OutstandingAmount) {
			return validationf("payment %s exceeds outstanding %s", in.Amount, invoice.OutstandingAmount)
		}
		if in.BankLedgerID == 0 {
			return validationf("bank/cash ledger is required")
		}
		if _, err := loadLedger(tx, companyID, in.BankLedgerID); err != nil {
			return err
		}

		// Money flows in for sales and debit notes, out for purchases
		// and credit notes.
		typeName := "Receipt"
		bankSide, partySide := models.SideDr, models.SideCr
		if invoice.Type == models.InvoicePurchase || invoice.Type == models.InvoiceCreditNote {
			typeName = "Payment"
			bankSide, partySide = models.SideCr, models.SideDr
		}
		vt, err := resolveVoucherType(tx, companyID, typeName)
		if err != nil {
			return err
		}

		voucher, err := postVoucherTx(tx, companyID, VoucherInput{
			VoucherTypeID: vt.ID,
			Date:          in.Date,
			Narration:     fmt.Sprintf("%s against %s", typeName, invoice.InvoiceNumber),
			Entries: []VoucherEntryInput{
				{LedgerID: in.BankLedgerID, Amount: in.Amount, Side: bankSide},
				{LedgerID: invoice.PartyLedgerID, Amount: in.Amount, Side: partySide},
			},
		})
		if err != nil {
			return err
		}

		payment = &models.Payment{
			CompanyID:    companyID,
			InvoiceID:    invoice.ID,
			VoucherID:    voucher.ID,
			BankLedgerID: in.BankLedgerID,
			Amount:       in.Amount,
			Date:         in.Date,
			Narration:    in.Narration,
		}
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		paid := invoice.PaidAmount.Add(in.Amount)
		return tx.Model(invoice).Updates(map[string]interface{}{
			"paid_amount":        paid,
			"outstanding_amount": invoice.GrandTotal.Sub(paid),
			"payment_status":     derivePaymentStatus(paid, invoice.GrandTotal),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}
