package engine

import (
	"gstbooks/internal/models"
)

// sideConvention fixes which side the party and account entries take
// for a document type. Tax entries always follow the account side:
// output tax moves with sales/credit-note reversal, input tax with
// purchase/debit-note reversal.
type sideConvention struct {
	Party   models.EntrySide
	Account models.EntrySide
}

var sideByType = map[models.InvoiceType]sideConvention{
	models.InvoiceSales:      {Party: models.SideDr, Account: models.SideCr},
	models.InvoicePurchase:   {Party: models.SideCr, Account: models.SideDr},
	models.InvoiceCreditNote: {Party: models.SideCr, Account: models.SideDr},
	models.InvoiceDebitNote:  {Party: models.SideDr, Account: models.SideCr},
}

// quantitySign is the per-unit stock delta applied on create; reversal
// flips it.
var quantitySign = map[models.InvoiceType]int64{
	models.InvoiceSales:      -1,
	models.InvoicePurchase:   +1,
	models.InvoiceCreditNote: +1,
	models.InvoiceDebitNote:  -1,
}

var voucherTypeName = map[models.InvoiceType]string{
	models.InvoiceSales:      "Sales",
	models.InvoicePurchase:   "Purchase",
	models.InvoiceCreditNote: "Credit Note",
	models.InvoiceDebitNote:  "Debit Note",
}

func conventionFor(t models.InvoiceType) (sideConvention, error) {
	conv, ok := sideByType[t]
	if !ok {
		return sideConvention{}, validationf("unknown invoice type %q", t)
	}
	return conv, nil
}
