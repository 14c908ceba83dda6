package handler

import (
	"net/http"
	"time"

	"gstbooks/internal/engine"
	"gstbooks/internal/middleware"
	"gstbooks/internal/models"
	"gstbooks/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// InvoiceHandler exposes invoice create/update/delete and payment
// recording.
type InvoiceHandler struct {
	Engine *engine.Engine
}

func NewInvoiceHandler(e *engine.Engine) *InvoiceHandler {
	return &InvoiceHandler{Engine: e}
}

type invoiceItemReq struct {
	ItemID          uint            `json:"item_id"`
	Description     string          `json:"description" binding:"max=255"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	Rate            decimal.Decimal `json:"rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

type invoiceReq struct {
	Type            string           `json:"type" binding:"required,oneof=SALES PURCHASE CREDIT_NOTE DEBIT_NOTE"`
	PartyLedgerID   uint             `json:"party_ledger_id" binding:"required"`
	AccountLedgerID uint             `json:"account_ledger_id" binding:"required"`
	InvoiceNumber   string           `json:"invoice_number" binding:"max=32"`
	Date            string           `json:"date" binding:"required"`
	DueDate         string           `json:"due_date"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	Narration       string           `json:"narration" binding:"max=255"`
	Items           []invoiceItemReq `json:"items" binding:"required"`
}

type invoiceItemResp struct {
	ID            uint            `json:"id"`
	ItemID        uint            `json:"item_id"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	Rate          decimal.Decimal `json:"rate"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGSTAmount    decimal.Decimal `json:"cgst_amount"`
	SGSTAmount    decimal.Decimal `json:"sgst_amount"`
	IGSTAmount    decimal.Decimal `json:"igst_amount"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

type invoiceResp struct {
	ID                uint                 `json:"id"`
	VoucherID         uint                 `json:"voucher_id"`
	Type              models.InvoiceType   `json:"type"`
	InvoiceNumber     string               `json:"invoice_number"`
	Date              time.Time            `json:"date"`
	DueDate           *time.Time           `json:"due_date,omitempty"`
	Subtotal          decimal.Decimal      `json:"subtotal"`
	TaxTotal          decimal.Decimal      `json:"tax_total"`
	DiscountAmount    decimal.Decimal      `json:"discount_amount"`
	GrandTotal        decimal.Decimal      `json:"grand_total"`
	PaidAmount        decimal.Decimal      `json:"paid_amount"`
	OutstandingAmount decimal.Decimal      `json:"outstanding_amount"`
	PaymentStatus     models.PaymentStatus `json:"payment_status"`
	Items             []invoiceItemResp    `json:"items"`
}

func toInvoiceResp(inv *models.Invoice) invoiceResp {
	resp := invoiceResp{
		ID:                inv.ID,
		VoucherID:         inv.VoucherID,
		Type:              inv.Type,
		InvoiceNumber:     inv.InvoiceNumber,
		Date:              inv.Date,
		DueDate:           inv.DueDate,
		Subtotal:          inv.Subtotal,
		TaxTotal:          inv.TaxTotal,
		DiscountAmount:    inv.DiscountAmount,
		GrandTotal:        inv.GrandTotal,
		PaidAmount:        inv.PaidAmount,
		OutstandingAmount: inv.OutstandingAmount,
		PaymentStatus:     inv.PaymentStatus,
	}
	for _, it := range inv.Items {
		resp.Items = append(resp.Items, invoiceItemResp{
			ID:            it.ID,
			ItemID:        it.ItemID,
			Description:   it.Description,
			Quantity:      it.Quantity,
			Rate:          it.Rate,
			TaxableAmount: it.TaxableAmount,
			CGSTAmount:    it.CGSTAmount,
			SGSTAmount:    it.SGSTAmount,
			IGSTAmount:    it.IGSTAmount,
			LineTotal:     it.LineTotal,
		})
	}
	return resp
}

func (req *invoiceReq) toInput() (engine.InvoiceInput, string) {
	date, ok := parseDate(req.Date)
	if !ok {
		return engine.InvoiceInput{}, "invalid date, expected YYYY-MM-DD"
	}
	in := engine.InvoiceInput{
		Type:            models.InvoiceType(req.Type),
		PartyLedgerID:   req.PartyLedgerID,
		AccountLedgerID: req.AccountLedgerID,
		InvoiceNumber:   req.InvoiceNumber,
		Date:            date,
		DiscountPercent: req.DiscountPercent,
		Narration:       req.Narration,
	}
	if req.DueDate != "" {
		due, ok := parseDate(req.DueDate)
		if !ok {
			return engine.InvoiceInput{}, "invalid due date, expected YYYY-MM-DD"
		}
		in.DueDate = &due
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, engine.InvoiceItemInput{
			ItemID:          it.ItemID,
			Description:     it.Description,
			Quantity:        it.Quantity,
			Rate:            it.Rate,
			DiscountPercent: it.DiscountPercent,
		})
	}
	return in, ""
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req invoiceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, msg := req.toInput()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}

	invoice, err := h.Engine.CreateInvoice(middleware.CompanyID(c), in)
	if err != nil {
		util.EngineError(c, err)
		return
	}
	util.Success(c, util.Response{"invoice": toInvoiceResp(invoice)})
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid invoice id")
		return
	}
	var req invoiceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, msg := req.toInput()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}

	invoice, err := h.Engine.UpdateInvoice(middleware.CompanyID(c), id, in)
	if err != nil {
		util.EngineError(c, err)
		return
	}
	util.Success(c, util.Response{"invoice": toInvoiceResp(invoice)})
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid invoice id")
		return
	}
	if err := h.Engine.DeleteInvoice(middleware.CompanyID(c), id); err != nil {
		util.EngineError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "invoice deleted"})
}

type paymentReq struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	BankLedgerID uint            `json:"bank_ledger_id" binding:"required"`
	Date         string          `json:"date" binding:"required"`
	Narration    string          `json:"narration" binding:"max=255"`
}

func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid invoice id")
		return
	}
	var req paymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date, expected YYYY-MM-DD")
		return
	}

	payment, err := h.Engine.RecordPayment(middleware.CompanyID(c), id, engine.PaymentInput{
		Amount:       req.Amount,
		BankLedgerID: req.BankLedgerID,
		Date:         date,
		Narration:    req.Narration,
	})
	if err != nil {
		util.EngineError(c, err)
		return
	}
	util.Success(c, util.Response{"payment": util.Response{
		"id":         payment.ID,
		"invoice_id": payment.InvoiceID,
		"voucher_id": payment.VoucherID,
		"amount":     payment.Amount,
		"date":       payment.Date,
	}})
}
