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

// VoucherHandler exposes manual journal voucher mutations.
type VoucherHandler struct {
	Engine *engine.Engine
}

func NewVoucherHandler(e *engine.Engine) *VoucherHandler {
	return &VoucherHandler{Engine: e}
}

type voucherEntryReq struct {
	LedgerID uint            `json:"ledger_id" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Side     string          `json:"side" binding:"required,oneof=Dr Cr"`
}

type voucherReq struct {
	VoucherTypeID uint              `json:"voucher_type_id" binding:"required"`
	VoucherNumber string            `json:"voucher_number" binding:"max=32"`
	Date          string            `json:"date" binding:"required"`
	Narration     string            `json:"narration" binding:"max=255"`
	Entries       []voucherEntryReq `json:"entries" binding:"required"`
}

type voucherEntryResp struct {
	ID       uint             `json:"id"`
	LedgerID uint             `json:"ledger_id"`
	Amount   decimal.Decimal  `json:"amount"`
	Side     models.EntrySide `json:"side"`
}

type voucherResp struct {
	ID            uint               `json:"id"`
	VoucherTypeID uint               `json:"voucher_type_id"`
	VoucherNumber string             `json:"voucher_number"`
	Date          time.Time          `json:"date"`
	Narration     string             `json:"narration"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Entries       []voucherEntryResp `json:"entries"`
}

func toVoucherResp(v *models.Voucher) voucherResp {
	resp := voucherResp{
		ID:            v.ID,
		VoucherTypeID: v.VoucherTypeID,
		VoucherNumber: v.VoucherNumber,
		Date:          v.Date,
		Narration:     v.Narration,
		TotalAmount:   v.TotalAmount,
	}
	for _, en := range v.Entries {
		resp.Entries = append(resp.Entries, voucherEntryResp{
			ID:       en.ID,
			LedgerID: en.LedgerID,
			Amount:   en.Amount,
			Side:     en.Side,
		})
	}
	return resp
}

func (req *voucherReq) toInput() (engine.VoucherInput, bool) {
	date, ok := parseDate(req.Date)
	if !ok {
		return engine.VoucherInput{}, false
	}
	in := engine.VoucherInput{
		VoucherTypeID: req.VoucherTypeID,
		VoucherNumber: req.VoucherNumber,
		Date:          date,
		Narration:     req.Narration,
	}
	for _, en := range req.Entries {
		in.Entries = append(in.Entries, engine.VoucherEntryInput{
			LedgerID: en.LedgerID,
			Amount:   en.Amount,
			Side:     models.EntrySide(en.Side),
		})
	}
	return in, true
}

func (h *VoucherHandler) Create(c *gin.Context) {
	var req voucherReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, ok := req.toInput()
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date, expected YYYY-MM-DD")
		return
	}

	voucher, err := h.Engine.PostVoucher(middleware.CompanyID(c), in)
	if err != nil {
		util.EngineError(c, err)
		return
	}
	util.Success(c, util.Response{"voucher": toVoucherResp(voucher)})
}

func (h *VoucherHandler) Replace(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid voucher id")
		return
	}
	var req voucherReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, ok := req.toInput()
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date, expected YYYY-MM-DD")
		return
	}

	voucher, err := h.Engine.ReplaceVoucher(middleware.CompanyID(c), id, in)
	if err != nil {
		util.EngineError(c, err)
		return
	}
	util.Success(c, util.Response{"voucher": toVoucherResp(voucher)})
}

func (h *VoucherHandler) Void(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid voucher id")
		return
	}
	if err := h.Engine.VoidVoucher(middleware.CompanyID(c), id); err != nil {
		util.EngineError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "voucher deleted"})
}
