package handler

import (
	"net/http"

	"gstbooks/internal/engine"
	"gstbooks/internal/middleware"
	"gstbooks/internal/util"

	"github.com/gin-gonic/gin"
)

// FinancialYearHandler exposes the year lifecycle: create, close,
// reopen, activate and guarded delete.
type FinancialYearHandler struct {
	Engine *engine.Engine
}

func NewFinancialYearHandler(e *engine.Engine) *FinancialYearHandler {
	return &FinancialYearHandler{Engine: e}
}

type financialYearReq struct {
	Name      string `json:"name" binding:"required,max=32"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	IsActive  bool   `json:"is_active"`
}

func (h *FinancialYearHandler) Create(c *gin.Context) {
	var req financialYearReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	start, ok := parseDate(req.StartDate)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid start date, expected YYYY-MM-DD")
		return
	}
	end, ok := parseDate(req.EndDate)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid end date, expected YYYY-MM-DD")
		return
	}

	fy, err := h.Engine.CreateFinancialYear(middleware.CompanyID(c), engine.FinancialYearInput{
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		IsActive:  req.IsActive,
	})
	if err != nil {
		util.EngineError(c, err)
		return
	}
	util.Success(c, util.Response{"financial_year": util.Response{
		"id":         fy.ID,
		"name":       fy.Name,
		"start_date": fy.StartDate,
		"end_date":   fy.EndDate,
		"is_active":  fy.IsActive,
		"is_closed":  fy.IsClosed,
	}})
}

func (h *FinancialYearHandler) lifecycle(c *gin.Context, op func(companyID, yearID uint) error, done string) {
	id, ok := paramID(c)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid financial year id")
		return
	}
	if err := op(middleware.CompanyID(c), id); err != nil {
		util.EngineError(c, err)
		return
	}
	util.Success(c, util.Response{"message": done})
}

func (h *FinancialYearHandler) Close(c *gin.Context) {
	h.lifecycle(c, h.Engine.CloseFinancialYear, "financial year closed")
}

func (h *FinancialYearHandler) Reopen(c *gin.Context) {
	h.lifecycle(c, h.Engine.ReopenFinancialYear, "financial year reopened")
}

func (h *FinancialYearHandler) Activate(c *gin.Context) {
	h.lifecycle(c, h.Engine.ActivateFinancialYear, "financial year activated")
}

func (h *FinancialYearHandler) Delete(c *gin.Context) {
	h.lifecycle(c, h.Engine.DeleteFinancialYear, "financial year deleted")
}
