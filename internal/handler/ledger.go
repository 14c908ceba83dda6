package handler

import (
	"net/http"
	"time"

	"gstbooks/internal/engine"
	"gstbooks/internal/middleware"
	"gstbooks/internal/util"

	"github.com/gin-gonic/gin"
)

// LedgerHandler exposes the running-balance statement and the guarded
// ledger delete. Ledger/group creation is master-data territory owned
// by another service.
type LedgerHandler struct {
	Engine *engine.Engine
}

func NewLedgerHandler(e *engine.Engine) *LedgerHandler {
	return &LedgerHandler{Engine: e}
}

// Statement replays the ledger's entries into a running balance,
// optionally bounded by ?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *LedgerHandler) Statement(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid ledger id")
		return
	}

	var from, to *time.Time
	if s := c.Query("start"); s != "" {
		t, ok := parseDate(s)
		if !ok {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid start date, expected YYYY-MM-DD")
			return
		}
		from = &t
	}
	if s := c.Query("end"); s != "" {
		t, ok := parseDate(s)
		if !ok {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid end date, expected YYYY-MM-DD")
			return
		}
		to = &t
	}

	st, err := h.Engine.BuildStatement(middleware.CompanyID(c), id, from, to)
	if err != nil {
		util.EngineError(c, err)
		return
	}
	util.Success(c, util.Response{"statement": st})
}

func (h *LedgerHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid ledger id")
		return
	}
	if err := h.Engine.DeleteLedger(middleware.CompanyID(c), id); err != nil {
		util.EngineError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "ledger deleted"})
}
