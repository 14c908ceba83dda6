package util

import (
	"errors"
	"net/http"

	"gstbooks/internal/engine"

	"github.com/gin-gonic/gin"
)

// Response is the data payload of the common success envelope.
type Response map[string]interface{}

// business error codes
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeNotFound     = 40401
	CodeConflict     = 40901
	CodePeriodLocked = 42301
	CodeServerErr    = 50001
)

// Success writes the common success envelope.
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error writes the common error envelope.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}

// EngineError maps typed engine errors onto HTTP statuses and business
// codes; anything unrecognized is a 500.
func EngineError(c *gin.Context, err error) {
	var (
		validation *engine.ValidationError
		locked     *engine.PeriodLockedError
		notFound   *engine.NotFoundError
		conflict   *engine.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		Error(c, http.StatusBadRequest, CodeInvalidParam, validation.Msg)
	case errors.As(err, &locked):
		Error(c, http.StatusLocked, CodePeriodLocked, locked.Error())
	case errors.As(err, &notFound):
		Error(c, http.StatusNotFound, CodeNotFound, notFound.Error())
	case errors.As(err, &conflict):
		Error(c, http.StatusConflict, CodeConflict, conflict.Msg)
	default:
		Error(c, http.StatusInternalServerError, CodeServerErr, "internal error")
	}
}
