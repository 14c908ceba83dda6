package middleware

import (
	"net/http"

	"gstbooks/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditMiddleware records every authenticated mutation (non-GET) as an
// AuditLog row. Failures to write the row never fail the request.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("requestID", requestID)

		c.Next()

		if c.Request.Method == http.MethodGet {
			return
		}
		companyID := CompanyID(c)
		if companyID == 0 {
			return
		}

		entry := models.AuditLog{
			RequestID: requestID,
			CompanyID: companyID,
			UserID:    UserID(c),
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		_ = db.Create(&entry).Error
	}
}
