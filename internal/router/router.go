package router

import (
	"gstbooks/internal/config"
	"gstbooks/internal/engine"
	"gstbooks/internal/handler"
	"gstbooks/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	eng := engine.New(db)

	// ====== API ======
	api := r.Group("/api")
	api.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, cfg.JWT.Issuer),
		middleware.AuditMiddleware(db),
	)

	voucherHandler := handler.NewVoucherHandler(eng)
	api.POST("/vouchers", voucherHandler.Create)
	api.PUT("/vouchers/:id", voucherHandler.Replace)
	api.DELETE("/vouchers/:id", voucherHandler.Void)

	invoiceHandler := handler.NewInvoiceHandler(eng)
	api.POST("/invoices", invoiceHandler.Create)
	api.PUT("/invoices/:id", invoiceHandler.Update)
	api.DELETE("/invoices/:id", invoiceHandler.Delete)
	api.POST("/invoices/:id/payments", invoiceHandler.RecordPayment)

	ledgerHandler := handler.NewLedgerHandler(eng)
	api.GET("/ledgers/:id/statement", ledgerHandler.Statement)
	api.DELETE("/ledgers/:id", ledgerHandler.Delete)

	fyHandler := handler.NewFinancialYearHandler(eng)
	api.POST("/financial-years", fyHandler.Create)
	api.POST("/financial-years/:id/close", fyHandler.Close)
	api.POST("/financial-years/:id/reopen", fyHandler.Reopen)
	api.POST("/financial-years/:id/activate", fyHandler.Activate)
	api.DELETE("/financial-years/:id", fyHandler.Delete)

	return r
}
