package engine

import (
	"testing"
	"time"

	"gstbooks/internal/database"
	"gstbooks/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the in-memory database alive
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// fixture is a seeded company with a minimal chart of accounts, tax
// ledger bindings and one stock item.
type fixture struct {
	db  *gorm.DB
	eng *Engine

	company models.Company
	party   models.Ledger // Sundry Debtors (asset)
	sales   models.Ledger // Sales Account (income)
	bank    models.Ledger // Bank Account (asset)
	cgst    models.Ledger
	sgst    models.Ledger
	igst    models.Ledger
	item    models.Item
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{db: db, eng: New(db)}

	f.company = models.Company{Name: "Acme Traders", State: "MH"}
	require.NoError(t, db.Create(&f.company).Error)

	assets := models.LedgerGroup{CompanyID: f.company.ID, Name: "Current Assets", Type: models.GroupAsset}
	liabilities := models.LedgerGroup{CompanyID: f.company.ID, Name: "Duties & Taxes", Type: models.GroupLiability}
	income := models.LedgerGroup{CompanyID: f.company.ID, Name: "Sales Accounts", Type: models.GroupIncome}
	require.NoError(t, db.Create(&assets).Error)
	require.NoError(t, db.Create(&liabilities).Error)
	require.NoError(t, db.Create(&income).Error)

	f.party = models.Ledger{CompanyID: f.company.ID, GroupID: assets.ID, Name: "Sharma & Sons", State: "MH"}
	f.sales = models.Ledger{CompanyID: f.company.ID, GroupID: income.ID, Name: "Sales Account"}
	f.bank = models.Ledger{CompanyID: f.company.ID, GroupID: assets.ID, Name: "Bank Account"}
	f.cgst = models.Ledger{CompanyID: f.company.ID, GroupID: liabilities.ID, Name: "CGST Payable"}
	f.sgst = models.Ledger{CompanyID: f.company.ID, GroupID: liabilities.ID, Name: "SGST Payable"}
	f.igst = models.Ledger{CompanyID: f.company.ID, GroupID: liabilities.ID, Name: "IGST Payable"}
	for _, l := range []*models.Ledger{&f.party, &f.sales, &f.bank, &f.cgst, &f.sgst, &f.igst} {
		require.NoError(t, db.Create(l).Error)
	}

	require.NoError(t, db.Create(&models.CompanySettings{
		CompanyID:    f.company.ID,
		CGSTLedgerID: f.cgst.ID,
		SGSTLedgerID: f.sgst.ID,
		IGSTLedgerID: f.igst.ID,
	}).Error)

	f.item = models.Item{
		CompanyID:       f.company.ID,
		Name:            "Widget",
		TaxRate:         decimal.NewFromInt(18),
		SalesRate:       decimal.NewFromInt(100),
		CurrentQuantity: decimal.NewFromInt(50),
	}
	require.NoError(t, db.Create(&f.item).Error)

	return f
}

// setPartyState updates the party ledger's GST state.
func (f *fixture) setPartyState(t *testing.T, state string) {
	t.Helper()
	require.NoError(t, f.db.Model(&f.party).Update("state", state).Error)
}

// voucherType resolves or creates a voucher type for manual postings.
func (f *fixture) voucherType(t *testing.T, name string) models.VoucherType {
	t.Helper()
	var vt models.VoucherType
	require.NoError(t, f.db.Where(models.VoucherType{CompanyID: f.company.ID, Name: name}).FirstOrCreate(&vt).Error)
	return vt
}

// itemQuantity re-reads the stock item's cached quantity.
func (f *fixture) itemQuantity(t *testing.T) decimal.Decimal {
	t.Helper()
	var item models.Item
	require.NoError(t, f.db.First(&item, f.item.ID).Error)
	return item.CurrentQuantity
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
