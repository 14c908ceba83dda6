package engine

import (
	"testing"
	"time"

	"gstbooks/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fyInput(name string, y int) FinancialYearInput {
	return FinancialYearInput{
		Name:      name,
		StartDate: date(y, time.April, 1),
		EndDate:   date(y+1, time.March, 31),
	}
}

func TestCreateFinancialYearValidation(t *testing.T) {
	f := newFixture(t)
	var verr *ValidationError

	in := fyInput("", 2025)
	_, err := f.eng.CreateFinancialYear(f.company.ID, in)
	assert.ErrorAs(t, err, &verr)

	in = fyInput("2025-26", 2025)
	in.EndDate = in.StartDate
	_, err = f.eng.CreateFinancialYear(f.company.ID, in)
	assert.ErrorAs(t, err, &verr)
}

func TestCreateFinancialYearActiveSwap(t *testing.T) {
	f := newFixture(t)
	first := fyInput("2024-25", 2024)
	first.IsActive = true
	old, err := f.eng.CreateFinancialYear(f.company.ID, first)
	require.NoError(t, err)

	second := fyInput("2025-26", 2025)
	second.IsActive = true
	_, err = f.eng.CreateFinancialYear(f.company.ID, second)
	require.NoError(t, err)

	var reloaded models.FinancialYear
	require.NoError(t, f.db.First(&reloaded, old.ID).Error)
	assert.False(t, reloaded.IsActive, "only one active year per company")
}

func TestCloseReopenLifecycle(t *testing.T) {
	f := newFixture(t)
	fy, err := f.eng.CreateFinancialYear(f.company.ID, fyInput("2024-25", 2024))
	require.NoError(t, err)

	require.NoError(t, f.eng.CloseFinancialYear(f.company.ID, fy.ID))

	var conflict *ConflictError
	err = f.eng.CloseFinancialYear(f.company.ID, fy.ID)
	assert.ErrorAs(t, err, &conflict, "double close is rejected")

	err = f.eng.ActivateFinancialYear(f.company.ID, fy.ID)
	assert.ErrorAs(t, err, &conflict, "closed years cannot be activated")

	require.NoError(t, f.eng.ReopenFinancialYear(f.company.ID, fy.ID))
	err = f.eng.ReopenFinancialYear(f.company.ID, fy.ID)
	assert.ErrorAs(t, err, &conflict, "reopening an open year is rejected")

	// reopened years accept postings again
	_, err = f.eng.PostVoucher(f.company.ID, journalInput(f, t, date(2024, time.June, 1)))
	assert.NoError(t, err)
}

func TestDeleteFinancialYearWithVouchers(t *testing.T) {
	f := newFixture(t)
	fy, err := f.eng.CreateFinancialYear(f.company.ID, fyInput("2025-26", 2025))
	require.NoError(t, err)

	_, err = f.eng.PostVoucher(f.company.ID, journalInput(f, t, date(2025, time.June, 1)))
	require.NoError(t, err)

	var conflict *ConflictError
	err = f.eng.DeleteFinancialYear(f.company.ID, fy.ID)
	assert.ErrorAs(t, err, &conflict)

	empty, err := f.eng.CreateFinancialYear(f.company.ID, fyInput("2023-24", 2023))
	require.NoError(t, err)
	assert.NoError(t, f.eng.DeleteFinancialYear(f.company.ID, empty.ID))
}

func TestFinancialYearNotFound(t *testing.T) {
	f := newFixture(t)
	var nf *NotFoundError
	assert.ErrorAs(t, f.eng.CloseFinancialYear(f.company.ID, 9999), &nf)
}
