package engine

import (
	"testing"
	"time"

	"gstbooks/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func journalInput(f *fixture, t *testing.T, d time.Time) VoucherInput {
	vt := f.voucherType(t, "Journal")
	return VoucherInput{
		VoucherTypeID: vt.ID,
		Date:          d,
		Narration:     "opening adjustment",
		Entries: []VoucherEntryInput{
			{LedgerID: f.bank.ID, Amount: dec("500"), Side: models.SideDr},
			{LedgerID: f.sales.ID, Amount: dec("500"), Side: models.SideCr},
		},
	}
}

func TestPostVoucherBalanced(t *testing.T) {
	f := newFixture(t)

	voucher, err := f.eng.PostVoucher(f.company.ID, journalInput(f, t, date(2025, time.April, 10)))
	require.NoError(t, err)

	assert.True(t, voucher.TotalAmount.Equal(dec("500")))
	assert.Len(t, voucher.Entries, 2)
	assert.NotEmpty(t, voucher.VoucherNumber)

	// debit and credit sums stay equal at rest
	var entries []models.VoucherEntry
	require.NoError(t, f.db.Where("voucher_id = ?", voucher.ID).Find(&entries).Error)
	dr, cr := dec("0"), dec("0")
	for _, en := range entries {
		if en.Side == models.SideDr {
			dr = dr.Add(en.Amount)
		} else {
			cr = cr.Add(en.Amount)
		}
	}
	assert.True(t, dr.Sub(cr).Abs().LessThanOrEqual(dec("0.01")))
}

func TestPostVoucherUnbalancedRejected(t *testing.T) {
	f := newFixture(t)
	in := journalInput(f, t, date(2025, time.April, 10))
	in.Entries[1].Amount = dec("400")

	_, err := f.eng.PostVoucher(f.company.ID, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	var count int64
	require.NoError(t, f.db.Model(&models.Voucher{}).Count(&count).Error)
	assert.Zero(t, count, "no voucher row may survive a failed post")
}

func TestPostVoucherEpsilonTolerated(t *testing.T) {
	f := newFixture(t)
	in := journalInput(f, t, date(2025, time.April, 10))
	in.Entries[1].Amount = dec("499.99") // within the 0.01 epsilon

	_, err := f.eng.PostVoucher(f.company.ID, in)
	require.NoError(t, err)
}

func TestPostVoucherNeedsTwoEntries(t *testing.T) {
	f := newFixture(t)
	in := journalInput(f, t, date(2025, time.April, 10))
	in.Entries = in.Entries[:1]

	_, err := f.eng.PostVoucher(f.company.ID, in)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestReplaceVoucherKeepsID(t *testing.T) {
	f := newFixture(t)
	voucher, err := f.eng.PostVoucher(f.company.ID, journalInput(f, t, date(2025, time.April, 10)))
	require.NoError(t, err)
	oldEntryIDs := []uint{voucher.Entries[0].ID, voucher.Entries[1].ID}

	in := journalInput(f, t, date(2025, time.April, 12))
	in.Entries[0].Amount = dec("750")
	in.Entries[1].Amount = dec("750")
	replaced, err := f.eng.ReplaceVoucher(f.company.ID, voucher.ID, in)
	require.NoError(t, err)

	assert.Equal(t, voucher.ID, replaced.ID, "voucher id must stay stable")
	assert.True(t, replaced.TotalAmount.Equal(dec("750")))

	// old entries are fully superseded
	var count int64
	require.NoError(t, f.db.Model(&models.VoucherEntry{}).Where("id IN ?", oldEntryIDs).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, f.db.Model(&models.VoucherEntry{}).Where("voucher_id = ?", voucher.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestVoidVoucherRemovesEntries(t *testing.T) {
	f := newFixture(t)
	voucher, err := f.eng.PostVoucher(f.company.ID, journalInput(f, t, date(2025, time.April, 10)))
	require.NoError(t, err)

	require.NoError(t, f.eng.VoidVoucher(f.company.ID, voucher.ID))

	var count int64
	require.NoError(t, f.db.Model(&models.VoucherEntry{}).Where("voucher_id = ?", voucher.ID).Count(&count).Error)
	assert.Zero(t, count, "no orphan entries may exist")
	require.NoError(t, f.db.Model(&models.Voucher{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestVoidVoucherNotFound(t *testing.T) {
	f := newFixture(t)
	err := f.eng.VoidVoucher(f.company.ID, 9999)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestVoucherBalanceCacheMaintained(t *testing.T) {
	f := newFixture(t)
	voucher, err := f.eng.PostVoucher(f.company.ID, journalInput(f, t, date(2025, time.April, 10)))
	require.NoError(t, err)

	var bank models.Ledger
	require.NoError(t, f.db.First(&bank, f.bank.ID).Error)
	assert.True(t, bank.CurrentBalance.Equal(dec("500")), "bank balance %s", bank.CurrentBalance)

	var sales models.Ledger
	require.NoError(t, f.db.First(&sales, f.sales.ID).Error)
	assert.True(t, sales.CurrentBalance.Equal(dec("500")), "sales balance %s", sales.CurrentBalance)

	require.NoError(t, f.eng.VoidVoucher(f.company.ID, voucher.ID))
	require.NoError(t, f.db.First(&bank, f.bank.ID).Error)
	assert.True(t, bank.CurrentBalance.IsZero(), "void must reverse the cache")
}

// Scenario D: posting into a closed financial year fails atomically.
func TestPostVoucherPeriodLocked(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Create(&models.FinancialYear{
		CompanyID: f.company.ID,
		Name:      "2024-25",
		StartDate: date(2024, time.April, 1),
		EndDate:   date(2025, time.March, 31),
		IsClosed:  true,
	}).Error)

	_, err := f.eng.PostVoucher(f.company.ID, journalInput(f, t, date(2024, time.June, 15)))
	var locked *PeriodLockedError
	require.ErrorAs(t, err, &locked)

	var count int64
	require.NoError(t, f.db.Model(&models.Voucher{}).Count(&count).Error)
	assert.Zero(t, count, "zero rows written")
	require.NoError(t, f.db.Model(&models.VoucherEntry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteLedgerWithEntriesConflicts(t *testing.T) {
	f := newFixture(t)
	_, err := f.eng.PostVoucher(f.company.ID, journalInput(f, t, date(2025, time.April, 10)))
	require.NoError(t, err)

	err = f.eng.DeleteLedger(f.company.ID, f.bank.ID)
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)

	// an untouched ledger deletes fine
	require.NoError(t, f.eng.DeleteLedger(f.company.ID, f.igst.ID))
}
