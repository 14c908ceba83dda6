package engine

import (
	"testing"
	"time"

	"gstbooks/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPeriodLocked(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Create(&models.FinancialYear{
		CompanyID: f.company.ID,
		Name:      "2024-25",
		StartDate: date(2024, time.April, 1),
		EndDate:   date(2025, time.March, 31),
		IsClosed:  true,
	}).Error)
	require.NoError(t, f.db.Create(&models.FinancialYear{
		CompanyID: f.company.ID,
		Name:      "2025-26",
		StartDate: date(2025, time.April, 1),
		EndDate:   date(2026, time.March, 31),
		IsActive:  true,
	}).Error)

	cases := []struct {
		name   string
		date   time.Time
		locked bool
	}{
		{"inside closed year", date(2024, time.September, 1), true},
		{"closed year start boundary", date(2024, time.April, 1), true},
		{"closed year end boundary", date(2025, time.March, 31), true},
		{"inside open year", date(2025, time.June, 1), false},
		{"outside any year", date(2023, time.January, 1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			locked, err := IsPeriodLocked(f.db, f.company.ID, tc.date)
			require.NoError(t, err)
			assert.Equal(t, tc.locked, locked)
		})
	}
}

// With no financial years at all every date is postable.
func TestIsPeriodLockedPermissiveDefault(t *testing.T) {
	f := newFixture(t)
	locked, err := IsPeriodLocked(f.db, f.company.ID, date(2020, time.January, 1))
	require.NoError(t, err)
	assert.False(t, locked)
}

// Closed years are scoped per company.
func TestIsPeriodLockedOtherCompany(t *testing.T) {
	f := newFixture(t)
	other := models.Company{Name: "Other Co", State: "KA"}
	require.NoError(t, f.db.Create(&other).Error)
	require.NoError(t, f.db.Create(&models.FinancialYear{
		CompanyID: other.ID,
		Name:      "2024-25",
		StartDate: date(2024, time.April, 1),
		EndDate:   date(2025, time.March, 31),
		IsClosed:  true,
	}).Error)

	locked, err := IsPeriodLocked(f.db, f.company.ID, date(2024, time.June, 1))
	require.NoError(t, err)
	assert.False(t, locked)
}
