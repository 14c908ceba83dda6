package models

import "time"

// FinancialYear bounds an accounting period. At most one active year
// per company; a closed year locks every posting date inside its range.
type FinancialYear struct {
	ID        uint      `gorm:"primaryKey"`
	CompanyID uint      `gorm:"index;not null"`
	Name      string    `gorm:"size:32;not null"` // e.g. "2024-25"
	StartDate time.Time `gorm:"index;not null"`
	EndDate   time.Time `gorm:"index;not null"`
	IsActive  bool      `gorm:"index;not null;default:false"`
	IsClosed  bool      `gorm:"index;not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether d falls inside the year's [start, end] range,
// compared at day granularity.
func (fy *FinancialYear) Contains(d time.Time) bool {
	day := d.Truncate(24 * time.Hour)
	return !day.Before(fy.StartDate.Truncate(24*time.Hour)) &&
		!day.After(fy.EndDate.Truncate(24*time.Hour))
}
