package engine

import (
	"fmt"
	"time"

	"gstbooks/internal/models"

	"gorm.io/gorm"
)

// IsPeriodLocked reports whether date falls inside a closed financial
// year of the company. No covering financial year means not locked.
func IsPeriodLocked(tx *gorm.DB, companyID uint, date time.Time) (bool, error) {
	var closed []models.FinancialYear
	err := tx.Where("company_id = ? AND is_closed = ?", companyID, true).Find(&closed).Error
	if err != nil {
		return false, fmt.Errorf("check period lock: %w", err)
	}
	for i := range closed {
		if closed[i].Contains(date) {
			return true, nil
		}
	}
	return false, nil
}

// guardPeriod rejects the mutation with a PeriodLockedError when the
// date is locked. Every voucher/invoice mutation calls this before
// touching rows; on edit it runs for both the old and the new date.
func guardPeriod(tx *gorm.DB, companyID uint, date time.Time) error {
	locked, err := IsPeriodLocked(tx, companyID, date)
	if err != nil {
		return err
	}
	if locked {
		return &PeriodLockedError{CompanyID: companyID, Date: date}
	}
	return nil
}
