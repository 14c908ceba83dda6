package engine

import (
	"fmt"
	"time"

	"gstbooks/internal/models"

	"gorm.io/gorm"
)

// FinancialYearInput describes a new financial year.
type FinancialYearInput struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
}

// CreateFinancialYear adds a year; when marked active it deactivates
// the company's previous active year.
func (e *Engine) CreateFinancialYear(companyID uint, in FinancialYearInput) (*models.FinancialYear, error) {
	if in.Name == "" {
		return nil, validationf("financial year name is required")
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, validationf("financial year end must be after start")
	}

	fy := &models.FinancialYear{
		CompanyID: companyID,
		Name:      in.Name,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		IsActive:  in.IsActive,
	}
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if in.IsActive {
			if err := deactivateYears(tx, companyID); err != nil {
				return err
			}
		}
		return tx.Create(fy).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create financial year: %w", err)
	}
	return fy, nil
}

// CloseFinancialYear locks the year's date range against further
// postings. Closing an already closed year is rejected.
func (e *Engine) CloseFinancialYear(companyID, yearID uint) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		fy, err := loadFinancialYear(tx, companyID, yearID)
		if err != nil {
			return err
		}
		if fy.IsClosed {
			return conflictf("financial year %q is already closed", fy.Name)
		}
		return tx.Model(fy).Update("is_closed", true).Error
	})
}

// ReopenFinancialYear lifts the lock on a closed year.
func (e *Engine) ReopenFinancialYear(companyID, yearID uint) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		fy, err := loadFinancialYear(tx, companyID, yearID)
		if err != nil {
			return err
		}
		if !fy.IsClosed {
			return conflictf("financial year %q is not closed", fy.Name)
		}
		return tx.Model(fy).Update("is_closed", false).Error
	})
}

// ActivateFinancialYear makes the year the company's single active
// one. Activating a closed year is rejected.
func (e *Engine) ActivateFinancialYear(companyID, yearID uint) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		fy, err := loadFinancialYear(tx, companyID, yearID)
		if err != nil {
			return err
		}
		if fy.IsClosed {
			return conflictf("cannot activate closed financial year %q", fy.Name)
		}
		if err := deactivateYears(tx, companyID); err != nil {
			return err
		}
		return tx.Model(fy).Update("is_active", true).Error
	})
}

// DeleteFinancialYear removes a year, refusing while any voucher is
// dated inside its range.
func (e *Engine) DeleteFinancialYear(companyID, yearID uint) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		fy, err := loadFinancialYear(tx, companyID, yearID)
		if err != nil {
			return err
		}
		var count int64
		err = tx.Model(&models.Voucher{}).
			Where("company_id = ? AND date >= ? AND date <= ?", companyID, fy.StartDate, fy.EndDate).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("count vouchers in range: %w", err)
		}
		if count > 0 {
			return conflictf("financial year %q has %d vouchers", fy.Name, count)
		}
		return tx.Delete(fy).Error
	})
}

func deactivateYears(tx *gorm.DB, companyID uint) error {
	return tx.Model(&models.FinancialYear{}).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Update("is_active", false).Error
}

func loadFinancialYear(tx *gorm.DB, companyID, yearID uint) (*models.FinancialYear, error) {
	var fy models.FinancialYear
	err := tx.Where("id = ? AND company_id = ?", yearID, companyID).First(&fy).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Entity: "financial year", ID: yearID}
		}
		return nil, fmt.Errorf("load financial year %d: %w", yearID, err)
	}
	return &fy, nil
}
