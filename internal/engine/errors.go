package engine

import (
	"fmt"
	"time"
)

// ValidationError reports a malformed or unbalanced submission. The
// transaction is rolled back (or never opened) when it is returned.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// PeriodLockedError blocks any mutation dated inside a closed
// financial year.
type PeriodLockedError struct {
	CompanyID uint
	Date      time.Time
}

func (e *PeriodLockedError) Error() string {
	return fmt.Sprintf("period locked: %s falls in a closed financial year", e.Date.Format("2006-01-02"))
}

// NotFoundError reports a missing voucher/invoice/ledger id.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ConflictError reports a mutation blocked by dependent records, e.g.
// deleting a ledger that has posted entries.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func conflictf(format string, args ...interface{}) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}
