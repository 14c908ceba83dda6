package engine

import (
	"fmt"
	"time"

	"gstbooks/internal/models"

	"github.com/shopspring/decimal"
)

// StatementLine is one row of a ledger statement: the entry's Dr/Cr
// amounts plus the running balance after it.
type StatementLine struct {
	VoucherID     uint             `json:"voucher_id"`
	VoucherNumber string           `json:"voucher_number"`
	Date          time.Time        `json:"date"`
	Narration     string           `json:"narration"`
	Debit         decimal.Decimal  `json:"debit"`
	Credit        decimal.Decimal  `json:"credit"`
	Balance       decimal.Decimal  `json:"balance"`
	BalanceType   models.EntrySide `json:"balance_type"`
}

// Statement is a ledger's chronological running-balance sequence.
type Statement struct {
	LedgerID           uint             `json:"ledger_id"`
	LedgerName         string           `json:"ledger_name"`
	OpeningBalance     decimal.Decimal  `json:"opening_balance"`
	OpeningBalanceType models.EntrySide `json:"opening_balance_type"`
	Lines              []StatementLine  `json:"transactions"`
	ClosingBalance     decimal.Decimal  `json:"closing_balance"`
	ClosingBalanceType models.EntrySide `json:"closing_balance_type"`
}

type statementRow struct {
	VoucherID     uint
	VoucherNumber string
	Date          time.Time
	Narration     string
	Amount        decimal.Decimal
	Side          models.EntrySide
}

// BuildStatement replays a ledger's entries ordered by (voucher date,
// entry id), the entry id being the deterministic tie-break for
// same-day postings, folding them into a running balance. Dr increases
// Asset/Expense ledgers, Cr increases Liability/Income ledgers; the
// balance type flips when the running value crosses zero. Pure read,
// no stored state is touched.
func (e *Engine) BuildStatement(companyID, ledgerID uint, from, to *time.Time) (*Statement, error) {
	ledger, err := loadLedger(e.db, companyID, ledgerID)
	if err != nil {
		return nil, err
	}

	q := e.db.Model(&models.VoucherEntry{}).
		Select("voucher_entries.voucher_id, vouchers.voucher_number, vouchers.date, vouchers.narration, voucher_entries.amount, voucher_entries.side").
		Joins("JOIN vouchers ON vouchers.id = voucher_entries.voucher_id").
		Where("voucher_entries.ledger_id = ? AND vouchers.company_id = ?", ledgerID, companyID)
	if from != nil {
		q = q.Where("vouchers.date >= ?", *from)
	}
	if to != nil {
		q = q.Where("vouchers.date <= ?", *to)
	}

	var rows []statementRow
	if err := q.Order("vouchers.date ASC, voucher_entries.id ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load statement entries: %w", err)
	}

	inc := increaseSide(ledger.Group.Type)
	running := ledger.OpeningBalance
	if ledger.OpeningBalanceType != inc {
		running = running.Neg()
	}

	st := &Statement{
		LedgerID:           ledger.ID,
		LedgerName:         ledger.Name,
		OpeningBalance:     ledger.OpeningBalance,
		OpeningBalanceType: ledger.OpeningBalanceType,
		Lines:              make([]StatementLine, 0, len(rows)),
	}
	for _, r := range rows {
		line := StatementLine{
			VoucherID:     r.VoucherID,
			VoucherNumber: r.VoucherNumber,
			Date:          r.Date,
			Narration:     r.Narration,
		}
		if r.Side == models.SideDr {
			line.Debit = r.Amount
		} else {
			line.Credit = r.Amount
		}
		if r.Side == inc {
			running = running.Add(r.Amount)
		} else {
			running = running.Sub(r.Amount)
		}
		line.Balance = running.Abs()
		line.BalanceType = balanceSide(running, inc)
		st.Lines = append(st.Lines, line)
	}

	st.ClosingBalance = running.Abs()
	st.ClosingBalanceType = balanceSide(running, inc)
	return st, nil
}

// balanceSide maps the signed running value back to a Dr/Cr label
// relative to the side that increases this ledger.
func balanceSide(running decimal.Decimal, inc models.EntrySide) models.EntrySide {
	if running.IsNegative() {
		return inc.Opposite()
	}
	return inc
}
