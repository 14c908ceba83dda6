// Package engine implements the ledger posting engine: balanced
// double-entry vouchers, invoice-to-voucher translation with GST
// decomposition, inventory sync, period locking and running-balance
// statements. Every mutating operation runs inside one database
// transaction; failure anywhere rolls back the whole unit.
package engine

import (
	"gorm.io/gorm"
)

// Engine is the posting engine. It owns no state beyond the database
// handle; all reads and writes of one logical mutation share a single
// transaction.
type Engine struct {
	db *gorm.DB
}

// New returns an engine bound to db.
func New(db *gorm.DB) *Engine {
	return &Engine{db: db}
}
