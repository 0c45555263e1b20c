// Package repository implements the durable key-value stores for the two
// entity types. Each manager buffers its mutations in an open transaction
// until the caller commits or discards them; the store has exactly one
// writer, so no isolation beyond that is needed.
package repository

import (
	"database/sql"

	"spellathon/internal/database"
)

// querier is the subset of database operations shared by a connection
// and an open transaction.
type querier interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// txHolder carries the lazily-opened transaction a manager accumulates
// mutations in.
type txHolder struct {
	db *database.DB
	tx *database.Tx
}

// writer returns the open transaction, starting one if needed. Every
// mutation goes through the transaction so Discard can abandon it.
func (h *txHolder) writer() (querier, error) {
	if h.tx != nil {
		return h.tx, nil
	}
	tx, err := h.db.Begin()
	if err != nil {
		return nil, err
	}
	h.tx = tx
	return tx, nil
}

// reader returns the open transaction when one exists, so reads observe
// uncommitted mutations, and the plain connection otherwise.
func (h *txHolder) reader() querier {
	if h.tx != nil {
		return h.tx
	}
	return h.db
}

// commit finalises the buffered mutations. No-op without a transaction.
func (h *txHolder) commit() error {
	if h.tx == nil {
		return nil
	}
	err := h.tx.Commit()
	h.tx = nil
	return err
}

// discard abandons the buffered mutations. No-op without a transaction.
func (h *txHolder) discard() error {
	if h.tx == nil {
		return nil
	}
	err := h.tx.Rollback()
	h.tx = nil
	return err
}
