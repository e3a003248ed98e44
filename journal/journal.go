// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package journal - sqlite record of every transaction the ledger
// processed, successful or not
package journal

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/logger"
	_ "modernc.org/sqlite"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/transaction"
)

// Entry - one processed transaction
type Entry struct {
	Signature    account.Signature        `json:"signature"`
	Slot         uint64                   `json:"slot"`
	FeePayer     account.Address          `json:"fee_payer"`
	Instructions int                      `json:"instructions"`
	Error        string                   `json:"error,omitempty"`
	Transaction  *transaction.Transaction `json:"transaction"`
}

// Journal - handle to the journal database
type Journal struct {
	sync.Mutex
	log *logger.L
	db  *sql.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
		signature TEXT PRIMARY KEY,
		slot INTEGER NOT NULL,
		fee_payer TEXT NOT NULL,
		instructions INTEGER NOT NULL,
		error TEXT NOT NULL,
		packed BLOB NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS transactions_slot ON transactions(slot);`,
	`CREATE INDEX IF NOT EXISTS transactions_fee_payer ON transactions(fee_payer);`,
}

// Open - open or create a journal file
func Open(path string) (*Journal, error) {
	if "" == path {
		return nil, fault.ErrDatabaseIsNotSet
	}
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if nil != err {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if nil != err {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	for _, s := range append([]string{"PRAGMA journal_mode=WAL;", "PRAGMA busy_timeout=5000;"}, schema...) {
		_, err := db.Exec(s)
		if nil != err {
			db.Close()
			return nil, err
		}
	}

	j := &Journal{
		log: logger.New("journal"),
		db:  db,
	}
	j.log.Infof("opened: %q", path)
	return j, nil
}

// Close - flush and close the database
func (j *Journal) Close() error {
	j.Lock()
	defer j.Unlock()
	if nil == j.db {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

// Record - store the outcome of a transaction, a later outcome for the
// same signature replaces an earlier one
func (j *Journal) Record(slot uint64, tx *transaction.Transaction, failure error) error {
	j.Lock()
	defer j.Unlock()
	if nil == j.db {
		return fault.ErrDatabaseIsNotSet
	}

	message := ""
	if nil != failure {
		message = failure.Error()
	}

	_, err := j.db.Exec(
		`INSERT OR REPLACE INTO transactions(signature, slot, fee_payer, instructions, error, packed) VALUES(?, ?, ?, ?, ?, ?)`,
		tx.ID().String(),
		int64(slot),
		tx.Message.FeePayer.String(),
		len(tx.Message.Instructions),
		message,
		[]byte(tx.Pack()),
	)
	if nil != err {
		j.log.Errorf("record: %s  error: %s", tx.ID(), err)
	}
	return err
}

// Get - the entry of a signature
func (j *Journal) Get(ctx context.Context, signature account.Signature) (*Entry, error) {
	j.Lock()
	defer j.Unlock()
	if nil == j.db {
		return nil, fault.ErrDatabaseIsNotSet
	}

	row := j.db.QueryRowContext(ctx,
		`SELECT signature, slot, fee_payer, instructions, error, packed FROM transactions WHERE signature = ?`,
		signature.String(),
	)
	e, err := scan(row)
	if sql.ErrNoRows == err {
		return nil, fault.ErrTransactionNotFound
	}
	return e, err
}

// Recent - the latest entries, newest first
func (j *Journal) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	j.Lock()
	defer j.Unlock()
	if nil == j.db {
		return nil, fault.ErrDatabaseIsNotSet
	}
	if limit <= 0 {
		return nil, fault.ErrInvalidCount
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT signature, slot, fee_payer, instructions, error, packed FROM transactions ORDER BY slot DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if nil != err {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*Entry, 0, limit)
	for rows.Next() {
		e, err := scan(rows)
		if nil != err {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scan(s scanner) (*Entry, error) {
	var (
		signature string
		slot      int64
		feePayer  string
		count     int
		message   string
		packed    []byte
	)
	err := s.Scan(&signature, &slot, &feePayer, &count, &message, &packed)
	if nil != err {
		return nil, err
	}

	e := &Entry{
		Slot:         uint64(slot),
		Instructions: count,
		Error:        message,
	}
	e.Signature, err = account.SignatureFromBase58(signature)
	if nil != err {
		return nil, err
	}
	e.FeePayer, err = account.AddressFromBase58(feePayer)
	if nil != err {
		return nil, err
	}
	e.Transaction, err = transaction.Unpack(packed)
	if nil != err {
		return nil, err
	}
	return e, nil
}
