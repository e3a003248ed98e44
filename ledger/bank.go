// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - a single node development ledger that executes the
// store and proxy programs
//
// transactions are processed one at a time; each either commits every
// account change and its fee in one database batch or leaves no trace
package ledger

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/program"
	"github.com/rush-ecs/rush/proxy"
	"github.com/rush-ecs/rush/storage"
	"github.com/rush-ecs/rush/transaction"
)

// defaults
const (
	FeePerSignature      = 5000
	MaximumBlockhashAge  = 150
	DefaultFaucetLimit   = 10 * LamportsPerSol
	LamportsPerSol       = 1000000000
	MaximumAccountLength = 10 * 1024 * 1024
)

// Configuration - ledger parameters
type Configuration struct {
	StoreProgram    account.Address
	ProxyProgram    account.Address
	Rent            account.Rent
	FeePerSignature uint64
	FaucetLimit     uint64
}

// Processor - entry point of a builtin program
type Processor func(ctx program.Context, programID account.Address, accounts []*account.Info, data []byte) error

// Observer - told about every account a committed transaction changed
type Observer interface {
	AccountChanged(slot uint64, address account.Address, a *account.Account)
}

// Journal - told about every processed transaction, failure is nil on
// success
type Journal interface {
	Record(slot uint64, tx *transaction.Transaction, failure error) error
}

// Bank - the ledger state machine
type Bank struct {
	sync.Mutex

	log       *logger.L
	database  *storage.Database
	config    Configuration
	programs  map[account.Address]Processor
	observers []Observer
	journal   Journal

	slot      uint64
	blockhash transaction.Hash
}

// New - a bank over an open database; an empty database gets a genesis
// blockhash at slot zero
func New(database *storage.Database, config Configuration) (*Bank, error) {
	if nil == database {
		return nil, fault.ErrDatabaseIsNotSet
	}
	if 0 == config.Rent.LamportsPerByteYear {
		config.Rent = account.DefaultRent
	}
	if 0 == config.FeePerSignature {
		config.FeePerSignature = FeePerSignature
	}
	if 0 == config.FaucetLimit {
		config.FaucetLimit = DefaultFaucetLimit
	}

	b := &Bank{
		log:      logger.New("bank"),
		database: database,
		config:   config,
		programs: map[account.Address]Processor{
			account.SystemProgram: processSystem,
		},
	}
	if !config.StoreProgram.IsZero() {
		b.programs[config.StoreProgram] = program.Process
	}
	if !config.ProxyProgram.IsZero() {
		b.programs[config.ProxyProgram] = proxy.Process
	}

	e, found := database.Pool.Blockhashes.LastElement()
	if found {
		b.slot = binary.BigEndian.Uint64(e.Key)
		copy(b.blockhash[:], e.Value)
	} else {
		b.slot = 0
		b.blockhash = sha3.Sum256([]byte("rush genesis"))
		database.Pool.Blockhashes.Put(slotKey(0), b.blockhash[:])
	}

	b.log.Infof("slot: %d  blockhash: %s", b.slot, b.blockhash)
	return b, nil
}

// AddObserver - register for account change notifications
func (b *Bank) AddObserver(o Observer) {
	b.Lock()
	defer b.Unlock()
	b.observers = append(b.observers, o)
}

// SetJournal - record every processed transaction
func (b *Bank) SetJournal(j Journal) {
	b.Lock()
	defer b.Unlock()
	b.journal = j
}

// Rent - rent parameters of the ledger
func (b *Bank) Rent() account.Rent {
	return b.config.Rent
}

// Slot - the current slot
func (b *Bank) Slot() uint64 {
	b.Lock()
	defer b.Unlock()
	return b.slot
}

// Advance - start a new slot and return its blockhash
func (b *Bank) Advance() transaction.Hash {
	b.Lock()
	defer b.Unlock()

	b.slot += 1
	buffer := append(append([]byte{}, b.blockhash[:]...), slotKey(b.slot)...)
	b.blockhash = sha3.Sum256(buffer)

	trx, err := b.database.Begin()
	fault.PanicIfError("bank.Advance", err)
	trx.Put(b.database.Pool.Blockhashes, slotKey(b.slot), b.blockhash[:])
	if b.slot > MaximumBlockhashAge {
		trx.Delete(b.database.Pool.Blockhashes, slotKey(b.slot-MaximumBlockhashAge-1))
	}
	fault.PanicIfError("bank.Advance", trx.Commit())

	b.log.Debugf("slot: %d  blockhash: %s", b.slot, b.blockhash)
	return b.blockhash
}

// GetLatestBlockhash - blockhash to put in new transactions
func (b *Bank) GetLatestBlockhash(ctx context.Context) (transaction.Hash, error) {
	if err := ctx.Err(); nil != err {
		return transaction.Hash{}, err
	}
	b.Lock()
	defer b.Unlock()
	return b.blockhash, nil
}

// GetAccount - the committed state of an address
func (b *Bank) GetAccount(ctx context.Context, address account.Address) (*account.Account, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}
	packed := b.database.Pool.Accounts.Get(address[:])
	if nil == packed {
		return nil, fault.ErrAccountNotFound
	}
	return account.Unpack(packed)
}

// SignatureStatus - outcome of a committed transaction
func (b *Bank) SignatureStatus(signature account.Signature) (transaction.Status, bool) {
	slot, found := b.database.Pool.Signatures.GetN(signature[:])
	if !found {
		return transaction.Status{}, false
	}
	return transaction.Status{
		State: transaction.ConfirmedTransaction,
		Slot:  slot,
	}, true
}

// Airdrop - credit lamports to an address from nowhere
func (b *Bank) Airdrop(ctx context.Context, address account.Address, lamports uint64) error {
	if err := ctx.Err(); nil != err {
		return err
	}
	if lamports > b.config.FaucetLimit {
		return fault.ErrFaucetLimitExceeded
	}

	b.Lock()
	defer b.Unlock()

	a := b.load(address)
	a.Lamports += lamports

	trx, err := b.database.Begin()
	if nil != err {
		return err
	}
	trx.Put(b.database.Pool.Accounts, address[:], a.Pack())
	err = trx.Commit()
	if nil != err {
		return err
	}

	b.log.Infof("airdrop: %d lamports to: %s", lamports, address)
	b.notify(map[account.Address]*account.Account{address: a})
	return nil
}

// Restore - write accounts into an empty database in one batch, for
// loading snapshots
func (b *Bank) Restore(addresses []account.Address, accounts []*account.Account) error {
	b.Lock()
	defer b.Unlock()

	if len(addresses) != len(accounts) {
		return fault.ErrInvalidSnapshot
	}
	if !b.empty() {
		return fault.ErrDatabaseNotEmpty
	}

	trx, err := b.database.Begin()
	if nil != err {
		return err
	}
	for i, address := range addresses {
		trx.Put(b.database.Pool.Accounts, address[:], accounts[i].Pack())
	}
	return trx.Commit()
}

// no account stored
func (b *Bank) empty() bool {
	err := b.Accounts(func(account.Address, *account.Account) error {
		return errNotEmpty
	})
	return nil == err
}

// Accounts - visit every stored account in address order
func (b *Bank) Accounts(f func(address account.Address, a *account.Account) error) error {
	return b.database.Pool.Accounts.NewFetchCursor().Map(func(key []byte, value []byte) error {
		address, err := account.AddressFromBytes(key)
		if nil != err {
			return err
		}
		a, err := account.Unpack(value)
		if nil != err {
			return err
		}
		return f(address, a)
	})
}

// committed account or the zero account
func (b *Bank) load(address account.Address) *account.Account {
	packed := b.database.Pool.Accounts.Get(address[:])
	if nil != packed {
		a, err := account.Unpack(packed)
		fault.PanicIfError("bank.load", err)
		return a
	}
	return &account.Account{
		Owner: account.SystemProgram,
		Data:  []byte{},
	}
}

func (b *Bank) notify(changed map[account.Address]*account.Account) {
	for address, a := range changed {
		for _, o := range b.observers {
			o.AccountChanged(b.slot, address, a.Clone())
		}
	}
}

func slotKey(slot uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, slot)
	return key
}
