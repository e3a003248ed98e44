// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - the "Node" RPC service in front of the ledger
//
// e.g.
//
//	{"id":1,"method":"Node.GetAccount","params":[{"address":"..."}]}
package node

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/counter"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/journal"
	"github.com/rush-ecs/rush/rpc/ratelimit"
	"github.com/rush-ecs/rush/transaction"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100

	// every request is bounded even though net/rpc carries no deadline
	requestTimeout = 30 * time.Second

	// limit for count
	maximumRecent = 100
)

// Ledger - the bank operations offered over RPC
type Ledger interface {
	GetLatestBlockhash(ctx context.Context) (transaction.Hash, error)
	SendTransaction(ctx context.Context, tx *transaction.Transaction) (account.Signature, error)
	GetAccount(ctx context.Context, address account.Address) (*account.Account, error)
	SignatureStatus(signature account.Signature) (transaction.Status, bool)
	Airdrop(ctx context.Context, address account.Address, lamports uint64) error
	Slot() uint64
}

// Journal - history of processed transactions, optional
type Journal interface {
	Get(ctx context.Context, signature account.Signature) (*journal.Entry, error)
	Recent(ctx context.Context, limit int) ([]*journal.Entry, error)
}

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	ledger  Ledger
	journal Journal
	counter *counter.Counter
}

// New - create the service, jnl may be nil
func New(log *logger.L, ledger Ledger, jnl Journal, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		ledger:  ledger,
		journal: jnl,
		counter: counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Slot    uint64 `json:"slot"`
	RPCs    uint64 `json:"rpcs"`
	Journal bool   `json:"journal"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Slot = node.ledger.Slot()
	if nil != node.counter {
		reply.RPCs = node.counter.Uint64()
	}
	reply.Journal = nil != node.journal
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}

// ---

// SlotArguments - empty arguments
type SlotArguments struct{}

// SlotReply - current slot
type SlotReply struct {
	Slot uint64 `json:"slot"`
}

// GetSlot - the slot the ledger is currently processing
func (node *Node) GetSlot(_ *SlotArguments, reply *SlotReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}
	reply.Slot = node.ledger.Slot()
	return nil
}

// ---

// BlockhashArguments - empty arguments
type BlockhashArguments struct{}

// BlockhashReply - the blockhash to put in a new transaction
type BlockhashReply struct {
	Blockhash transaction.Hash `json:"blockhash"`
	Slot      uint64           `json:"slot"`
}

// GetLatestBlockhash - the newest blockhash
func (node *Node) GetLatestBlockhash(_ *BlockhashArguments, reply *BlockhashReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	h, err := node.ledger.GetLatestBlockhash(ctx)
	if nil != err {
		return err
	}
	reply.Blockhash = h
	reply.Slot = node.ledger.Slot()
	return nil
}

// ---

// SendArguments - a packed signed transaction
type SendArguments struct {
	Transaction []byte `json:"transaction"`
}

// SendReply - the id of the committed transaction
type SendReply struct {
	Signature account.Signature `json:"signature"`
	Slot      uint64            `json:"slot"`
}

// SendTransaction - execute a transaction, returns when it is committed
// or has failed
func (node *Node) SendTransaction(arguments *SendArguments, reply *SendReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}
	if nil == arguments || 0 == len(arguments.Transaction) {
		return fault.ErrMissingParameters
	}

	tx, err := transaction.Unpack(arguments.Transaction)
	if nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	id, err := node.ledger.SendTransaction(ctx, tx)
	if nil != err {
		node.Log.Debugf("send: %s  error: %s", id, err)
		return err
	}

	reply.Signature = id
	reply.Slot = node.ledger.Slot()
	return nil
}

// ---

// AccountArguments - address to look up
type AccountArguments struct {
	Address account.Address `json:"address"`
}

// AccountReply - account state
type AccountReply struct {
	Lamports   uint64          `json:"lamports"`
	Owner      account.Address `json:"owner"`
	Executable bool            `json:"executable"`
	Data       []byte          `json:"data"`
	Slot       uint64          `json:"slot"`
}

// GetAccount - fetch the account at an address, an address that holds
// nothing gives account not found
func (node *Node) GetAccount(arguments *AccountArguments, reply *AccountReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	a, err := node.ledger.GetAccount(ctx, arguments.Address)
	if nil != err {
		return err
	}

	reply.Lamports = a.Lamports
	reply.Owner = a.Owner
	reply.Executable = a.Executable
	reply.Data = a.Data
	reply.Slot = node.ledger.Slot()
	return nil
}

// ---

// StatusArguments - signature to look up
type StatusArguments struct {
	Signature account.Signature `json:"signature"`
}

// StatusReply - outcome, State is Unknown if the signature was never seen
type StatusReply struct {
	Status transaction.Status `json:"status"`
}

// GetSignatureStatus - outcome of a transaction
//
// committed transactions come from the ledger, failures are only known
// to the journal
func (node *Node) GetSignatureStatus(arguments *StatusArguments, reply *StatusReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	status, found := node.ledger.SignatureStatus(arguments.Signature)
	if found {
		reply.Status = status
		return nil
	}

	reply.Status = transaction.Status{State: transaction.UnknownTransaction}
	if nil == node.journal {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	e, err := node.journal.Get(ctx, arguments.Signature)
	if fault.ErrTransactionNotFound == err {
		return nil
	}
	if nil != err {
		return err
	}
	if "" != e.Error {
		reply.Status = transaction.Status{
			State: transaction.FailedTransaction,
			Slot:  e.Slot,
			Error: e.Error,
		}
	}
	return nil
}

// ---

// TransactionArguments - signature to look up
type TransactionArguments struct {
	Signature account.Signature `json:"signature"`
}

// TransactionReply - journal entry
type TransactionReply struct {
	Entry *journal.Entry `json:"entry"`
}

// GetTransaction - the journal entry of a processed transaction
func (node *Node) GetTransaction(arguments *TransactionArguments, reply *TransactionReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}
	if nil == node.journal {
		return fault.ErrDatabaseIsNotSet
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	e, err := node.journal.Get(ctx, arguments.Signature)
	if nil != err {
		return err
	}
	reply.Entry = e
	return nil
}

// ---

// RecentArguments - number of entries wanted
type RecentArguments struct {
	Count int `json:"count"`
}

// RecentReply - newest first
type RecentReply struct {
	Entries []*journal.Entry `json:"entries"`
}

// RecentTransactions - the latest journal entries
func (node *Node) RecentTransactions(arguments *RecentArguments, reply *RecentReply) error {
	if nil == arguments {
		return fault.ErrMissingParameters
	}
	if err := ratelimit.LimitN(node.Limiter, arguments.Count, maximumRecent); nil != err {
		return err
	}
	if nil == node.journal {
		return fault.ErrDatabaseIsNotSet
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	entries, err := node.journal.Recent(ctx, arguments.Count)
	if nil != err {
		return err
	}
	reply.Entries = entries
	return nil
}

// ---

// AirdropArguments - faucet request
type AirdropArguments struct {
	Address  account.Address `json:"address"`
	Lamports uint64          `json:"lamports,string"`
}

// AirdropReply - slot of the credit
type AirdropReply struct {
	Slot uint64 `json:"slot"`
}

// RequestAirdrop - credit lamports from the development faucet
func (node *Node) RequestAirdrop(arguments *AirdropArguments, reply *AirdropReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}
	if nil == arguments || 0 == arguments.Lamports {
		return fault.ErrMissingParameters
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	err := node.ledger.Airdrop(ctx, arguments.Address, arguments.Lamports)
	if nil != err {
		return err
	}
	reply.Slot = node.ledger.Slot()
	return nil
}
