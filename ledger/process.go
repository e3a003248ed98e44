// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"context"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/instruction"
	"github.com/rush-ecs/rush/transaction"
)

// SendTransaction - execute and commit a transaction, returns once it
// is committed or has failed
func (b *Bank) SendTransaction(ctx context.Context, tx *transaction.Transaction) (account.Signature, error) {
	if err := ctx.Err(); nil != err {
		return account.Signature{}, err
	}

	b.Lock()
	defer b.Unlock()

	err := b.process(tx)

	// a duplicate must not overwrite the entry of the original
	if nil != b.journal && fault.ErrAlreadyProcessed != err {
		jerr := b.journal.Record(b.slot, tx, err)
		if nil != jerr {
			b.log.Warnf("journal: %s  error: %s", tx.ID(), jerr)
		}
	}

	if nil != err {
		b.log.Debugf("rejected: %s  error: %s", tx.ID(), err)
		return tx.ID(), err
	}
	b.log.Infof("committed: %s  slot: %d", tx.ID(), b.slot)
	return tx.ID(), nil
}

func (b *Bank) process(tx *transaction.Transaction) error {
	if !b.isRecent(tx.Message.RecentBlockhash) {
		return fault.ErrBlockhashNotFound
	}

	err := tx.Verify()
	if nil != err {
		return err
	}

	id := tx.ID()
	if b.database.Pool.Signatures.Has(id[:]) {
		return fault.ErrAlreadyProcessed
	}

	// working set
	keys := tx.Message.AccountKeys()
	original := make(map[account.Address]*account.Account, len(keys))
	working := make(map[account.Address]*account.Account, len(keys))
	for _, k := range keys {
		a := b.load(k.Address)
		original[k.Address] = a
		working[k.Address] = a.Clone()
	}

	payer := working[tx.Message.FeePayer]
	fee := uint64(len(tx.Signatures)) * b.config.FeePerSignature
	if payer.Lamports < fee {
		return fault.ErrInsufficientFundsForFee
	}
	payer.Lamports -= fee

	for _, ix := range tx.Message.Instructions {
		err := b.execute(ix, working)
		if nil != err {
			return err
		}
	}

	// every funded account holding data must stay rent exempt
	for _, k := range keys {
		a := working[k.Address]
		if 0 != a.Lamports && 0 != len(a.Data) && !b.config.Rent.IsExempt(a.Lamports, len(a.Data)) {
			return fault.ErrInsufficientFundsForRent
		}
	}

	return b.commit(id, keys, original, working)
}

// run one instruction against the working set and check the runtime
// rules on what it changed
func (b *Bank) execute(ix instruction.Instruction, working map[account.Address]*account.Account) error {
	processor, ok := b.programs[ix.ProgramID]
	if !ok {
		return fault.ErrUnknownProgram
	}

	infos := make([]*account.Info, 0, len(ix.Accounts))
	pre := make(map[account.Address]*account.Account, len(ix.Accounts))
	writable := make(map[account.Address]bool, len(ix.Accounts))
	for _, m := range ix.Accounts {
		a := working[m.Address]
		infos = append(infos, account.NewInfo(m.Address, m.IsSigner, m.IsWritable, a))
		if _, ok := pre[m.Address]; !ok {
			pre[m.Address] = a.Clone()
		}
		writable[m.Address] = writable[m.Address] || m.IsWritable
	}

	rt := &runtime{
		rent:      b.config.Rent,
		programID: ix.ProgramID,
		pre:       pre,
	}
	err := processor(rt, ix.ProgramID, infos, ix.Data)
	if nil != err {
		return err
	}

	return verify(ix.ProgramID, pre, working, writable)
}

func verify(programID account.Address, pre map[account.Address]*account.Account, working map[account.Address]*account.Account, writable map[account.Address]bool) error {
	before := uint64(0)
	after := uint64(0)
	for address, p := range pre {
		a := working[address]
		before += p.Lamports
		after += a.Lamports

		if a.Equal(p) {
			continue
		}
		if !writable[address] {
			return fault.ErrReadonlyAccountModified
		}
		if a.Owner != p.Owner {
			return fault.ErrInvalidAccountOwner
		}
		if p.Owner != programID {
			if !bytes.Equal(a.Data, p.Data) {
				return fault.ErrExternalAccountDataChanged
			}
			if a.Lamports < p.Lamports {
				return fault.ErrExternalLamportsSpent
			}
		}
		if len(a.Data) > MaximumAccountLength {
			return fault.ErrReallocTooLarge
		}
	}
	if before != after {
		return fault.ErrLamportsNotConserved
	}
	return nil
}

// write every changed account, the signature and nothing else in one
// batch; accounts left without lamports are removed
func (b *Bank) commit(id account.Signature, keys []instruction.Meta, original map[account.Address]*account.Account, working map[account.Address]*account.Account) error {
	trx, err := b.database.Begin()
	if nil != err {
		return err
	}

	changed := make(map[account.Address]*account.Account)
	for _, k := range keys {
		a := working[k.Address]
		if a.Equal(original[k.Address]) {
			continue
		}
		changed[k.Address] = a
		if 0 == a.Lamports {
			trx.Delete(b.database.Pool.Accounts, k.Address[:])
		} else {
			trx.Put(b.database.Pool.Accounts, k.Address[:], a.Pack())
		}
	}
	trx.PutN(b.database.Pool.Signatures, id[:], b.slot)

	err = trx.Commit()
	if nil != err {
		return err
	}

	b.notify(changed)
	return nil
}

// blockhash of one of the last MaximumBlockhashAge slots
func (b *Bank) isRecent(h transaction.Hash) bool {
	for age := uint64(0); age <= MaximumBlockhashAge && age <= b.slot; age += 1 {
		stored := b.database.Pool.Blockhashes.Get(slotKey(b.slot - age))
		if bytes.Equal(stored, h[:]) {
			return true
		}
	}
	return false
}
