// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package program

import (
	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/fault"
)

// CheckAccounts - at least count accounts were supplied
func CheckAccounts(accounts []*account.Info, count int) error {
	if len(accounts) < count {
		return fault.ErrNotEnoughAccountKeys
	}
	return nil
}

// CheckSigner - the account signed and may be written
func CheckSigner(info *account.Info) error {
	if !info.IsSigner {
		return fault.ErrMissingRequiredSignature
	}
	return nil
}

// CheckOwned - a writable record belonging to the program
func CheckOwned(info *account.Info, programID account.Address) error {
	if !info.IsWritable {
		return fault.ErrAccountNotWritable
	}
	if info.Owner != programID {
		return fault.ErrInvalidAccountOwner
	}
	return nil
}

// Absent - a record that was never created or has been closed
func Absent(info *account.Info) bool {
	return 0 == info.Lamports
}

// Write - store a packed record, resizing the account and topping up
// its rent from payer when it grows
func Write(ctx Context, payer *account.Info, target *account.Info, packed []byte) error {
	if len(packed) != len(target.Data) {
		err := target.Realloc(len(packed))
		if nil != err {
			return err
		}
	}

	minimum := ctx.Rent().MinimumBalance(len(packed))
	if target.Lamports < minimum {
		err := ctx.Transfer(payer, target, minimum-target.Lamports)
		if nil != err {
			return err
		}
	}

	copy(target.Data, packed)
	return nil
}

// Close - move every lamport to the receiver and zero the data, which
// leaves the record uninitialised
func Close(record *account.Info, receiver *account.Info) error {
	if !receiver.IsWritable {
		return fault.ErrAccountNotWritable
	}
	receiver.Lamports += record.Lamports
	record.Lamports = 0
	for i := range record.Data {
		record.Data[i] = 0
	}
	return nil
}
