// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/blueprint"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/instruction"
	"github.com/rush-ecs/rush/keypair"
	"github.com/rush-ecs/rush/transaction"
)

var program = account.Address{0x5a}

func makeKey(t *testing.T, b byte) *keypair.KeyPair {
	seed := make([]byte, 32)
	seed[0] = b
	kp, err := keypair.FromSeed(seed)
	require.NoError(t, err)
	return kp
}

func TestSigners(t *testing.T) {
	payer := makeKey(t, 1)
	other := makeKey(t, 2)
	record := account.Address{0x99}

	tx := transaction.New(payer.Address(), transaction.Hash{1},
		instruction.NewUpdateEntity(program, other.Address(), record, "x", blueprint.Integer(1)),
		instruction.NewUpdateEntity(program, payer.Address(), record, "x", blueprint.Integer(2)),
	)

	assert.Equal(t, []account.Address{payer.Address(), other.Address()}, tx.Message.Signers())

	keys := tx.Message.AccountKeys()
	require.Equal(t, 3, len(keys))
	assert.Equal(t, instruction.Signer(payer.Address()), keys[0])
	assert.Equal(t, instruction.Signer(other.Address()), keys[1])
	assert.Equal(t, instruction.Writable(record), keys[2])
}

func TestAccountKeysMergeRoles(t *testing.T) {
	payer := makeKey(t, 1)
	shared := account.Address{0x42}

	tx := transaction.New(payer.Address(), transaction.Hash{},
		instruction.Instruction{ProgramID: program, Accounts: []instruction.Meta{instruction.Readonly(shared)}},
		instruction.Instruction{ProgramID: program, Accounts: []instruction.Meta{instruction.Writable(shared)}},
	)
	keys := tx.Message.AccountKeys()
	require.Equal(t, 2, len(keys))
	assert.True(t, keys[1].IsWritable)
	assert.False(t, keys[1].IsSigner)
}

func TestSignVerify(t *testing.T) {
	payer := makeKey(t, 1)
	other := makeKey(t, 2)
	record := account.Address{0x99}

	tx := transaction.New(payer.Address(), transaction.Hash{7},
		instruction.NewUpdateEntity(program, other.Address(), record, "x", blueprint.Integer(1)),
	)

	err := tx.Sign(payer)
	assert.Equal(t, fault.ErrMissingRequiredSignature, err)

	require.NoError(t, tx.Sign(payer, other))
	require.NoError(t, tx.Verify())
	assert.Equal(t, tx.Signatures[0], tx.ID())

	assert.Equal(t, fault.ErrInvalidKeypair, tx.Sign(makeKey(t, 3)))

	tx.Message.RecentBlockhash = transaction.Hash{8}
	assert.Equal(t, fault.ErrInvalidSignature, tx.Verify())

	tx.Signatures = tx.Signatures[:1]
	assert.Equal(t, fault.ErrMissingRequiredSignature, tx.Verify())
}

func TestPackUnpack(t *testing.T) {
	payer := makeKey(t, 1)
	tx := transaction.New(payer.Address(), transaction.Hash{3},
		instruction.NewDespawnEntity(program, payer.Address(), account.Address{0x10}),
		instruction.NewDeleteWorld(program, payer.Address(), account.Address{0x11}),
	)
	require.NoError(t, tx.Sign(payer))

	packed := tx.Pack()
	actual, err := transaction.Unpack(packed)
	require.NoError(t, err)
	assert.Equal(t, tx, actual)
	assert.NoError(t, actual.Verify())

	_, err = transaction.Unpack(packed[:len(packed)-1])
	assert.Equal(t, fault.ErrNotTransactionPack, err)

	_, err = transaction.Unpack(append(packed, 0))
	assert.Equal(t, fault.ErrNotTransactionPack, err)
}

func TestHashText(t *testing.T) {
	h := transaction.Hash{1, 2, 3}
	b, err := json.Marshal(h)
	require.NoError(t, err)

	var actual transaction.Hash
	require.NoError(t, json.Unmarshal(b, &actual))
	assert.Equal(t, h, actual)

	_, err = transaction.HashFromBase58("not-base58-0OIl")
	assert.Error(t, err)
}

func TestState(t *testing.T) {
	s := transaction.Status{State: transaction.ConfirmedTransaction, Slot: 4}
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"state":"Confirmed","slot":4}`, string(b))

	var actual transaction.Status
	require.NoError(t, json.Unmarshal(b, &actual))
	assert.Equal(t, s, actual)
}
