// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/fault"
)

func TestAddressText(t *testing.T) {
	assert.Equal(t, "11111111111111111111111111111111", account.SystemProgram.String())

	a := account.Address{}
	for i := range a {
		a[i] = byte(i + 1)
	}

	decoded, err := account.AddressFromBase58(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, decoded)

	buffer, err := json.Marshal(map[string]account.Address{"a": a})
	require.NoError(t, err)

	var m map[string]account.Address
	require.NoError(t, json.Unmarshal(buffer, &m))
	assert.Equal(t, a, m["a"])

	_, err = account.AddressFromBase58("abc")
	assert.Equal(t, fault.ErrInvalidAddress, err)

	_, err = account.AddressFromBase58("0OIl")
	assert.Equal(t, fault.ErrInvalidAddress, err)
}

func TestCheckSignature(t *testing.T) {
	public, private, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	a, err := account.AddressFromBytes(public)
	require.NoError(t, err)

	message := []byte("spawn farm/apple")
	signature := account.Signature{}
	copy(signature[:], ed25519.Sign(private, message))

	assert.NoError(t, a.CheckSignature(message, signature))
	assert.Equal(t, fault.ErrInvalidSignature, a.CheckSignature([]byte("other"), signature))

	text, err := signature.MarshalText()
	require.NoError(t, err)
	var decoded account.Signature
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, signature, decoded)
}

func TestAccountPack(t *testing.T) {
	a := &account.Account{
		Lamports: 1234567,
		Owner:    account.Address{9},
		Data:     []byte{1, 2, 3},
	}

	actual, err := account.Unpack(a.Pack())
	require.NoError(t, err)
	assert.True(t, a.Equal(actual))

	empty := &account.Account{}
	actual, err = account.Unpack(empty.Pack())
	require.NoError(t, err)
	assert.True(t, actual.IsEmpty())
	assert.NotNil(t, actual.Data)

	_, err = account.Unpack(append(a.Pack(), 0))
	assert.Equal(t, fault.ErrInvalidAccountData, err)
}

func TestRealloc(t *testing.T) {
	a := &account.Account{Data: []byte{1, 2, 3, 4}}
	info := account.NewInfo(account.Address{}, false, true, a)

	require.NoError(t, info.Realloc(2))
	assert.Equal(t, []byte{1, 2}, info.Data)

	require.NoError(t, info.Realloc(5))
	assert.Equal(t, []byte{1, 2, 0, 0, 0}, info.Data)
	assert.Equal(t, info.Data, a.Data, "info shares the account")

	assert.Equal(t, fault.ErrReallocTooLarge, info.Realloc(4+account.MaximumDataIncrease+1))
	assert.NoError(t, info.Realloc(4+account.MaximumDataIncrease))
}

func TestRent(t *testing.T) {
	r := account.DefaultRent
	assert.Equal(t, uint64(890880), r.MinimumBalance(0))
	assert.Equal(t, uint64((128+100)*3480*2), r.MinimumBalance(100))
	assert.True(t, r.IsExempt(r.MinimumBalance(10), 10))
	assert.False(t, r.IsExempt(r.MinimumBalance(10)-1, 10))
}
