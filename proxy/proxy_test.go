// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proxy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/pda"
	"github.com/rush-ecs/rush/proxy"
	"github.com/rush-ecs/rush/state"
)

var proxyID = account.Address{0x70, 0x01}

type runtime struct{}

func (runtime) Rent() account.Rent { return account.DefaultRent }

func (runtime) CreateAccount(payer *account.Info, target *account.Info, lamports uint64, space uint64, owner account.Address, seeds [][]byte) error {
	address, err := pda.Create(seeds, owner)
	if nil != err || address != target.Key {
		return fault.ErrAddressMismatch
	}
	if payer.Lamports < lamports {
		return fault.ErrInsufficientFunds
	}
	payer.Lamports -= lamports
	target.Lamports = lamports
	target.Owner = owner
	target.Data = make([]byte, space)
	return nil
}

func (runtime) Transfer(from *account.Info, to *account.Info, lamports uint64) error {
	from.Lamports -= lamports
	to.Lamports += lamports
	return nil
}

func TestRegisterDeregister(t *testing.T) {
	w := state.NewWorld("W", "D", []string{"farm"}, []string{"apple"}, account.Address{0x01}, 255, true)
	world := account.NewInfo(account.Address{0x33}, false, false, &account.Account{Lamports: 1, Data: w.Pack()})
	authority := account.NewInfo(account.Address{0x02}, true, true, &account.Account{Lamports: 100000000, Data: []byte{}})
	system := account.NewInfo(account.SystemProgram, false, false, &account.Account{Data: []byte{}})

	address, bump, err := pda.FindUser(proxyID, world.Key, authority.Key, "phone")
	require.NoError(t, err)
	user := account.NewInfo(address, false, true, &account.Account{Data: []byte{}})

	ix := proxy.NewRegister(proxyID, authority.Key, address, world.Key, "phone", bump)
	accounts := []*account.Info{authority, user, world, system}
	require.NoError(t, proxy.Process(runtime{}, proxyID, accounts, ix.Data))

	u, err := state.UnpackUser(user.Data)
	require.NoError(t, err)
	assert.Equal(t, authority.Key, u.UserAuthority)
	assert.Equal(t, bump, u.Bump)
	assert.Equal(t, account.DefaultRent.MinimumBalance(state.UserSize), user.Lamports)

	assert.Equal(t, fault.ErrAccountAlreadyInitialised, proxy.Process(runtime{}, proxyID, accounts, ix.Data))

	other := account.NewInfo(account.Address{0x03}, true, true, &account.Account{Data: []byte{}})
	ix = proxy.NewDeregister(proxyID, other.Key, address)
	assert.Equal(t, fault.ErrUnauthorised, proxy.Process(runtime{}, proxyID, []*account.Info{other, user}, ix.Data))

	ix = proxy.NewDeregister(proxyID, authority.Key, address)
	require.NoError(t, proxy.Process(runtime{}, proxyID, []*account.Info{authority, user}, ix.Data))
	assert.Equal(t, uint64(0), user.Lamports)
	assert.False(t, state.IsInitialised(user.Data, state.UserDiscriminator))
}

func TestRegisterFailures(t *testing.T) {
	authority := account.NewInfo(account.Address{0x02}, true, true, &account.Account{Lamports: 100000000, Data: []byte{}})
	system := account.NewInfo(account.SystemProgram, false, false, &account.Account{Data: []byte{}})
	missing := account.NewInfo(account.Address{0x33}, false, false, &account.Account{Data: []byte{}})

	address, bump, err := pda.FindUser(proxyID, missing.Key, authority.Key, "s")
	require.NoError(t, err)
	user := account.NewInfo(address, false, true, &account.Account{Data: []byte{}})

	ix := proxy.NewRegister(proxyID, authority.Key, address, missing.Key, "s", bump)
	err = proxy.Process(runtime{}, proxyID, []*account.Info{authority, user, missing, system}, ix.Data)
	assert.Equal(t, fault.ErrWorldNotFound, err)

	assert.Equal(t, fault.ErrInvalidInstruction, proxy.Process(runtime{}, proxyID, nil, nil))
	assert.Equal(t, fault.ErrInvalidInstruction, proxy.Process(runtime{}, proxyID, nil, []byte{7}))
	assert.Equal(t, fault.ErrInvalidInstruction, proxy.Process(runtime{}, proxyID, nil, []byte{proxy.DeregisterTag, 0}))
}
