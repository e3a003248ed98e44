// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pda_test

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/pda"
)

var programID = account.Address{0x52, 0x75, 0x73, 0x68}

func TestWorldAddress(t *testing.T) {
	a, bump, err := pda.Find([][]byte{[]byte("World"), []byte("W"), []byte("D")}, programID)
	require.NoError(t, err)

	b, err := pda.Create([][]byte{[]byte("World"), []byte("W"), []byte("D"), {bump}}, programID)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c := pda.MustCreate(pda.WorldSeeds("W", "D"), bump, programID)
	assert.Equal(t, a, c)

	w, wb, err := pda.FindWorld(programID, "W", "D")
	require.NoError(t, err)
	assert.Equal(t, a, w)
	assert.Equal(t, bump, wb)

	assert.False(t, pda.IsOnCurve(a[:]))
}

func TestDistinctSeeds(t *testing.T) {
	world, _, err := pda.FindWorld(programID, "W", "D")
	require.NoError(t, err)

	one, _, err := pda.FindInstance(programID, world, "farm", "apple", 1)
	require.NoError(t, err)
	two, _, err := pda.FindInstance(programID, world, "farm", "apple", 2)
	require.NoError(t, err)
	assert.NotEqual(t, one, two)

	other, _, err := pda.FindWorld(account.Address{1}, "W", "D")
	require.NoError(t, err)
	assert.NotEqual(t, world, other, "program id is part of the address")

	user, _, err := pda.FindUser(programID, world, account.Address{7}, "salt")
	require.NoError(t, err)
	assert.NotEqual(t, world, user)
}

func TestInstanceSeeds(t *testing.T) {
	seeds := pda.InstanceSeeds(account.Address{}, "farm", "apple", 258)
	require.Len(t, seeds, 5)
	assert.Equal(t, []byte("Instance"), seeds[0])
	assert.Equal(t, []byte{2, 1, 0, 0, 0, 0, 0, 0}, seeds[4])
}

func TestSeedLimits(t *testing.T) {
	long := bytes.Repeat([]byte{'x'}, pda.MaximumSeedLength+1)
	_, _, err := pda.Find([][]byte{long}, programID)
	assert.Equal(t, fault.ErrInvalidSeeds, err)

	many := make([][]byte, pda.MaximumSeeds)
	_, _, err = pda.Find(many, programID)
	assert.Equal(t, fault.ErrInvalidSeeds, err)
}

func TestOnCurve(t *testing.T) {
	public, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	assert.True(t, pda.IsOnCurve(public))
}

func TestMustCreatePanics(t *testing.T) {
	_, bump, err := pda.FindWorld(programID, "W", "D")
	require.NoError(t, err)

	// find a bump above the canonical one that lands on the curve,
	// any such bump must panic
	for b := int(bump) + 1; b <= 255; b += 1 {
		assert.Panics(t, func() {
			pda.MustCreate(pda.WorldSeeds("W", "D"), uint8(b), programID)
		})
	}
}

// find and create agree whenever create is given the found bump
func TestAddressDeterminism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("find then create give the same address", prop.ForAll(
		func(name string, description string) bool {
			if len(name) > pda.MaximumSeedLength || len(description) > pda.MaximumSeedLength {
				return true
			}
			a, bump, err := pda.FindWorld(programID, name, description)
			if nil != err {
				return false
			}
			b, err := pda.Create(pda.WithBump(pda.WorldSeeds(name, description), bump), programID)
			return nil == err && a == b
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
