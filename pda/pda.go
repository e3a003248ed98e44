// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pda - program derived addresses
//
// an address is the sha256 digest of the seeds, a bump byte, the
// program id and a fixed marker; only digests that are not valid
// ed25519 points are accepted so no private key can sign for them
package pda

import (
	"crypto/sha256"

	"filippo.io/edwards25519"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/fault"
)

// seed limits
const (
	MaximumSeeds      = 16
	MaximumSeedLength = 32
)

const marker = "ProgramDerivedAddress"

// IsOnCurve - true if the bytes decode as an ed25519 point
func IsOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return nil == err
}

// Create - the address for a complete seed list, the bump being the
// last seed
func Create(seeds [][]byte, programID account.Address) (account.Address, error) {
	if len(seeds) > MaximumSeeds {
		return account.Address{}, fault.ErrInvalidSeeds
	}

	h := sha256.New()
	for _, s := range seeds {
		if len(s) > MaximumSeedLength {
			return account.Address{}, fault.ErrInvalidSeeds
		}
		h.Write(s)
	}
	h.Write(programID[:])
	h.Write([]byte(marker))

	a := account.Address{}
	copy(a[:], h.Sum(nil))
	if IsOnCurve(a[:]) {
		return account.Address{}, fault.ErrInvalidSeeds
	}
	return a, nil
}

// Find - search for the canonical bump, starting at 255 and counting
// down, the first off curve address wins
func Find(seeds [][]byte, programID account.Address) (account.Address, uint8, error) {
	if len(seeds) >= MaximumSeeds {
		return account.Address{}, 0, fault.ErrInvalidSeeds
	}
	for _, s := range seeds {
		if len(s) > MaximumSeedLength {
			return account.Address{}, 0, fault.ErrInvalidSeeds
		}
	}

	for bump := 255; bump >= 0; bump -= 1 {
		a, err := Create(WithBump(seeds, uint8(bump)), programID)
		if nil == err {
			return a, uint8(bump), nil
		}
	}
	return account.Address{}, 0, fault.ErrInvalidBump
}

// MustCreate - reuse a known bump, panics if the seeds and bump do not
// give a valid address
func MustCreate(seeds [][]byte, bump uint8, programID account.Address) account.Address {
	a, err := Create(WithBump(seeds, bump), programID)
	if nil != err {
		fault.Panicf("pda: bump %d does not derive an address: %s", bump, err)
	}
	return a
}
