// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package state - records owned by the store program
//
// every record starts with an eight byte discriminator; an account
// whose data is all zero (never written, or deleted) has a zero
// discriminator and so is distinguishable from every record
package state

import (
	"bytes"
	"crypto/sha256"

	"github.com/rush-ecs/rush/fault"
)

// DiscriminatorLength - bytes at the head of every record
const DiscriminatorLength = 8

// Discriminator - identifies the layout of a record
type Discriminator [DiscriminatorLength]byte

// discriminators of the record types
var (
	WorldDiscriminator    = makeDiscriminator("World")
	InstanceDiscriminator = makeDiscriminator("Instance")
	UserDiscriminator     = makeDiscriminator("User")
)

func makeDiscriminator(record string) Discriminator {
	digest := sha256.Sum256([]byte("account:" + record))
	d := Discriminator{}
	copy(d[:], digest[:DiscriminatorLength])
	return d
}

// IsInitialised - true if data starts with the discriminator
func IsInitialised(data []byte, d Discriminator) bool {
	return len(data) >= DiscriminatorLength && bytes.Equal(data[:DiscriminatorLength], d[:])
}

// check the head of a record before decoding it
func checkDiscriminator(data []byte, d Discriminator) error {
	if IsInitialised(data, d) {
		return nil
	}
	if len(data) < DiscriminatorLength || bytes.Equal(data[:DiscriminatorLength], make([]byte, DiscriminatorLength)) {
		return fault.ErrNotInitialised
	}
	return fault.ErrInvalidAccountData
}
