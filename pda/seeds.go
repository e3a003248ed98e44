// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pda

import (
	"encoding/binary"

	"github.com/rush-ecs/rush/account"
)

// record tags, the first seed of every record address
const (
	TagWorld    = "World"
	TagInstance = "Instance"
	TagUser     = "User"
)

// WorldSeeds - (tag, name, description)
func WorldSeeds(name string, description string) [][]byte {
	return [][]byte{[]byte(TagWorld), []byte(name), []byte(description)}
}

// InstanceSeeds - (tag, world, region, entity, nonce little endian)
func InstanceSeeds(world account.Address, region string, entity string, nonce uint64) [][]byte {
	n := make([]byte, 8)
	binary.LittleEndian.PutUint64(n, nonce)
	return [][]byte{[]byte(TagInstance), world.Bytes(), []byte(region), []byte(entity), n}
}

// UserSeeds - (tag, world, user authority, salt)
func UserSeeds(world account.Address, userAuthority account.Address, salt string) [][]byte {
	return [][]byte{[]byte(TagUser), world.Bytes(), userAuthority.Bytes(), []byte(salt)}
}

// FindWorld - address and bump of a world record
func FindWorld(programID account.Address, name string, description string) (account.Address, uint8, error) {
	return Find(WorldSeeds(name, description), programID)
}

// FindInstance - address and bump of an instance record
func FindInstance(programID account.Address, world account.Address, region string, entity string, nonce uint64) (account.Address, uint8, error) {
	return Find(InstanceSeeds(world, region, entity, nonce), programID)
}

// FindUser - address and bump of a user record
func FindUser(programID account.Address, world account.Address, userAuthority account.Address, salt string) (account.Address, uint8, error) {
	return Find(UserSeeds(world, userAuthority, salt), programID)
}

// WithBump - seeds followed by the bump seed
func WithBump(seeds [][]byte, bump uint8) [][]byte {
	return append(append([][]byte{}, seeds...), []byte{bump})
}
