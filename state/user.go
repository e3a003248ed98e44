// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/codec"
	"github.com/rush-ecs/rush/fault"
)

// User - a registered user agent of a world
type User struct {
	UserAuthority account.Address
	Bump          uint8
}

// UserSize - fixed size of a user record
const UserSize = DiscriminatorLength + account.AddressLength + 1

// Pack - binary form of the record
func (u *User) Pack() codec.Packed {
	p := make(codec.Packed, 0, UserSize)
	p.Fixed(UserDiscriminator[:])
	p.Fixed(u.UserAuthority[:])
	p.Byte(u.Bump)
	return p
}

// UnpackUser - decode a user record
func UnpackUser(data []byte) (*User, error) {
	err := checkDiscriminator(data, UserDiscriminator)
	if nil != err {
		return nil, err
	}
	if UserSize != len(data) {
		return nil, fault.ErrInvalidAccountData
	}
	u := &User{Bump: data[UserSize-1]}
	copy(u.UserAuthority[:], data[DiscriminatorLength:])
	return u, nil
}
