// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/blueprint"
	"github.com/rush-ecs/rush/codec"
	"github.com/rush-ecs/rush/fault"
)

// Instance - one spawned entity
type Instance struct {
	Components        blueprint.ComponentTree
	Nonce             uint64
	InstanceAuthority account.Address
	Bump              uint8
}

// Pack - binary form of the record
func (i *Instance) Pack() codec.Packed {
	p := codec.Packed{}
	p.Fixed(InstanceDiscriminator[:])
	i.Components.Pack(&p)
	p.Uint64(i.Nonce)
	p.Fixed(i.InstanceAuthority[:])
	p.Byte(i.Bump)
	return p
}

// PackedSize - exact number of bytes Pack produces
func (i *Instance) PackedSize() int {
	return len(i.Pack())
}

// UnpackInstance - decode a record that fills the whole buffer
func UnpackInstance(data []byte) (*Instance, error) {
	i, n, err := unpackInstance(data)
	if nil != err {
		return nil, err
	}
	if n != len(data) {
		return nil, fault.ErrInvalidAccountData
	}
	return i, nil
}

// UnpackInstanceUnchecked - decode a record, bytes after it are ignored
func UnpackInstanceUnchecked(data []byte) (*Instance, error) {
	i, _, err := unpackInstance(data)
	return i, err
}

func unpackInstance(data []byte) (*Instance, int, error) {
	err := checkDiscriminator(data, InstanceDiscriminator)
	if nil != err {
		return nil, 0, err
	}

	r := codec.NewReader(data[DiscriminatorLength:])
	components, err := blueprint.UnpackComponentTree(r)
	if nil != err {
		return nil, 0, fault.ErrInvalidAccountData
	}
	i := &Instance{Components: components}
	i.Nonce = r.Uint64()
	copy(i.InstanceAuthority[:], r.Fixed(account.AddressLength))
	i.Bump = r.Byte()

	if err := r.Err(); nil != err {
		return nil, 0, fault.ErrInvalidAccountData
	}
	return i, DiscriminatorLength + r.Offset(), nil
}
