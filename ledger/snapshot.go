// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/fault"
)

// snapshot stream, zstd compressed
//
//	address                          32 bytes
//	big endian record length (n)      8 bytes
//	packed account                    n bytes
//
// repeated for every account in address order
const maximumRecord = 8 + MaximumAccountLength + 1024

var errNotEmpty = errors.New("stop")

// SaveSnapshot - write every account, returns the count written
func (b *Bank) SaveSnapshot(w io.Writer) (int, error) {
	z, err := zstd.NewWriter(w)
	if nil != err {
		return 0, err
	}

	count := 0
	err = b.Accounts(func(address account.Address, a *account.Account) error {
		packed := a.Pack()
		l := make([]byte, 8)
		binary.BigEndian.PutUint64(l, uint64(len(packed)))
		for _, buffer := range [][]byte{address[:], l, packed} {
			if _, err := z.Write(buffer); nil != err {
				return err
			}
		}
		count += 1
		return nil
	})
	if nil != err {
		z.Close()
		return count, err
	}
	return count, z.Close()
}

// LoadSnapshot - restore accounts into a database that holds none,
// returns the count read
//
// the whole stream is decoded before anything is written, so a bad
// snapshot leaves the database untouched
func (b *Bank) LoadSnapshot(r io.Reader) (int, error) {
	b.Lock()
	empty := b.empty()
	b.Unlock()
	if !empty {
		return 0, fault.ErrDatabaseNotEmpty
	}

	z, err := zstd.NewReader(r)
	if nil != err {
		return 0, err
	}
	defer z.Close()
	in := bufio.NewReader(z)

	addresses := []account.Address{}
	accounts := []*account.Account{}
	for {
		address := account.Address{}
		_, err := io.ReadFull(in, address[:])
		if io.EOF == err {
			break
		}
		if nil != err {
			return 0, fault.ErrInvalidSnapshot
		}

		l := make([]byte, 8)
		if _, err := io.ReadFull(in, l); nil != err {
			return 0, fault.ErrInvalidSnapshot
		}
		size := binary.BigEndian.Uint64(l)
		if size > maximumRecord {
			return 0, fault.ErrInvalidSnapshot
		}

		buffer := make([]byte, size)
		if _, err := io.ReadFull(in, buffer); nil != err {
			return 0, fault.ErrInvalidSnapshot
		}
		a, err := account.Unpack(buffer)
		if nil != err {
			return 0, fault.ErrInvalidSnapshot
		}
		addresses = append(addresses, address)
		accounts = append(accounts, a)
	}

	err = b.Restore(addresses, accounts)
	if nil != err {
		return 0, err
	}
	b.log.Infof("restored: %d accounts", len(addresses))
	return len(addresses), nil
}
