// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/rush-ecs/rush/fault"
)

// Transaction - a batch of writes applied atomically by Commit
type Transaction interface {
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Commit() error
	Abort()
}

type transaction struct {
	access *AccessData
	done   bool
}

func (t *transaction) Put(p *PoolHandle, key []byte, value []byte) {
	t.access.put(p.prefixKey(key), value)
}

func (t *transaction) PutN(p *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.access.put(p.prefixKey(key), buffer)
}

func (t *transaction) Delete(p *PoolHandle, key []byte) {
	t.access.delete(p.prefixKey(key))
}

// Get - read through the pending writes of this batch
func (t *transaction) Get(p *PoolHandle, key []byte) []byte {
	value, err := t.access.get(p.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil
	}
	fault.PanicIfError("transaction.Get", err)
	return value
}

func (t *transaction) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	buffer := t.Get(p, key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		fault.Panicf("transaction.GetN truncated record for: %x: %s", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

func (t *transaction) Commit() error {
	if t.done {
		return fault.ErrTransactionDone
	}
	t.done = true
	return t.access.Commit()
}

func (t *transaction) Abort() {
	if t.done {
		return
	}
	t.done = true
	t.access.Abort()
}
