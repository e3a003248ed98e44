// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package codec - compact binary encoding shared by ledger records,
// instruction payloads and transactions
//
// variable width items (strings, byte slices, sequences and maps) are
// preceded by a varint length or count, fixed width numbers are eight
// bytes little endian
package codec

import (
	"encoding/binary"
	"math"

	"github.com/rush-ecs/rush/fault"
)

// limits applied while decoding
const (
	MaximumLength = 1 << 20 // bytes in a single string or byte slice
	MaximumCount  = 1 << 16 // items in a single sequence or map
)

// Packed - an encoded item
type Packed []byte

// Byte - append a single byte
func (p *Packed) Byte(b byte) {
	*p = append(*p, b)
}

// Bool - append a boolean as one byte
func (p *Packed) Bool(b bool) {
	if b {
		*p = append(*p, 1)
	} else {
		*p = append(*p, 0)
	}
}

// Varint - append an unsigned varint
func (p *Packed) Varint(v uint64) {
	*p = AppendVarint(*p, v)
}

// Uint64 - append fixed eight bytes little endian
func (p *Packed) Uint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	*p = append(*p, b[:]...)
}

// Int64 - append a signed integer, two's complement
func (p *Packed) Int64(v int64) {
	p.Uint64(uint64(v))
}

// Float64 - append IEEE-754 bits
func (p *Packed) Float64(v float64) {
	p.Uint64(math.Float64bits(v))
}

// Fixed - append raw bytes without a length
func (p *Packed) Fixed(b []byte) {
	*p = append(*p, b...)
}

// Bytes - append a length prefixed byte slice
func (p *Packed) Bytes(b []byte) {
	p.Varint(uint64(len(b)))
	*p = append(*p, b...)
}

// String - append a length prefixed string
func (p *Packed) String(s string) {
	p.Varint(uint64(len(s)))
	*p = append(*p, s...)
}

// Strings - append a counted list of strings
func (p *Packed) Strings(list []string) {
	p.Varint(uint64(len(list)))
	for _, s := range list {
		p.String(s)
	}
}

// Reader - sequential decoder
//
// the first failure is kept and all later reads return zero values, so
// a caller can decode a whole record and check Err once
type Reader struct {
	buffer []byte
	n      int
	err    error
}

// NewReader - decode from the start of a buffer
func NewReader(buffer []byte) *Reader {
	return &Reader{buffer: buffer}
}

// Err - first error encountered
func (r *Reader) Err() error {
	return r.err
}

// Offset - number of bytes consumed
func (r *Reader) Offset() int {
	return r.n
}

// Remaining - number of bytes not yet consumed
func (r *Reader) Remaining() int {
	return len(r.buffer) - r.n
}

func (r *Reader) fail(err error) {
	if nil == r.err {
		r.err = err
	}
}

func (r *Reader) take(count int) []byte {
	if nil != r.err {
		return nil
	}
	if count < 0 || r.n+count > len(r.buffer) {
		r.fail(fault.ErrInvalidLength)
		return nil
	}
	b := r.buffer[r.n : r.n+count]
	r.n += count
	return b
}

// Byte - read a single byte
func (r *Reader) Byte() byte {
	b := r.take(1)
	if nil == b {
		return 0
	}
	return b[0]
}

// Bool - read a boolean, only 0 and 1 are accepted
func (r *Reader) Bool() bool {
	switch r.Byte() {
	case 0:
		return false
	case 1:
		return true
	default:
		r.fail(fault.ErrInvalidValue)
		return false
	}
}

// Varint - read an unsigned varint
func (r *Reader) Varint() uint64 {
	if nil != r.err {
		return 0
	}
	v, count := Varint(r.buffer[r.n:])
	if 0 == count {
		r.fail(fault.ErrInvalidLength)
		return 0
	}
	r.n += count
	return v
}

// Count - read a varint count and check it against a maximum
func (r *Reader) Count(maximum int) int {
	v := r.Varint()
	if v > uint64(maximum) {
		r.fail(fault.ErrInvalidCount)
		return 0
	}
	return int(v)
}

// Uint64 - read fixed eight bytes little endian
func (r *Reader) Uint64() uint64 {
	b := r.take(8)
	if nil == b {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// Int64 - read a signed integer
func (r *Reader) Int64() int64 {
	return int64(r.Uint64())
}

// Float64 - read IEEE-754 bits
func (r *Reader) Float64() float64 {
	return math.Float64frombits(r.Uint64())
}

// Fixed - read a number of raw bytes, the result is a copy
func (r *Reader) Fixed(count int) []byte {
	b := r.take(count)
	if nil == b {
		return nil
	}
	return append([]byte{}, b...)
}

// Bytes - read a length prefixed byte slice
func (r *Reader) Bytes() []byte {
	return r.Fixed(r.Count(MaximumLength))
}

// String - read a length prefixed string
func (r *Reader) String() string {
	b := r.take(r.Count(MaximumLength))
	return string(b)
}

// Strings - read a counted list of strings
func (r *Reader) Strings() []string {
	count := r.Count(MaximumCount)
	list := make([]string, 0, count)
	for i := 0; i < count && nil == r.err; i += 1 {
		list = append(list, r.String())
	}
	return list
}
