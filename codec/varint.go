// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

// MaximumVarintBytes - maximum possible number of bytes in a varint
const MaximumVarintBytes = 9

// AppendVarint - append a 64 bit unsigned integer as a varint
//
// seven bits per byte, least significant group first, the top bit of
// each byte flags a continuation; the ninth byte carries a full eight
// bits so no value needs more than nine bytes
func AppendVarint(buffer []byte, value uint64) []byte {
	if value < 0x80 {
		return append(buffer, byte(value))
	}

	for i := 0; i < MaximumVarintBytes && 0 != value; i += 1 {
		ext := uint64(0x80)
		if value < 0x80 {
			ext = 0x00
		}
		buffer = append(buffer, byte(value|ext))
		value >>= 7
	}
	return buffer
}

// Varint - decode a varint from the start of a buffer
//
// returns the value and the number of bytes consumed, or 0, 0 if the
// buffer is truncated
func Varint(buffer []byte) (uint64, int) {
	result := uint64(0)
	shift := uint(0)

	for count := 0; count < len(buffer); shift += 7 {
		b := uint64(buffer[count])
		count += 1
		if count == MaximumVarintBytes {
			return result | b<<shift, count
		}
		result |= b & 0x7f << shift
		if 0 == b&0x80 {
			return result, count
		}
	}
	return 0, 0
}
