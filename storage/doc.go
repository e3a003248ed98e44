// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - the on-disk account database of the ledger node
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. slot         = big endian uint64 (8 bytes)
// 4. address      = 32 byte account address
// 5. signature    = 64 byte ed25519 signature (transaction id)
//
// Accounts:
//
//	A ++ address               - account state
//	                             data: packed account.Account
//
// Blockhashes:
//
//	B ++ slot                  - blockhash of the slot
//	                             data: 32 byte hash
//
// Signatures:
//
//	S ++ signature             - processed transaction
//	                             data: slot
//
// Meta:
//
//	M ++ name                  - node counters
//	                             data: various
//
// Testing:
//
//	Z ++ key                   - testing data
package storage
