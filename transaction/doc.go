// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - signed lists of instructions
//
// the packed form is
//
//	Varint(signature count) signature...
//	fee payer, recent blockhash
//	Varint(instruction count) instruction...
//
// every signature covers the packed message (everything after the
// signatures); signatures are in the order of Message.Signers and
// the first one identifies the transaction
package transaction
