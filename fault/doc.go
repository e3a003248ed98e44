// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - every error a rush component can return
//
// errors are typed strings so they compare with == and survive a trip
// through the RPC layer, see Find; each type has an IsErrX classifier
package fault
