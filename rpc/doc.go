// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - this is to setup and handle all of the incoming JSON RPC
// requests and websocket subscriptions from clients of rushd
//
// standard golang RPC services can be used on the client side to
// access these services, see rpc/client
package rpc
