// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - assemble the RPC services of the node
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/rush-ecs/rush/counter"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/journal"
	"github.com/rush-ecs/rush/rpc/node"
)

// Create - an rpc.Server with every service registered, jnl may be nil
func Create(log *logger.L, ledger node.Ledger, jnl *journal.Journal, version string, rpcCount *counter.Counter) *rpc.Server {
	start := time.Now().UTC()

	// keep a nil journal as a nil interface
	var history node.Journal
	if nil != jnl {
		history = jnl
	}

	server := rpc.NewServer()
	err := server.Register(node.New(log, ledger, history, start, version, rpcCount))
	fault.PanicIfError("rpc register", err)

	return server
}
