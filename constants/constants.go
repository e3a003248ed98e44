// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package constants - fixed values shared by rush and rushd
package constants

import (
	"time"

	"github.com/rush-ecs/rush/account"
)

// program ids of the development node
var (
	StoreProgram = account.MustAddressFromBase58("RushStore1111111111111111111111111111111111")
	ProxyProgram = account.MustAddressFromBase58("RushProxy1111111111111111111111111111111111")
)

// default node ports
const (
	RPCPort    = 2130
	PubsubPort = 2140
)

// local node endpoints written into new workspaces
const (
	LocalRPC       = "tcp://127.0.0.1:2130"
	LocalWebsocket = "ws://127.0.0.1:2140/subscribe"
)

// DefaultKeypair - keypair file when nothing else is configured
const DefaultKeypair = "~/.config/solana/id.json"

// SlotInterval - default time between slots
const SlotInterval = 400 * time.Millisecond
