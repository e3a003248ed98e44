// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"time"

	"github.com/bitmark-inc/logger"
)

// Clock - background process advancing the slot of a bank at a fixed
// interval
type Clock struct {
	log      *logger.L
	bank     *Bank
	interval time.Duration
}

// NewClock - a clock for a bank, start it with background.Start
func NewClock(bank *Bank, interval time.Duration) *Clock {
	return &Clock{
		log:      logger.New("clock"),
		bank:     bank,
		interval: interval,
	}
}

// Run - advance once per interval until shutdown
func (c *Clock) Run(args interface{}, shutdown <-chan struct{}) {
	log := c.log
	log.Infof("starting…  interval: %s", c.interval)

	t := time.NewTicker(c.interval)
	defer t.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-t.C:
			h := c.bank.Advance()
			log.Tracef("slot: %d  blockhash: %s", c.bank.Slot(), h)
		}
	}
	log.Info("shutting down…")
	log.Flush()
}
