// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/pda"
	"github.com/rush-ecs/rush/rpc/pubsub"
	"github.com/rush-ecs/rush/state"
)

const dialTimeout = 10 * time.Second

type accountChange struct {
	Slot     uint64                 `json:"slot"`
	Address  account.Address        `json:"address"`
	Record   string                 `json:"record"`
	Lamports uint64                 `json:"lamports"`
	World    *worldSummary          `json:"world,omitempty"`
	Nonce    uint64                 `json:"nonce,omitempty"`
	Values   map[string]interface{} `json:"components,omitempty"`
}

type worldSummary struct {
	Name      string                       `json:"name"`
	Regions   []string                     `json:"regions"`
	Entities  []string                     `json:"entities"`
	Instances map[string]map[string]uint64 `json:"instances"`
}

func runWatch(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	ws := m.workspace

	programID, err := storeProgram(ws)
	if nil != err {
		return err
	}
	bp, err := ws.LoadBlueprint()
	if nil != err {
		return err
	}
	world, _, err := pda.FindWorld(programID, bp.Name, bp.Description)
	if nil != err {
		return err
	}

	target := world
	if c.NArg() > 0 {
		arguments, err := checkArguments(c, "REGION", "ENTITY", "NONCE")
		if nil != err {
			return err
		}
		nonce, err := checkNonce(arguments[2])
		if nil != err {
			return err
		}
		target, _, err = pda.FindInstance(programID, world, arguments[0], arguments[1], nonce)
		if nil != err {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	url := websocketURL(ws)
	s, err := pubsub.Dial(ctx, url)
	if nil != err {
		return err
	}
	defer s.Close()

	if m.verbose {
		fmt.Fprintf(m.e, "node: %s\n", url)
		fmt.Fprintf(m.e, "address: %s\n", target)
	}

	err = s.Subscribe(target)
	if nil != err {
		return err
	}

	// closing the session ends a blocked Next
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(ch)
	interrupted := make(chan struct{})
	go func() {
		if _, ok := <-ch; ok {
			close(interrupted)
			s.Close()
		}
	}()

	limit := c.Int("count")
	for seen := 0; 0 == limit || seen < limit; {
		message, err := s.Next()
		if nil != err {
			select {
			case <-interrupted:
				return nil
			default:
				return fmt.Errorf("%w: %s", fault.ErrTransportFailed, err)
			}
		}
		if nil != message.Reply {
			if "" != message.Reply.Error {
				return errors.New(message.Reply.Error)
			}
			continue
		}
		err = printJson(m.w, describe(programID, message.Notification))
		if nil != err {
			return err
		}
		seen += 1
	}
	return nil
}

// describe - decode the record held by a changed account
func describe(programID account.Address, n *pubsub.Notification) *accountChange {
	c := &accountChange{
		Slot:     n.Slot,
		Address:  n.Address,
		Lamports: n.Lamports,
		Record:   "unknown",
	}
	if 0 == len(n.Data) {
		c.Record = "closed"
		return c
	}
	if n.Owner != programID {
		return c
	}

	if w, err := state.UnpackWorld(n.Data); nil == err {
		c.Record = "world"
		c.World = &worldSummary{
			Name:      w.Name,
			Regions:   w.Regions,
			Entities:  w.Entities,
			Instances: w.Instances,
		}
		return c
	}
	if i, err := state.UnpackInstance(n.Data); nil == err {
		c.Record = "instance"
		c.Nonce = i.Nonce
		c.Values = components(i.Components)
	}
	return c
}
