// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/keypair"
)

type airdropResult struct {
	Address  account.Address `json:"address"`
	Lamports uint64          `json:"lamports"`
	Balance  uint64          `json:"balance"`
}

func runAirdrop(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	ws := m.workspace

	arguments, err := checkArguments(c, "LAMPORTS")
	if nil != err {
		return err
	}
	lamports, err := checkLamports(arguments[0])
	if nil != err {
		return err
	}

	kp, err := keypair.ReadFile(ws.KeypairPath())
	if nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cl, err := dial(ctx, ws)
	if nil != err {
		return err
	}
	defer cl.Close()

	if m.verbose {
		fmt.Fprintf(m.e, "node: %s\n", cl.Endpoint())
		fmt.Fprintf(m.e, "address: %s\n", kp.Address())
	}

	err = cl.RequestAirdrop(ctx, kp.Address(), lamports)
	if nil != err {
		return err
	}

	balance := uint64(0)
	a, err := cl.GetAccount(ctx, kp.Address())
	if nil == err {
		balance = a.Lamports
	} else if fault.ErrAccountNotFound != err {
		return err
	}

	return printJson(m.w, airdropResult{
		Address:  kp.Address(),
		Lamports: lamports,
		Balance:  balance,
	})
}
