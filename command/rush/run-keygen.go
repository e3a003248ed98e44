// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/constants"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/keypair"
)

type keygenResult struct {
	Address account.Address `json:"address"`
	File    string          `json:"file"`
}

func runKeygen(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	file := c.String("outfile")
	if "" == file {
		file = constants.DefaultKeypair
		if nil != m.workspace {
			file = m.workspace.KeypairPath()
		}
	}

	if m.verbose {
		fmt.Fprintf(m.e, "keypair file: %s\n", file)
	}

	kp, err := keypair.New()
	if nil != err {
		return err
	}
	err = keypair.WriteFile(file, kp)
	if os.IsExist(err) {
		return fmt.Errorf("%w: %s", fault.ErrKeyFileAlreadyExists, file)
	}
	if nil != err {
		return err
	}

	return printJson(m.w, keygenResult{
		Address: kp.Address(),
		File:    file,
	})
}
