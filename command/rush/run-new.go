// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/rush-ecs/rush/workspace"
)

func runNew(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	arguments, err := checkArguments(c, "NAME")
	if nil != err {
		return err
	}
	name := arguments[0]

	root := c.String("path")
	if "" == root {
		root = filepath.Join(c.GlobalString("directory"), name)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "name: %s\n", name)
		fmt.Fprintf(m.e, "path: %s\n", root)
	}

	ws, err := workspace.New(name, root)
	if nil != err {
		return err
	}

	fmt.Fprintf(m.w, "created workspace: %q in: %s\n", name, ws.Root)
	return nil
}
