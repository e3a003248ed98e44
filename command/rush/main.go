// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/rush-ecs/rush/workspace"
)

type metadata struct {
	workspace *workspace.Workspace
	verbose   bool
	e         io.Writer
	w         io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	if err := setupLogging(); nil != err {
		exitwithstatus.Message("logger setup failed with error: %s", err)
	}
	defer logger.Finalise()

	app := newApp(os.Stdout, os.Stderr)
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		exitwithstatus.Exit(1)
	}
}

// the commands log to a rotating file in the user cache directory
func setupLogging() error {
	dir, err := os.UserCacheDir()
	if nil != err {
		dir = os.TempDir()
	}
	dir = filepath.Join(dir, "rush")
	if err := os.MkdirAll(dir, 0o700); nil != err {
		return err
	}
	return logger.Initialise(logger.Configuration{
		Directory: dir,
		File:      "rush.log",
		Size:      1048576,
		Count:     5,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "info",
		},
	})
}

func newApp(w io.Writer, e io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "rush"
	app.Usage = "manage Rush ECS workspaces and their worlds"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "directory, C",
			Value: ".",
			Usage: " start the workspace search from `DIR`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "new",
			Usage:     "create a workspace with a sample blueprint",
			ArgsUsage: "NAME\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "path, p",
					Value: "",
					Usage: " workspace `DIR` [./NAME]",
				},
			},
			Action: runNew,
		},
		{
			Name:  "view",
			Usage: "display the workspace blueprint",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "format, f",
					Value: "table",
					Usage: " output `FORMAT` [table|yaml]",
				},
				cli.BoolFlag{
					Name:  "watch, w",
					Usage: " display again whenever the blueprint changes",
				},
			},
			Action: runView,
		},
		{
			Name:  "deploy",
			Usage: "migrate the blueprint to the configured storage",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "dry-run, n",
					Usage: " list the records that would be created",
				},
			},
			Action: runDeploy,
		},
		{
			Name:  "config",
			Usage: "display or change Rush.toml settings",
			Subcommands: []cli.Command{
				{
					Name:      "get",
					Usage:     "display settings, environment overrides applied",
					ArgsUsage: "[KEY]",
					Action:    runConfigGet,
				},
				{
					Name:      "set",
					Usage:     "change a setting in Rush.toml",
					ArgsUsage: "KEY VALUE\n   (* = required)",
					Action:    runConfigSet,
				},
			},
		},
		{
			Name:  "keygen",
			Usage: "create a keypair file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "outfile, o",
					Value: "",
					Usage: " keypair `FILE` [workspace keypair]",
				},
			},
			Action: runKeygen,
		},
		{
			Name:      "airdrop",
			Usage:     "request lamports for the workspace keypair",
			ArgsUsage: "LAMPORTS\n   (* = required)",
			Action:    runAirdrop,
		},
		{
			Name:      "create",
			Usage:     "create an instance holding default values",
			ArgsUsage: "REGION ENTITY",
			Action:    runCreate,
		},
		{
			Name:      "get",
			Usage:     "display a component of an instance",
			ArgsUsage: "REGION ENTITY NONCE COMPONENT",
			Action:    runGet,
		},
		{
			Name:      "set",
			Usage:     "change a component of an instance",
			ArgsUsage: "REGION ENTITY NONCE COMPONENT VALUE",
			Action:    runSet,
		},
		{
			Name:      "delete",
			Usage:     "delete an instance",
			ArgsUsage: "REGION ENTITY NONCE",
			Action:    runDelete,
		},
		{
			Name:      "watch",
			Usage:     "display changes of the world or of one instance",
			ArgsUsage: "[REGION ENTITY NONCE]",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count, n",
					Value: 0,
					Usage: " stop after `N` changes [forever]",
				},
			},
			Action: runWatch,
		},
		{
			Name:  "version",
			Usage: "display rush version",
			Action: func(c *cli.Context) error {
				fmt.Fprintln(c.App.Writer, version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		m := &metadata{
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		c.App.Metadata["config"] = m

		// commands that do not need a workspace
		command := c.Args().Get(0)
		switch command {
		case "", "help", "h", "version", "new":
			return nil
		}

		dir := c.GlobalString("directory")
		ws, err := workspace.Find(dir)
		if "keygen" == command {
			if nil == err {
				m.workspace = ws
			}
			return nil
		}
		if nil != err {
			return err
		}
		m.workspace = ws

		if m.verbose {
			fmt.Fprintf(m.e, "workspace: %q\n", ws.Root)
			fmt.Fprintf(m.e, "repository: %s\n", ws.Manifest.Storage.Repository)
		}
		return nil
	}

	return app
}
