// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/rush-ecs/rush/configuration"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/ledger"
	"github.com/rush-ecs/rush/rpc/certificate"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"
)

// setup command handler
//
// commands that run to create certificate files, these cannot access
// the database or the configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := certificate.MakeSelfSigned("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "save-accounts", "save", "load-accounts", "load":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] [--define=NAME=VALUE...] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version string\n\n")

		fmt.Printf("  gen-rpc-cert [DIR]         (rpc)    - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]         - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  save-accounts FILE         (save)   - dump all accounts to a compressed file\n")
		fmt.Printf("\n")

		fmt.Printf("  load-accounts FILE         (load)   - restore all accounts from a file\n")
		fmt.Printf("                                        only runs if database is deleted first\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *configuration.Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the ledger is open so these commands can read or restore accounts
func processDataCommand(log *logger.L, arguments []string, bank *ledger.Bank) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "save-accounts", "save":
		filename := getFilename(arguments)
		fh, err := os.Create(filename)
		if nil != err {
			exitwithstatus.Message("error: creating: %q error: %s", filename, err)
		}
		n, err := bank.SaveSnapshot(fh)
		fh.Close()
		if nil != err {
			os.Remove(filename)
			exitwithstatus.Message("failed writing: %q  error: %s", filename, err)
		}
		log.Infof("saved: %d accounts to: %q", n, filename)
		fmt.Printf("saved: %d accounts\n", n)

	case "load-accounts", "load":
		filename := getFilename(arguments)
		fh, err := os.Open(filename)
		if nil != err {
			exitwithstatus.Message("error: opening: %q error: %s", filename, err)
		}
		n, err := bank.LoadSnapshot(fh)
		fh.Close()
		if nil != err {
			exitwithstatus.Message("failed reading: %q  error: %s", filename, err)
		}
		fmt.Printf("loaded: %d accounts\n", n)

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

func getFilename(arguments []string) string {
	if len(arguments) < 1 {
		exitwithstatus.Message("missing file name argument")
	}
	filename := strings.TrimSpace(arguments[0])
	if "" == filename {
		exitwithstatus.Message("missing file name")
	}
	return filename
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}

// NAME=VALUE pairs made visible to the configuration file
func getDefinitions(definitions []string) (map[string]string, error) {
	variables := make(map[string]string, len(definitions))
	for _, d := range definitions {
		s := strings.SplitN(d, "=", 2)
		if 2 != len(s) || "" == strings.TrimSpace(s[0]) {
			return nil, fault.MissingArgument("NAME=VALUE")
		}
		variables[strings.TrimSpace(s[0])] = s[1]
	}
	return variables, nil
}
