// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/constants"
	"github.com/rush-ecs/rush/ledger"
	"github.com/rush-ecs/rush/rpc/listeners"
	"github.com/rush-ecs/rush/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "rush.leveldb"
	defaultJournal          = "journal.sqlite"

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultLogDirectory = "log"
	defaultLogFile      = "rushd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

var defaultLogLevels = LoglevelMap{
	logger.DefaultTag: "critical",
}

// DatabaseType - leveldb location
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// ProgramsType - base58 ids the builtin programs are loaded at
type ProgramsType struct {
	Store string `gluamapper:"store" json:"store"`
	Proxy string `gluamapper:"proxy" json:"proxy"`
}

// FeesType - transaction fees
type FeesType struct {
	LamportsPerSignature uint64 `gluamapper:"lamports_per_signature" json:"lamports_per_signature"`
}

// FaucetType - development faucet
type FaucetType struct {
	Lamports uint64 `gluamapper:"lamports" json:"lamports"`
}

// Configuration - everything rushd reads from its configuration file
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType `gluamapper:"database" json:"database"`
	Journal       string       `gluamapper:"journal" json:"journal"`
	Programs      ProgramsType `gluamapper:"programs" json:"programs"`
	Rent          account.Rent `gluamapper:"rent" json:"rent"`
	Fees          FeesType     `gluamapper:"fees" json:"fees"`
	SlotInterval  string       `gluamapper:"slot_interval" json:"slot_interval"`
	Faucet        FaucetType   `gluamapper:"faucet" json:"faucet"`

	RPC    listeners.RPCConfiguration  `gluamapper:"rpc" json:"rpc"`
	Pubsub listeners.HTTPConfiguration `gluamapper:"pubsub" json:"pubsub"`

	Logging logger.Configuration `gluamapper:"logging" json:"logging"`

	// decoded
	storeProgram account.Address
	proxyProgram account.Address
	slotInterval time.Duration
}

// Read - read decode and verify the configuration
func Read(configurationFileName string, variables map[string]string) (*Configuration, error) {
	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},
		Journal: defaultJournal,

		Programs: ProgramsType{
			Store: constants.StoreProgram.String(),
			Proxy: constants.ProxyProgram.String(),
		},
		Rent: account.DefaultRent,
		Fees: FeesType{
			LamportsPerSignature: ledger.FeePerSignature,
		},
		SlotInterval: constants.SlotInterval.String(),
		Faucet: FaucetType{
			Lamports: ledger.DefaultFaucetLimit,
		},

		RPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options, variables); nil != err {
		return nil, err
	}

	// decode the values that are not plain strings
	options.storeProgram, err = account.AddressFromBase58(options.Programs.Store)
	if nil != err {
		return nil, fmt.Errorf("programs.store: %q  error: %w", options.Programs.Store, err)
	}
	if "" != options.Programs.Proxy {
		options.proxyProgram, err = account.AddressFromBase58(options.Programs.Proxy)
		if nil != err {
			return nil, fmt.Errorf("programs.proxy: %q  error: %w", options.Programs.Proxy, err)
		}
		if options.proxyProgram == options.storeProgram {
			return nil, fmt.Errorf("programs: store and proxy share id: %s", options.storeProgram)
		}
	}
	options.slotInterval, err = time.ParseDuration(options.SlotInterval)
	if nil != err {
		return nil, fmt.Errorf("slot_interval: %q  error: %w", options.SlotInterval, err)
	}
	if options.slotInterval < 10*time.Millisecond {
		return nil, fmt.Errorf("slot_interval: %s is too short", options.slotInterval)
	}
	if 0 == options.Rent.LamportsPerByteYear || 0 == options.Rent.ExemptionThreshold {
		return nil, fmt.Errorf("rent: %+v must not be zero", options.Rent)
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.RPC.Certificate,
		&options.RPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.Journal,
		&options.Pubsub.Certificate,
		&options.Pubsub.PrivateKey,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path separator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	return options, nil
}

// Ledger - bank parameters
func (c *Configuration) Ledger() ledger.Configuration {
	return ledger.Configuration{
		StoreProgram:    c.storeProgram,
		ProxyProgram:    c.proxyProgram,
		Rent:            c.Rent,
		FeePerSignature: c.Fees.LamportsPerSignature,
		FaucetLimit:     c.Faucet.Lamports,
	}
}

// Interval - time between slots
func (c *Configuration) Interval() time.Duration {
	return c.slotInterval
}
