// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/tls"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/rush-ecs/rush/counter"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/journal"
	"github.com/rush-ecs/rush/ledger"
	"github.com/rush-ecs/rush/rpc/certificate"
	"github.com/rush-ecs/rush/rpc/listeners"
	"github.com/rush-ecs/rush/rpc/pubsub"
	"github.com/rush-ecs/rush/rpc/server"
)

const (
	tlsName    = "client_rpc"
	pubsubName = "pubsub"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	rpc    listeners.Listener
	pubsub listeners.Listener
	hub    *pubsub.Hub

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// number of open RPC connections
var connectionCountRPC counter.Counter

// Initialise - start the RPC and subscription listeners in front of a
// bank, jnl may be nil
func Initialise(rpcConfiguration *listeners.RPCConfiguration, pubsubConfiguration *listeners.HTTPConfiguration, bank *ledger.Bank, jnl *journal.Journal, version string) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	tlsConfig, err := loadCertificate(log, tlsName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		server.Create(log, bank, jnl, version, &connectionCountRPC),
		tlsConfig,
	)
	if nil != err {
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		return err
	}
	globalData.rpc = rpcListener

	hub := pubsub.New(logger.New(pubsubName))
	pubsubTLS, err := loadCertificate(log, pubsubName, pubsubConfiguration.Certificate, pubsubConfiguration.PrivateKey)
	if nil != err {
		_ = rpcListener.Close()
		return err
	}
	pubsubListener, err := listeners.NewHTTP(pubsubConfiguration, log, pubsubTLS, hub.Handler())
	if nil != err {
		_ = rpcListener.Close()
		return err
	}
	if nil != pubsubListener {
		err = pubsubListener.Serve()
		if nil != err {
			_ = rpcListener.Close()
			return err
		}
		bank.AddObserver(hub)
	}
	globalData.pubsub = pubsubListener
	globalData.hub = hub

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all listeners
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	_ = globalData.rpc.Close()
	if nil != globalData.pubsub {
		_ = globalData.pubsub.Close()
	}
	globalData.hub.Close()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// no certificate and no key means plain TCP
func loadCertificate(log *logger.L, name string, certificateFileName string, keyFileName string) (*tls.Config, error) {
	if "" == certificateFileName && "" == keyFileName {
		log.Warnf("%s: no certificate, serving without TLS", name)
		return nil, nil
	}
	tlsConfig, fingerprint, err := certificate.Load(log, name, certificateFileName, keyFileName)
	if nil != err {
		return nil, err
	}
	log.Infof("%s: SHA3-256 fingerprint: %x", name, fingerprint)
	return tlsConfig, nil
}
