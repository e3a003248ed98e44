// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - network front ends of the node: a JSON RPC
// listener and an HTTP listener for websocket subscriptions
//
// both listen on plain TCP when no TLS configuration is supplied
package listeners

import (
	"crypto/tls"
	"net"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/rush-ecs/rush/fault"
)

const (
	minConnectionCount = 1
)

// Listener - a started listener
type Listener interface {
	Serve() error
	Addresses() []net.Addr
	Close() error
}

// open every listen address, on any failure the ones already open are
// closed again
func listenAll(addresses []string, tlsConfig *tls.Config, log *logger.L) ([]net.Listener, error) {
	ipType, err := parseListenAddress(addresses, log)
	if nil != err {
		return nil, err
	}

	listeners := make([]net.Listener, 0, len(addresses))
	for i, listen := range addresses {
		var l net.Listener
		if nil == tlsConfig {
			l, err = net.Listen(ipType[i], listen)
		} else {
			l, err = tls.Listen(ipType[i], listen, tlsConfig)
		}
		if nil != err {
			log.Errorf("listen: %q  error: %s", listen, err)
			for _, open := range listeners {
				_ = open.Close()
			}
			return nil, err
		}
		listeners = append(listeners, l)
	}
	return listeners, nil
}

// validate listen addresses and determine the network of each
//
// "*:PORT" is rewritten in place to "[::]:PORT"
func parseListenAddress(addrs []string, log *logger.L) ([]string, error) {
	parsed := make([]string, len(addrs))
	for i, listen := range addrs {
		if "" == listen {
			log.Errorf("empty listen address")
			return nil, fault.ErrInvalidIPAddress
		}
		host, port, err := net.SplitHostPort(listen)
		if nil != err {
			log.Errorf("listen: %q  error: %s", listen, err)
			return nil, fault.ErrInvalidIPAddress
		}

		switch {
		case "*" == host:
			addrs[i] = net.JoinHostPort("::", port)
			host = "::"
			parsed[i] = "tcp"
		case strings.Contains(host, ":"):
			parsed[i] = "tcp6"
		default:
			parsed[i] = "tcp4"
		}

		if ip := net.ParseIP(host); nil == ip {
			err := fault.ErrInvalidIPAddress
			log.Errorf("listen: %q  error: %s", listen, err)
			return nil, err
		}
	}

	return parsed, nil
}

func addressesOf(listeners []net.Listener) []net.Addr {
	a := make([]net.Addr, len(listeners))
	for i, l := range listeners {
		a[i] = l.Addr()
	}
	return a
}
