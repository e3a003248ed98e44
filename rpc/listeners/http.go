// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
)

const (
	httpLogName = "http"

	// long lived websocket connections must not be cut by a write
	// timeout, only reading the request header is bounded
	readHeaderTimeout = 10 * time.Second
)

// HTTPConfiguration - configuration file data for HTTP setup
type HTTPConfiguration struct {
	Listen      []string `gluamapper:"listen" json:"listen"`
	Certificate string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey  string   `gluamapper:"private_key" json:"private_key"`
}

type httpListener struct {
	sync.Mutex
	log             *logger.L
	listenIPAndPort []string
	tlsConfig       *tls.Config
	handler         http.Handler
	servers         []*http.Server
	listeners       []net.Listener
}

// NewHTTP - prepare an HTTP listener for a handler, an empty listen
// list disables it and gives a nil Listener
func NewHTTP(
	configuration *HTTPConfiguration,
	log *logger.L,
	tlsConfig *tls.Config,
	handler http.Handler,
) (Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpLogName)
		return nil, nil
	}

	listen := append([]string{}, configuration.Listen...)
	_, err := parseListenAddress(listen, log)
	if nil != err {
		return nil, err
	}

	if nil != tlsConfig {
		tlsConfig = tlsConfig.Clone()
		tlsConfig.NextProtos = []string{"http/1.1"}
	}

	h := httpListener{
		log:             log,
		listenIPAndPort: configuration.Listen,
		tlsConfig:       tlsConfig,
		handler:         handler,
	}
	return &h, nil
}

// Serve - start serving, returns once every address is listening
func (h *httpListener) Serve() error {
	h.Lock()
	defer h.Unlock()

	listeners, err := listenAll(h.listenIPAndPort, h.tlsConfig, h.log)
	if nil != err {
		return err
	}
	h.listeners = listeners

	for _, l := range listeners {
		h.log.Infof("starting server: %s on: %s", httpLogName, l.Addr())
		s := &http.Server{
			Handler:           h.handler,
			ReadHeaderTimeout: readHeaderTimeout,
			MaxHeaderBytes:    1 << 20,
		}
		h.servers = append(h.servers, s)
		go func(l net.Listener) {
			err := s.Serve(l)
			if http.ErrServerClosed != err {
				h.log.Errorf("%s serve: %s", httpLogName, err)
			}
		}(l)
	}

	return nil
}

// Addresses - bound addresses
func (h *httpListener) Addresses() []net.Addr {
	h.Lock()
	defer h.Unlock()
	return addressesOf(h.listeners)
}

// Close - shut every server down
func (h *httpListener) Close() error {
	h.Lock()
	defer h.Unlock()
	for _, s := range h.servers {
		_ = s.Close()
	}
	h.servers = nil
	h.listeners = nil
	return nil
}
