// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package certificate - TLS key pairs for the node listeners
package certificate

import (
	"crypto/tls"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"

	"github.com/rush-ecs/rush/fault"
)

// self signed certificates last this long
const validity = 10 * 365 * 24 * time.Hour

// Get - TLS configuration from PEM text, with the certificate fingerprint
func Get(log *logger.L, name, certificate, key string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if nil != err {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
	}

	fin = Fingerprint(keyPair.Certificate[0])

	return tlsConfiguration, fin, nil
}

// Load - as Get but from a pair of PEM files
func Load(log *logger.L, name, certificateFileName, keyFileName string) (*tls.Config, [32]byte, error) {
	certificate, err := os.ReadFile(certificateFileName)
	if nil != err {
		log.Errorf("%s certificate: %q  error: %s", name, certificateFileName, err)
		return nil, [32]byte{}, err
	}
	key, err := os.ReadFile(keyFileName)
	if nil != err {
		log.Errorf("%s private key: %q  error: %s", name, keyFileName, err)
		return nil, [32]byte{}, err
	}
	return Get(log, name, string(certificate), string(key))
}

// MakeSelfSigned - create a self signed certificate and key file pair,
// existing files are never overwritten
func MakeSelfSigned(name string, certificateFileName string, keyFileName string, override bool, extraHosts []string) error {
	if exists(certificateFileName) {
		return fault.ErrCertificateFileAlreadyExists
	}
	if exists(keyFileName) {
		return fault.ErrKeyFileAlreadyExists
	}

	org := "rushd self signed cert for: " + name
	validUntil := time.Now().Add(validity)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if nil != err {
		return err
	}

	if err = os.WriteFile(certificateFileName, cert, 0o666); nil != err {
		return err
	}

	if err = os.WriteFile(keyFileName, key, 0o600); nil != err {
		_ = os.Remove(certificateFileName)
		return err
	}

	return nil
}

// Fingerprint - SHA3-256 of a DER certificate
//
// openssl x509 -outform DER -in rushd-local-rpc.crt | sha3sum -a 256
func Fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}

func exists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}
