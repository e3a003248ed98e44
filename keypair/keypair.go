// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keypair - ed25519 signing keys and their files
//
// a keypair file is a JSON array of the 64 private key bytes: the
// 32 byte seed followed by the 32 byte public key
package keypair

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ed25519"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/fault"
)

// KeyPair - structure to hold public and private keys
type KeyPair struct {
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
}

// New - create a new keypair from secure random data
func New() (*KeyPair, error) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &KeyPair{PublicKey: public, PrivateKey: private}, nil
}

// FromSeed - derive a keypair from a 32 byte seed
func FromSeed(seed []byte) (*KeyPair, error) {
	if ed25519.SeedSize != len(seed) {
		return nil, fault.ErrInvalidKeypair
	}
	private := ed25519.NewKeyFromSeed(seed)
	return &KeyPair{
		PublicKey:  private.Public().(ed25519.PublicKey),
		PrivateKey: private,
	}, nil
}

// FromBytes - keypair from the 64 byte private key form, the public
// half must match the seed
func FromBytes(b []byte) (*KeyPair, error) {
	if ed25519.PrivateKeySize != len(b) {
		return nil, fault.ErrInvalidKeypair
	}
	kp, err := FromSeed(b[:ed25519.SeedSize])
	if nil != err {
		return nil, err
	}
	if !bytes.Equal(kp.PublicKey, b[ed25519.SeedSize:]) {
		return nil, fault.ErrInvalidKeypair
	}
	return kp, nil
}

// Address - the ledger address of the public key
func (kp *KeyPair) Address() account.Address {
	a := account.Address{}
	copy(a[:], kp.PublicKey)
	return a
}

// Sign - ed25519 signature of a message
func (kp *KeyPair) Sign(message []byte) account.Signature {
	signature := account.Signature{}
	copy(signature[:], ed25519.Sign(kp.PrivateKey, message))
	return signature
}

// MarshalJSON - array of 64 numbers
func (kp *KeyPair) MarshalJSON() ([]byte, error) {
	numbers := make([]int, len(kp.PrivateKey))
	for i, b := range kp.PrivateKey {
		numbers[i] = int(b)
	}
	return json.Marshal(numbers)
}

// UnmarshalJSON - array of 64 numbers
func (kp *KeyPair) UnmarshalJSON(data []byte) error {
	numbers := []int{}
	err := json.Unmarshal(data, &numbers)
	if nil != err {
		return fault.ErrInvalidKeypair
	}
	b := make([]byte, len(numbers))
	for i, n := range numbers {
		if n < 0 || n > 255 {
			return fault.ErrInvalidKeypair
		}
		b[i] = byte(n)
	}
	decoded, err := FromBytes(b)
	if nil != err {
		return err
	}
	*kp = *decoded
	return nil
}

// ReadFile - load a keypair file, a leading "~/" is the home directory
func ReadFile(path string) (*KeyPair, error) {
	expanded, err := expandHome(path)
	if nil != err {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if nil != err {
		if os.IsNotExist(err) {
			return nil, fault.KeypairNotFound(path)
		}
		return nil, err
	}
	kp := &KeyPair{}
	err = kp.UnmarshalJSON(data)
	if nil != err {
		return nil, err
	}
	return kp, nil
}

// WriteFile - save a keypair file readable only by the owner, an
// existing file is not overwritten
func WriteFile(path string, kp *KeyPair) error {
	expanded, err := expandHome(path)
	if nil != err {
		return err
	}
	data, err := kp.MarshalJSON()
	if nil != err {
		return err
	}
	err = os.MkdirAll(filepath.Dir(expanded), 0700)
	if nil != err {
		return err
	}
	f, err := os.OpenFile(expanded, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if nil != err {
		return err
	}
	_, err = f.Write(data)
	if nil != err {
		f.Close()
		os.Remove(expanded)
		return err
	}
	return f.Close()
}

func expandHome(path string) (string, error) {
	if len(path) < 2 || "~/" != path[:2] {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if nil != err {
		return "", err
	}
	return filepath.Join(home, path[2:]), nil
}
