// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package client - JSON RPC client of the node "Node" service
//
// endpoints are "tcp://HOST:PORT" or "tls://HOST:PORT"; errors raised
// by the node come back as the matching fault sentinel, connection
// problems as fault.ErrTransportFailed
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"time"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/journal"
	"github.com/rush-ecs/rush/rpc/certificate"
	"github.com/rush-ecs/rush/rpc/node"
	"github.com/rush-ecs/rush/transaction"
)

const (
	dialTimeout = 10 * time.Second
	service     = "Node."
)

// Client - connection to a node
type Client struct {
	endpoint string
	client   *rpc.Client
}

// Dial - connect to an endpoint
//
// for tls:// a non-empty fingerprint pins the SHA3-256 of the node
// certificate; without one the self signed certificate is accepted
// as is
func Dial(ctx context.Context, endpoint string, fingerprint []byte) (*Client, error) {
	network, address, err := parseEndpoint(endpoint)
	if nil != err {
		return nil, err
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	var conn net.Conn
	switch network {
	case "tls":
		tlsDialer := &tls.Dialer{
			NetDialer: dialer,
			Config:    tlsConfiguration(fingerprint),
		}
		conn, err = tlsDialer.DialContext(ctx, "tcp", address)
	default:
		conn, err = dialer.DialContext(ctx, "tcp", address)
	}
	if nil != err {
		return nil, fmt.Errorf("%w: %s", fault.ErrTransportFailed, err)
	}

	return &Client{
		endpoint: endpoint,
		client:   jsonrpc.NewClient(conn),
	}, nil
}

// Endpoint - the address this client was dialled with
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Close - drop the connection
func (c *Client) Close() error {
	return c.client.Close()
}

// GetLatestBlockhash - blockhash for a new transaction
func (c *Client) GetLatestBlockhash(ctx context.Context) (transaction.Hash, error) {
	var reply node.BlockhashReply
	err := c.call(ctx, "GetLatestBlockhash", &node.BlockhashArguments{}, &reply)
	if nil != err {
		return transaction.Hash{}, err
	}
	return reply.Blockhash, nil
}

// SendTransaction - submit a signed transaction and wait for it to be
// committed
func (c *Client) SendTransaction(ctx context.Context, tx *transaction.Transaction) (account.Signature, error) {
	arguments := node.SendArguments{
		Transaction: []byte(tx.Pack()),
	}
	var reply node.SendReply
	err := c.call(ctx, "SendTransaction", &arguments, &reply)
	if nil != err {
		return tx.ID(), err
	}
	return reply.Signature, nil
}

// GetAccount - account at an address
func (c *Client) GetAccount(ctx context.Context, address account.Address) (*account.Account, error) {
	var reply node.AccountReply
	err := c.call(ctx, "GetAccount", &node.AccountArguments{Address: address}, &reply)
	if nil != err {
		return nil, err
	}
	return &account.Account{
		Lamports:   reply.Lamports,
		Owner:      reply.Owner,
		Executable: reply.Executable,
		Data:       reply.Data,
	}, nil
}

// GetSignatureStatus - outcome of a transaction
func (c *Client) GetSignatureStatus(ctx context.Context, signature account.Signature) (transaction.Status, error) {
	var reply node.StatusReply
	err := c.call(ctx, "GetSignatureStatus", &node.StatusArguments{Signature: signature}, &reply)
	if nil != err {
		return transaction.Status{}, err
	}
	return reply.Status, nil
}

// GetTransaction - journal entry of a transaction
func (c *Client) GetTransaction(ctx context.Context, signature account.Signature) (*journal.Entry, error) {
	var reply node.TransactionReply
	err := c.call(ctx, "GetTransaction", &node.TransactionArguments{Signature: signature}, &reply)
	if nil != err {
		return nil, err
	}
	return reply.Entry, nil
}

// RecentTransactions - newest journal entries
func (c *Client) RecentTransactions(ctx context.Context, count int) ([]*journal.Entry, error) {
	var reply node.RecentReply
	err := c.call(ctx, "RecentTransactions", &node.RecentArguments{Count: count}, &reply)
	if nil != err {
		return nil, err
	}
	return reply.Entries, nil
}

// RequestAirdrop - lamports from the development faucet
func (c *Client) RequestAirdrop(ctx context.Context, address account.Address, lamports uint64) error {
	arguments := node.AirdropArguments{
		Address:  address,
		Lamports: lamports,
	}
	var reply node.AirdropReply
	return c.call(ctx, "RequestAirdrop", &arguments, &reply)
}

// GetSlot - current slot of the node
func (c *Client) GetSlot(ctx context.Context) (uint64, error) {
	var reply node.SlotReply
	err := c.call(ctx, "GetSlot", &node.SlotArguments{}, &reply)
	if nil != err {
		return 0, err
	}
	return reply.Slot, nil
}

// Info - node summary
func (c *Client) Info(ctx context.Context) (*node.InfoReply, error) {
	var reply node.InfoReply
	err := c.call(ctx, "Info", &node.InfoArguments{}, &reply)
	if nil != err {
		return nil, err
	}
	return &reply, nil
}

// run one call, giving up when the context ends
//
// after an error reply must not be read: a call abandoned on
// cancellation may still be decoding into it
func (c *Client) call(ctx context.Context, method string, arguments interface{}, reply interface{}) error {
	call := c.client.Go(service+method, arguments, reply, make(chan *rpc.Call, 1))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-call.Done:
	}
	return mapError(call.Error)
}

func mapError(err error) error {
	if nil == err {
		return nil
	}
	var se rpc.ServerError
	if errors.As(err, &se) {
		return fault.Find(string(se))
	}
	return fmt.Errorf("%w: %s", fault.ErrTransportFailed, err)
}

// split "scheme://host:port"
func parseEndpoint(endpoint string) (string, string, error) {
	s := strings.SplitN(endpoint, "://", 2)
	if 2 != len(s) {
		return "", "", fault.ErrInvalidEndpoint
	}
	switch s[0] {
	case "tcp", "tls":
	default:
		return "", "", fault.ErrInvalidEndpoint
	}
	if _, _, err := net.SplitHostPort(s[1]); nil != err {
		return "", "", fault.ErrInvalidEndpoint
	}
	return s[0], s[1], nil
}

func tlsConfiguration(fingerprint []byte) *tls.Config {
	config := &tls.Config{
		InsecureSkipVerify: true,
	}
	if 0 == len(fingerprint) {
		return config
	}
	config.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		if 0 == len(rawCerts) {
			return fault.ErrUnauthenticated
		}
		f := certificate.Fingerprint(rawCerts[0])
		if !bytes.Equal(f[:], fingerprint) {
			return fault.ErrUnauthenticated
		}
		return nil
	}
	return config
}
