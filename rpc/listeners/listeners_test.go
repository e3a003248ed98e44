// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"fmt"
	"io"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rush-ecs/rush/counter"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/rpc/listeners"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "listeners-test")
	if nil != err {
		os.Exit(1)
	}
	_ = logger.Initialise(logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "trace",
		},
	})
	result := m.Run()
	logger.Finalise()
	os.RemoveAll(dir)
	os.Exit(result)
}

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func TestRPCListenerServe(t *testing.T) {
	count := counter.Counter(0)

	s := rpc.NewServer()
	require.NoError(t, s.Register(Add{}))

	l, err := listeners.NewRPC(&listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:0"},
	}, logger.New("test"), &count, s, nil)
	require.NoError(t, err, "wrong NewRPC")
	require.NoError(t, l.Serve(), "wrong Serve")
	defer l.Close()

	c, err := jsonrpc.Dial("tcp", l.Addresses()[0].String())
	require.NoError(t, err)
	defer c.Close()

	arg := AddArg{A: 2, B: 5}
	var reply int
	err = c.Call("Add.Add", &arg, &reply)
	assert.NoError(t, err, "wrong client Call")
	assert.Equal(t, arg.A+arg.B, reply, "wrong result")
	assert.Equal(t, uint64(1), count.Uint64(), "wrong connection count")
}

func TestRPCListenerInvalid(t *testing.T) {
	count := counter.Counter(0)
	s := rpc.NewServer()
	log := logger.New("test")

	_, err := listeners.NewRPC(&listeners.RPCConfiguration{
		MaximumConnections: 0,
		Listen:             []string{"127.0.0.1:0"},
	}, log, &count, s, nil)
	assert.Equal(t, fault.ErrMissingParameters, err, "connection limit")

	_, err = listeners.NewRPC(&listeners.RPCConfiguration{
		MaximumConnections: 1,
	}, log, &count, s, nil)
	assert.Equal(t, fault.ErrMissingParameters, err, "empty listen")

	for _, listen := range []string{"localhost:80", "1.2.3:80", "127.0.0.1"} {
		_, err = listeners.NewRPC(&listeners.RPCConfiguration{
			MaximumConnections: 1,
			Listen:             []string{listen},
		}, log, &count, s, nil)
		assert.Equal(t, fault.ErrInvalidIPAddress, err, listen)
	}
}

func TestHTTPListener(t *testing.T) {
	log := logger.New("test")

	l, err := listeners.NewHTTP(&listeners.HTTPConfiguration{}, log, nil, http.NotFoundHandler())
	assert.NoError(t, err)
	assert.Nil(t, l, "empty listen disables")

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "hello")
	})
	l, err = listeners.NewHTTP(&listeners.HTTPConfiguration{
		Listen: []string{"127.0.0.1:0"},
	}, log, nil, handler)
	require.NoError(t, err)
	require.NoError(t, l.Serve())
	defer l.Close()

	response, err := http.Get(fmt.Sprintf("http://%s/", l.Addresses()[0]))
	require.NoError(t, err)
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}
