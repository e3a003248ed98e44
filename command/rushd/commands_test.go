// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rush-ecs/rush/fault"
)

func TestGetDefinitions(t *testing.T) {
	v, err := getDefinitions([]string{"interval=1s", " name = a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"interval": "1s", "name": " a=b"}, v)

	v, err = getDefinitions(nil)
	require.NoError(t, err)
	assert.Empty(t, v)

	for _, bad := range []string{"interval", "=1s", " =x"} {
		_, err := getDefinitions([]string{bad})
		assert.ErrorIs(t, err, fault.ErrMissingArgument, bad)
	}
}

func TestGetFilenameWithDirectory(t *testing.T) {
	assert.Equal(t, "rpc.crt", getFilenameWithDirectory(nil, rpcCertificateKeyFilename))
	assert.Equal(t, filepath.Join("keys", "rpc.key"), getFilenameWithDirectory([]string{"keys", "127.0.0.1"}, rpcPrivateKeyFilename))
}
