// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	sockPath := filepath.Join(t.TempDir(), "server.sock")

	l, err := Listen(sockPath)
	require.NoError(t, err)
	defer l.Close()

	clientDir := t.TempDir()
	c, err := Dial(clientDir, sockPath)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Send("c /a d"))

	line, from, err := l.ReadCommand()
	require.NoError(t, err)
	require.Equal(t, "c /a d", line)

	require.NoError(t, l.WriteReply(from, 7))

	reply, err := c.RecvReply()
	require.NoError(t, err)
	require.Equal(t, int32(7), reply)
}

func TestListenUnlinksStaleSocket(t *testing.T) {
	sockPath := filepath.Join(t.TempDir(), "server.sock")

	first, err := Listen(sockPath)
	require.NoError(t, err)
	// Simulate a crashed server: the socket file is left behind but
	// nothing is listening on it.
	_ = first.conn.Close()

	second, err := Listen(sockPath)
	require.NoError(t, err)
	defer second.Close()
}
