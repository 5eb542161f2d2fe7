// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rfsilva/tecnicofs/engine"
	"github.com/rfsilva/tecnicofs/transport"
	"github.com/stretchr/testify/require"
)

func TestPoolServesCreateLookupDelete(t *testing.T) {
	sockPath := filepath.Join(t.TempDir(), "server.sock")
	l, err := transport.Listen(sockPath)
	require.NoError(t, err)

	e := engine.New()
	pool := New(e, l, 4)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pool.Run(ctx) }()

	c, err := transport.Dial(t.TempDir(), sockPath)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Send("c /a d"))
	reply, err := c.RecvReply()
	require.NoError(t, err)
	require.Equal(t, int32(0), reply)

	require.NoError(t, c.Send("l /a"))
	reply, err = c.RecvReply()
	require.NoError(t, err)
	require.True(t, reply > 0)

	require.NoError(t, c.Send("d /a"))
	reply, err = c.RecvReply()
	require.NoError(t, err)
	require.Equal(t, int32(0), reply)

	require.NoError(t, c.Send("e l /a"))
	reply, err = c.RecvReply()
	require.NoError(t, err)
	require.Equal(t, int32(-5), reply) // ExtNotFound

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("pool did not shut down after cancel")
	}
}
