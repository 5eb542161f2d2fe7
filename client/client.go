// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package client is the counterpart of tecnicofs-client-api.c: a
// small synchronous API a program links against to talk to a running
// tecnicofsd over the datagram transport.
package client

import (
	"github.com/pkg/errors"

	"github.com/rfsilva/tecnicofs/engine"
	"github.com/rfsilva/tecnicofs/inode"
	"github.com/rfsilva/tecnicofs/proto"
	"github.com/rfsilva/tecnicofs/transport"
)

// ErrOperationFailed is returned when the server reports a plain -1
// that doesn't map to one of the extended error codes, for example a
// Print whose server-side os.Create failed.
var ErrOperationFailed = errors.New("client: operation failed")

// Client is a single mounted session: one bound client socket talking
// to one server socket. It is not safe for concurrent use by multiple
// goroutines, matching the original library's lack of internal
// locking. Callers needing concurrency should open multiple Clients.
type Client struct {
	conn *transport.Conn
}

// Dial mounts a session against the server listening at serverSocket.
// clientDir controls where the ephemeral client socket is created;
// pass "" for os.TempDir().
func Dial(clientDir, serverSocket string) (*Client, error) {
	conn, err := transport.Dial(clientDir, serverSocket)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Close unmounts the session.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Create makes a new file or directory at path.
func (c *Client) Create(path string, kind inode.Kind) error {
	nt := proto.FileType
	if kind == inode.Directory {
		nt = proto.DirectoryType
	}
	return c.roundTrip("e c "+path+" "+string(nt), nil)
}

// Delete removes the entry named by path.
func (c *Client) Delete(path string) error {
	return c.roundTrip("e d "+path, nil)
}

// Lookup resolves path to its inumber.
func (c *Client) Lookup(path string) (int, error) {
	var inum int
	err := c.roundTrip("e l "+path, &inum)
	return inum, err
}

// Move renames/relocates src to dst, atomically with respect to
// other clients.
func (c *Client) Move(src, dst string) error {
	return c.roundTrip("e m "+src+" "+dst, nil)
}

// Print asks the server to render its tree to outPath, a path on the
// server's own filesystem.
func (c *Client) Print(outPath string) error {
	return c.roundTrip("e p "+outPath, nil)
}

// roundTrip sends line, waits for the reply, and translates it into
// (out, error). out receives the raw reply code when non-nil (used by
// Lookup, whose success reply is a non-negative inumber).
func (c *Client) roundTrip(line string, out *int) error {
	if err := c.conn.Send(line); err != nil {
		return err
	}
	reply, err := c.conn.RecvReply()
	if err != nil {
		return err
	}
	if reply >= 0 {
		if out != nil {
			*out = int(reply)
		}
		return nil
	}
	return extendedError(reply)
}

func extendedError(code int32) error {
	switch code {
	case proto.ExtInvalidParent:
		return engine.ErrInvalidParent
	case proto.ExtNotDir:
		return engine.ErrNotDir
	case proto.ExtAlreadyExists:
		return engine.ErrAlreadyExists
	case proto.ExtNotFound:
		return engine.ErrNotFound
	case proto.ExtNotEmpty:
		return engine.ErrNotEmpty
	case proto.ExtAllocFail:
		return engine.ErrAllocFail
	case proto.ExtCycle:
		return engine.ErrCycle
	case proto.Fail:
		return ErrOperationFailed
	default:
		return ErrOperationFailed
	}
}
