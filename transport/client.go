// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Conn is the client side of the datagram transport. Each client
// binds its own ephemeral socket path, exactly like the original
// client library, which builds its address from its own pid so
// replies can be routed back without the server ever connect(2)-ing.
type Conn struct {
	conn *net.UnixConn
	path string
}

// Dial binds an ephemeral client socket under dir (os.TempDir() if
// dir is empty) and associates it with the server socket at
// serverPath. The datagram socket stays unconnected on the wire, but
// net.DialUnix records serverPath as the default peer so Send/Recv
// can use plain Write/Read.
func Dial(dir, serverPath string) (*Conn, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	clientPath := filepath.Join(dir, fmt.Sprintf("tecnicofs-client-%d.sock", os.Getpid()))
	if err := unix.Unlink(clientPath); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "transport: unlink stale client socket %s", clientPath)
	}

	laddr := &net.UnixAddr{Name: clientPath, Net: "unixgram"}
	raddr := &net.UnixAddr{Name: serverPath, Net: "unixgram"}
	conn, err := net.DialUnix("unixgram", laddr, raddr)
	if err != nil {
		return nil, errors.Wrapf(err, "transport: dial %s", serverPath)
	}
	tuneSockBuf(conn)

	return &Conn{conn: conn, path: clientPath}, nil
}

// Send writes a single command line as one datagram.
func (c *Conn) Send(line string) error {
	_, err := c.conn.Write([]byte(line))
	return errors.Wrap(err, "transport: send")
}

// RecvReply blocks for the server's 32-bit big-endian integer reply.
func (c *Conn) RecvReply() (int32, error) {
	var b [4]byte
	if _, err := io.ReadFull(c.conn, b[:]); err != nil {
		return 0, errors.Wrap(err, "transport: recv reply")
	}
	return int32(binary.BigEndian.Uint32(b[:])), nil
}

// Close tears down the connection and removes the client's own
// socket file.
func (c *Conn) Close() error {
	err := c.conn.Close()
	if rmErr := unix.Unlink(c.path); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
		err = rmErr
	}
	return err
}
