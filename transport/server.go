// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transport carries one ASCII command line per unconnected
// datagram and one 32-bit integer reply per datagram, over a Unix
// domain SOCK_DGRAM socket: the same unconnected, path-addressed
// local IPC as the original's raw socket(2)/bind(2) server.
package transport

import (
	"encoding/binary"
	"net"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// MaxDatagram bounds a single command line's wire size.
const MaxDatagram = 4096

// sockBufSize is the SO_RCVBUF/SO_SNDBUF size requested on every
// datagram socket this package opens. A busy server fielding many
// concurrent clients can overrun the kernel's default datagram queue
// before a worker gets around to draining it; widening the buffer
// makes that loss rarer without changing the protocol.
const sockBufSize = 1 << 20

// Listener is the server side of the datagram transport: one
// SOCK_DGRAM socket that many clients send to.
type Listener struct {
	conn *net.UnixConn
	path string
}

// Listen binds a server socket at path, unlinking any stale entry
// first: the original does this with a raw unlink(2) before bind(2)
// so a crashed previous server doesn't leave the address busy.
func Listen(path string) (*Listener, error) {
	if err := unix.Unlink(path); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "transport: unlink stale socket %s", path)
	}

	addr := &net.UnixAddr{Name: path, Net: "unixgram"}
	conn, err := net.ListenUnixgram("unixgram", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "transport: listen on %s", path)
	}
	tuneSockBuf(conn)

	return &Listener{conn: conn, path: path}, nil
}

// tuneSockBuf widens a datagram socket's receive/send buffers via a
// raw setsockopt(2), reaching past the standard library for a POSIX
// call it doesn't expose directly. Errors are non-fatal: the socket
// remains usable at whatever buffer size the kernel already gave it.
func tuneSockBuf(conn *net.UnixConn) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return
	}
	_ = raw.Control(func(fd uintptr) {
		_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, sockBufSize)
		_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_SNDBUF, sockBufSize)
	})
}

// ReadCommand blocks for the next datagram and returns it decoded as
// a command line, along with the sender's address so the reply can
// be routed back to them.
func (l *Listener) ReadCommand() (line string, from *net.UnixAddr, err error) {
	buf := make([]byte, MaxDatagram)
	n, addr, err := l.conn.ReadFromUnix(buf)
	if err != nil {
		return "", nil, err
	}
	return string(buf[:n]), addr, nil
}

// WriteReply sends a single 32-bit big-endian integer reply to the
// given client address.
func (l *Listener) WriteReply(to *net.UnixAddr, code int32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(code))
	_, err := l.conn.WriteToUnix(b[:], to)
	return err
}

// Close shuts down the listener and removes its socket file.
func (l *Listener) Close() error {
	err := l.conn.Close()
	if rmErr := unix.Unlink(l.path); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
		err = rmErr
	}
	return err
}
