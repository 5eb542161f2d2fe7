// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server wires the transport and proto packages to an
// engine.Engine: a fixed pool of worker goroutines pulls datagrams off
// one shared socket and applies them, mirroring fuse.Server's
// read-dispatch-reply loop (fuse/server.go's readRequest and
// handleRequest) in place of FUSE's kernel protocol.
package server

import (
	"context"
	"net"

	"github.com/rfsilva/tecnicofs/engine"
	"github.com/rfsilva/tecnicofs/proto"
	"github.com/rfsilva/tecnicofs/transport"
	"golang.org/x/sync/errgroup"
)

// Logger is satisfied by engine.Logger and by *logrus.Logger via the
// telemetry package's adapter.
type Logger interface {
	Printf(format string, v ...interface{})
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...interface{}) {}

// Pool runs a fixed number of worker goroutines against one listener.
// Unlike a FUSE server, there is no single kernel channel to
// serialize on: net.UnixConn is safe for concurrent readers, so every
// worker calls ReadCommand directly and the kernel's socket buffer
// does the fan-out.
type Pool struct {
	Engine   *engine.Engine
	Listener *transport.Listener
	Workers  int
	Log      Logger
}

// New returns a Pool ready to Run. workers must be positive; the
// original server's positional numthreads argument maps directly to
// it.
func New(e *engine.Engine, l *transport.Listener, workers int) *Pool {
	return &Pool{Engine: e, Listener: l, Workers: workers, Log: noopLogger{}}
}

// Run blocks, dispatching commands until ctx is canceled. A worker
// that fails to read a datagram logs the error and resumes. Canceling
// ctx closes the listener so blocked ReadCommand calls unblock and
// the worker goroutines exit.
func (p *Pool) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	done := make(chan struct{})
	g.Go(func() error {
		select {
		case <-ctx.Done():
			p.Listener.Close()
		case <-done:
		}
		return nil
	})

	for i := 0; i < p.Workers; i++ {
		g.Go(p.worker)
	}

	err := g.Wait()
	close(done)
	return err
}

func (p *Pool) worker() error {
	for {
		line, from, err := p.Listener.ReadCommand()
		if err != nil {
			if isClosed(err) {
				return nil
			}
			p.Log.Printf("tecnicofs: read command: %v", err)
			continue
		}

		cmd, err := proto.Parse(line)
		if err != nil {
			p.Log.Printf("tecnicofs: malformed command %q from %v: %v", line, from, err)
			if werr := p.Listener.WriteReply(from, proto.Fail); werr != nil {
				p.Log.Printf("tecnicofs: reply to %v: %v", from, werr)
			}
			continue
		}

		code := dispatch(p.Engine, cmd)
		if werr := p.Listener.WriteReply(from, code); werr != nil {
			p.Log.Printf("tecnicofs: reply to %v: %v", from, werr)
		}
	}
}

func isClosed(err error) bool {
	if ne, ok := err.(*net.OpError); ok {
		return ne.Err.Error() == "use of closed network connection"
	}
	return false
}
