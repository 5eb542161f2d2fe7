// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rfsilva/tecnicofs/inode"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// Disjoint-subtree creates/deletes run without interfering with each
// other.
func TestConcurrentDisjointCreateDelete(t *testing.T) {
	e := New()
	const workers = 8
	const perWorker = 200

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			dir := fmt.Sprintf("/w%d", w)
			if err := e.Create(dir, inode.Directory); err != nil {
				return err
			}
			for i := 0; i < perWorker; i++ {
				path := fmt.Sprintf("%s/f%d", dir, i)
				if err := e.Create(path, inode.File); err != nil {
					return err
				}
				if _, err := e.Lookup(path); err != nil {
					return err
				}
				if err := e.Delete(path); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

// Adversarial concurrent moves between random path pairs must not
// deadlock. The test bounds wall-clock with a generous timeout
// instead of a long soak, to keep unit test runs fast: the movers run
// for a fixed two seconds.
func TestConcurrentMovesDoNotDeadlock(t *testing.T) {
	e := New()
	e.Delay = time.Microsecond

	const dirs = 6
	for i := 0; i < dirs; i++ {
		require.NoError(t, e.Create(fmt.Sprintf("/d%d", i), inode.Directory))
	}
	for i := 0; i < dirs; i++ {
		require.NoError(t, e.Create(fmt.Sprintf("/d%d/leaf", i), inode.Directory))
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			i := w % dirs
			for {
				select {
				case <-done:
					return
				default:
				}
				j := (i + 1) % dirs
				_ = e.Move(fmt.Sprintf("/d%d/leaf", i), fmt.Sprintf("/d%d/leaf", j))
				i = j
			}
		}()
	}

	timer := time.NewTimer(2 * time.Second)
	defer timer.Stop()
	<-timer.C
	close(done)

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(10 * time.Second):
		t.Fatal("move workers did not finish: suspected deadlock")
	}

	// Once the movers have stopped, the tree can still be printed and
	// the print produces output.
	var buf countingWriter
	require.NoError(t, e.Print(io.Writer(&buf)))
	require.True(t, buf.lines > 0)
}

type countingWriter struct {
	lines int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		if b == '\n' {
			c.lines++
		}
	}
	return len(p), nil
}

// A print issued during active mutation must still observe a fully
// consistent snapshot.
func TestPrintBarrierExcludesMutators(t *testing.T) {
	e := New()
	require.NoError(t, e.Create("/base", inode.Directory))

	var g errgroup.Group
	stop := make(chan struct{})

	g.Go(func() error {
		for i := 0; ; i++ {
			select {
			case <-stop:
				return nil
			default:
			}
			path := fmt.Sprintf("/base/f%d", i%inode.MaxDirEntries)
			_ = e.Delete(path)
			_ = e.Create(path, inode.File)
		}
	})

	for p := 0; p < 50; p++ {
		var sink discard
		require.NoError(t, e.Print(sink))
	}
	close(stop)
	require.NoError(t, g.Wait())
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
