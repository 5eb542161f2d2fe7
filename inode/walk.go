// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inode

import (
	"sync"
)

// heldLock records one lock acquired during a walk, in acquisition
// order, so it can be released in the reverse order later.
type heldLock struct {
	inumber int
	mu      *sync.RWMutex
	write   bool
}

// Walk is a scope-bound lock guard: it owns every per-slot lock
// acquired while resolving a path, in top-down acquisition order, and
// releases them in reverse order exactly once. This replaces the
// original's hand-open-coded "list of locked inumbers" passed through
// function arguments.
type Walk struct {
	table    *Table
	held     []heldLock
	released bool

	// Terminal is the inumber the walk resolved to. It is -1 if the
	// path did not fully resolve.
	Terminal int
	// Resolved reports whether every component of the path was
	// found.
	Resolved bool
}

// Release unlocks every slot held by the walk, in reverse acquisition
// order. It is idempotent: calling it more than once is a no-op.
func (w *Walk) Release() {
	if w.released {
		return
	}
	w.released = true
	for i := len(w.held) - 1; i >= 0; i-- {
		h := w.held[i]
		if h.write {
			h.mu.Unlock()
		} else {
			h.mu.RUnlock()
		}
	}
}

// Inumbers returns the inumbers held by the walk, in acquisition
// (top-down) order.
func (w *Walk) Inumbers() []int {
	out := make([]int, len(w.held))
	for i, h := range w.held {
		out[i] = h.inumber
	}
	return out
}

func (w *Walk) pushRead(inumber int) {
	mu := w.table.Slot(inumber).Lock()
	mu.RLock()
	w.held = append(w.held, heldLock{inumber: inumber, mu: mu, write: false})
}

func (w *Walk) pushWrite(inumber int) {
	mu := w.table.Slot(inumber).Lock()
	mu.Lock()
	w.held = append(w.held, heldLock{inumber: inumber, mu: mu, write: true})
}

// ReadWalk resolves path starting at the root, acquiring a read lock
// on every node visited, in order. If a component is missing or an
// intermediate node is not a directory, the walk stops there:
// Resolved is false, Terminal is -1, and the locks acquired up to the
// last resolved node are still held by the returned Walk (the caller
// must Release it).
func ReadWalk(t *Table, path string) *Walk {
	w := &Walk{table: t}
	w.pushRead(Root)
	current := Root

	for _, name := range Components(path) {
		kind, payload := t.Read(current)
		if kind != Directory {
			w.Terminal = -1
			w.Resolved = false
			return w
		}
		next := payload.Lookup(name)
		if next == FreeInode {
			w.Terminal = -1
			w.Resolved = false
			return w
		}
		w.pushRead(next)
		current = next
	}

	w.Terminal = current
	w.Resolved = true
	return w
}

// WriteWalk resolves path like ReadWalk, but the terminal node (the
// last component, or the root for the empty path) is acquired with a
// write lock while every strict ancestor is held with a read lock.
// Only the terminal is about to be mutated or have an entry added or
// removed; ancestors are merely traversed.
//
// Unlike ReadWalk, WriteWalk requires every component to resolve: it
// is used to reach the parent directory of the node being created,
// deleted, or moved, and a missing ancestor is always a failure.
func WriteWalk(t *Table, path string) *Walk {
	w := &Walk{table: t}
	components := Components(path)

	if len(components) == 0 {
		w.pushWrite(Root)
		w.Terminal = Root
		w.Resolved = true
		return w
	}

	w.pushRead(Root)
	current := Root

	for i, name := range components {
		kind, payload := t.Read(current)
		if kind != Directory {
			w.Terminal = -1
			w.Resolved = false
			return w
		}
		next := payload.Lookup(name)
		if next == FreeInode {
			w.Terminal = -1
			w.Resolved = false
			return w
		}
		if i == len(components)-1 {
			w.pushWrite(next)
		} else {
			w.pushRead(next)
		}
		current = next
	}

	w.Terminal = current
	w.Resolved = true
	return w
}
