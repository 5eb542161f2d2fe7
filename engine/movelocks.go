// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"sync"

	"github.com/rfsilva/tecnicofs/inode"
)

// moveLocks is the lock-acquisition scope for a single Move call. It
// tracks every inumber this goroutine has already locked (for either
// read or write) so a node reachable from both the src and the dst
// path, any shared prefix and not just the root, is locked at most
// once. Dedup is by inumber identity rather than a fixed position
// offset, since inumbers are reused after Free.
type moveLocks struct {
	table *inode.Table
	held  map[int]bool
	order []moveLockEntry
}

type moveLockEntry struct {
	inumber int
	mu      *sync.RWMutex
	write   bool
}

func newMoveLocks(t *inode.Table) *moveLocks {
	return &moveLocks{table: t, held: make(map[int]bool)}
}

// lockRead blocks until it acquires a read lock on inumber, unless
// this goroutine already holds some lock on it.
func (m *moveLocks) lockRead(inumber int) {
	if m.held[inumber] {
		return
	}
	mu := m.table.Slot(inumber).Lock()
	mu.RLock()
	m.held[inumber] = true
	m.order = append(m.order, moveLockEntry{inumber, mu, false})
}

// lockWrite blocks until it acquires a write lock on inumber, unless
// already held.
func (m *moveLocks) lockWrite(inumber int) {
	if m.held[inumber] {
		return
	}
	mu := m.table.Slot(inumber).Lock()
	mu.Lock()
	m.held[inumber] = true
	m.order = append(m.order, moveLockEntry{inumber, mu, true})
}

// tryLockRead attempts a non-blocking read lock on inumber. A busy
// result, including the case where this goroutine already holds the
// node via the other path, is treated as nothing more to do here and
// silently skipped.
func (m *moveLocks) tryLockRead(inumber int) {
	if m.held[inumber] {
		return
	}
	mu := m.table.Slot(inumber).Lock()
	if !mu.TryRLock() {
		return
	}
	m.held[inumber] = true
	m.order = append(m.order, moveLockEntry{inumber, mu, false})
}

// tryLockWrite attempts a non-blocking write lock on inumber, with
// the same busy-is-fine semantics as tryLockRead.
func (m *moveLocks) tryLockWrite(inumber int) {
	if m.held[inumber] {
		return
	}
	mu := m.table.Slot(inumber).Lock()
	if !mu.TryLock() {
		return
	}
	m.held[inumber] = true
	m.order = append(m.order, moveLockEntry{inumber, mu, true})
}

// release unlocks every lock acquired by this scope, in reverse
// acquisition order.
func (m *moveLocks) release() {
	for i := len(m.order) - 1; i >= 0; i-- {
		e := m.order[i]
		if e.write {
			e.mu.Unlock()
		} else {
			e.mu.RUnlock()
		}
	}
}
