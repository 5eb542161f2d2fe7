// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "sync"

// barrier is the single-writer/many-mutators coordination state that
// lets print observe a structurally consistent snapshot of the tree
// without turning every mutator into a full-tree-exclusive operation.
// It is a monitor distinct from the per-inode locks: per-inode
// RWMutexes keep parallelizing non-conflicting mutators, the barrier
// only interlocks the set of all mutators against the printer.
type barrier struct {
	mu        sync.Mutex
	mutating  int
	printing  bool
	canPrint  *sync.Cond
	canModify *sync.Cond
}

func newBarrier() *barrier {
	b := &barrier{}
	b.canPrint = sync.NewCond(&b.mu)
	b.canModify = sync.NewCond(&b.mu)
	return b
}

// enterMutation blocks while a print is in progress, then registers
// the caller as an active mutator. Call leaveMutation when the
// structural change is complete.
func (b *barrier) enterMutation() {
	b.mu.Lock()
	for b.printing {
		b.canModify.Wait()
	}
	b.mutating++
	b.mu.Unlock()
}

func (b *barrier) leaveMutation() {
	b.mu.Lock()
	b.mutating--
	if b.mutating == 0 {
		b.canPrint.Signal()
	}
	b.mu.Unlock()
}

// enterPrint blocks while any mutator or another printer is active,
// then excludes all future mutators until leavePrint is called.
func (b *barrier) enterPrint() {
	b.mu.Lock()
	for b.mutating > 0 || b.printing {
		b.canPrint.Wait()
	}
	b.printing = true
	b.mu.Unlock()
}

func (b *barrier) leavePrint() {
	b.mu.Lock()
	b.printing = false
	b.mu.Unlock()
	b.canModify.Broadcast()
	b.canPrint.Broadcast()
}
