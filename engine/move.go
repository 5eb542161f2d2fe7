// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rfsilva/tecnicofs/inode"
)

// planWalk resolves path without taking any locks, returning the
// ordered inumbers from the root down to the terminal (inclusive).
// It exists only to compute the move engine's lock plan; its result
// is re-validated against the real, locked state before anything is
// mutated.
func planWalk(t *inode.Table, path string) (seq []int, resolved bool) {
	current := inode.Root
	seq = append(seq, current)
	for _, name := range inode.Components(path) {
		kind, payload := t.Read(current)
		if kind != inode.Directory {
			return seq, false
		}
		next := payload.Lookup(name)
		if next == inode.FreeInode {
			return seq, false
		}
		seq = append(seq, next)
		current = next
	}
	return seq, true
}

func containsInt(xs []int, target int) bool {
	for _, x := range xs {
		if x == target {
			return true
		}
	}
	return false
}

// Move relocates the node at src to dst, preserving its inumber and
// therefore the identity of its entire subtree, moved without
// copying. It runs a lock-free preliminary walk of both parent paths
// to plan a canonical lock order: the shorter path's ancestors are
// locked first as blocking readers, the terminal pair (the shorter
// side's parent and the moved node) is locked as writers with an
// ascending-inumber tie-break, and the longer path's remaining nodes
// are locked with try-lock semantics that silently skip a busy node,
// whether already held by this goroutine via the other path or
// genuinely contended.
func (e *Engine) Move(src, dst string) (err error) {
	start := time.Now()
	defer func() { e.observe("move", start, err) }()

	e.barrier.enterMutation()
	defer e.barrier.leaveMutation()

	parentPath1, child1 := inode.SplitParentChild(src)
	parentPath2, child2 := inode.SplitParentChild(dst)

	seq1, resolved1 := planWalk(e.table, parentPath1)
	if !resolved1 {
		e.logger().Printf("move %s -> %s: invalid source parent", src, dst)
		return ErrInvalidParent
	}
	seq2, resolved2 := planWalk(e.table, parentPath2)
	if !resolved2 {
		e.logger().Printf("move %s -> %s: invalid destination parent", src, dst)
		return ErrInvalidParent
	}

	parent1 := seq1[len(seq1)-1]
	parent2 := seq2[len(seq2)-1]

	_, parent1Payload := e.table.Read(parent1)
	moved := parent1Payload.Lookup(child1)
	if moved == inode.FreeInode {
		return ErrNotFound
	}

	locks := newMoveLocks(e.table)
	defer locks.release()

	shortSeq, longSeq := seq1, seq2
	shortTerminal, longTerminal := parent1, parent2
	if len(seq2) < len(seq1) {
		shortSeq, longSeq = seq2, seq1
		shortTerminal, longTerminal = parent2, parent1
	}

	for _, n := range shortSeq[:len(shortSeq)-1] {
		locks.lockRead(n)
	}

	if shortTerminal < moved {
		locks.lockWrite(shortTerminal)
		locks.lockWrite(moved)
	} else {
		locks.lockWrite(moved)
		locks.lockWrite(shortTerminal)
	}

	for _, n := range longSeq[:len(longSeq)-1] {
		locks.tryLockRead(n)
	}
	locks.tryLockWrite(longTerminal)

	e.delay()

	// Re-validate everything under the locks we now hold; the
	// preliminary walk above only planned the lock order and is never
	// trusted for correctness.
	_, p1Payload := e.table.Read(parent1)
	if p1Payload.Lookup(child1) != moved {
		e.logger().Printf("move %s -> %s: source vanished under us", src, dst)
		return ErrNotFound
	}

	p2Kind, p2Payload := e.table.Read(parent2)
	if p2Kind != inode.Directory {
		return ErrNotDir
	}
	if p2Payload.Lookup(child2) != inode.FreeInode {
		return ErrAlreadyExists
	}

	if e.testLookup(seq2, moved) {
		return ErrCycle
	}

	movedKind, movedPayload := e.table.Read(moved)

	if err := e.table.DirRemove(parent1, moved); err != nil {
		return err
	}
	// Logically free the slot only (clear kind, retain inumber) so
	// the move preserves identity instead of allocating a fresh
	// slot and copying the subtree.
	e.table.Free(moved)

	if err := e.table.AllocateAt(movedKind, moved); err != nil {
		// Unreachable under the preconditions just validated: the
		// slot was freed under its own write lock one line above, by
		// this same goroutine, and no other goroutine can reach a
		// write-locked slot.
		panic(errors.Wrapf(err, "move %s -> %s: could not reinitialize freed slot %d", src, dst, moved))
	}
	e.table.SetPayload(moved, movedPayload)

	if err := e.table.DirAdd(parent2, moved, child2); err != nil {
		panic(errors.Wrapf(err, "move %s -> %s: could not relink slot %d into new parent", src, dst, moved))
	}

	return nil
}

// testLookup reports whether target appears anywhere in seq, the
// ancestor chain of a destination path captured by planWalk: a move
// is forbidden when the node being moved is a proper ancestor of its
// own destination.
func (e *Engine) testLookup(seq []int, target int) bool {
	return containsInt(seq, target)
}
