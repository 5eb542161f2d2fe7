// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"time"

	"github.com/rfsilva/tecnicofs/inode"
)

// Create adds a new node of the given kind at path. The parent
// directory must already exist and must not already contain an entry
// with the final component's name.
func (e *Engine) Create(path string, kind inode.Kind) (err error) {
	start := time.Now()
	defer func() { e.observe("create", start, err) }()

	e.barrier.enterMutation()
	defer e.barrier.leaveMutation()

	parentPath, name := inode.SplitParentChild(path)

	w := inode.WriteWalk(e.table, parentPath)
	defer w.Release()

	if !w.Resolved {
		e.logger().Printf("create %s: invalid parent %s", path, parentPath)
		return ErrInvalidParent
	}
	parent := w.Terminal

	pKind, pPayload := e.table.Read(parent)
	if pKind != inode.Directory {
		e.logger().Printf("create %s: parent %s is not a directory", path, parentPath)
		return ErrNotDir
	}
	if pPayload.Lookup(name) != inode.FreeInode {
		e.logger().Printf("create %s: already exists", path)
		return ErrAlreadyExists
	}

	e.delay()

	child, err := e.table.Allocate(kind)
	if err != nil {
		e.logger().Printf("create %s: inode table full", path)
		return ErrAllocFail
	}
	defer e.table.Slot(child).Lock().Unlock()

	if err := e.table.DirAdd(parent, child, name); err != nil {
		// Roll back the allocation before releasing any locks.
		e.table.Free(child)
		e.logger().Printf("create %s: %v", path, err)
		return err
	}

	return nil
}

// Delete removes the node at path. A non-empty directory cannot be
// deleted.
func (e *Engine) Delete(path string) (err error) {
	start := time.Now()
	defer func() { e.observe("delete", start, err) }()

	e.barrier.enterMutation()
	defer e.barrier.leaveMutation()

	parentPath, name := inode.SplitParentChild(path)

	w := inode.WriteWalk(e.table, parentPath)
	defer w.Release()

	if !w.Resolved {
		e.logger().Printf("delete %s: invalid parent %s", path, parentPath)
		return ErrInvalidParent
	}
	parent := w.Terminal

	pKind, pPayload := e.table.Read(parent)
	if pKind != inode.Directory {
		return ErrNotDir
	}
	child := pPayload.Lookup(name)
	if child == inode.FreeInode {
		return ErrNotFound
	}

	// The child is a descendant of parent, so acquiring its write
	// lock here respects the top-down acquisition order.
	childMu := e.table.Slot(child).Lock()
	childMu.Lock()
	defer childMu.Unlock()

	e.delay()

	cKind, cPayload := e.table.Read(child)
	if cKind == inode.Directory && !cPayload.IsEmptyDir() {
		return ErrNotEmpty
	}

	if err := e.table.DirRemove(parent, child); err != nil {
		return err
	}
	e.table.Free(child)

	return nil
}

// Lookup resolves path to its current inumber, or reports not-found.
// It is not gated by the print barrier: it only takes per-inode read
// locks, which is safe against itself and against a concurrent print
// (print excludes mutation, not lookup).
func (e *Engine) Lookup(path string) (int, error) {
	w := inode.ReadWalk(e.table, path)
	defer w.Release()
	if !w.Resolved {
		return -1, ErrNotFound
	}
	return w.Terminal, nil
}
