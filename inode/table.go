// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inode

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrNotDir    = errors.New("inode: not a directory")
	ErrDirFull   = errors.New("inode: directory full")
	ErrNotFound  = errors.New("inode: entry not found")
	ErrTableFull = errors.New("inode: table full")
	ErrNotFree   = errors.New("inode: slot not free")
)

// Slot is a single inode: a kind, a payload, and the readers/writer
// lock that protects both. Every read and mutation of a slot's
// fields must be done under this lock; there is no lock covering the
// table as a whole.
type Slot struct {
	mu      sync.RWMutex
	kind    Kind
	payload Payload
}

// Lock returns the slot's RWMutex so that callers (the resolver, the
// move engine) can acquire and release it explicitly as part of a
// multi-slot walk.
func (s *Slot) Lock() *sync.RWMutex { return &s.mu }

// Table is the fixed-size array of inode slots. Slot 0 is the root
// directory, created by Init.
type Table struct {
	slots [InodeTableSize]Slot
}

// NewTable allocates and initializes a table with the root directory
// at slot 0.
func NewTable() *Table {
	t := &Table{}
	t.Init()
	return t
}

// Init resets every slot to None and creates the root directory at
// slot Root. It must be called exactly once before any other
// operation.
func (t *Table) Init() {
	for i := range t.slots {
		t.slots[i].mu = sync.RWMutex{}
		t.slots[i].kind = None
		t.slots[i].payload = Payload{}
	}
	root := &t.slots[Root]
	root.kind = Directory
	root.payload = NewDirPayload()
}

// Slot returns a pointer to the slot for inumber. The caller is
// responsible for locking it appropriately before reading or
// mutating.
func (t *Table) Slot(inumber int) *Slot {
	return &t.slots[inumber]
}

// Allocate scans the table for a free slot, claiming one as kind
// under a non-blocking write-lock. On success the returned slot's
// write lock is held by the caller, who is responsible for releasing
// it. Returns AllocFail if no free slot exists.
func (t *Table) Allocate(kind Kind) (int, error) {
	for i := range t.slots {
		s := &t.slots[i]
		if !s.mu.TryLock() {
			continue
		}
		if s.kind != None {
			s.mu.Unlock()
			continue
		}
		s.kind = kind
		if kind == Directory {
			s.payload = NewDirPayload()
		} else {
			s.payload = Payload{}
		}
		return i, nil
	}
	return AllocFail, ErrTableFull
}

// AllocateAt (re)initializes the slot at inumber as kind, failing
// with ErrNotFree if the slot is not None. It is used only by the
// move engine while the slot's write lock is already held by the
// caller, to reinstate a logically-freed slot in place without
// reallocating a fresh inumber.
func (t *Table) AllocateAt(kind Kind, inumber int) error {
	s := &t.slots[inumber]
	if s.kind != None {
		return ErrNotFree
	}
	s.kind = kind
	if kind == Directory {
		s.payload = NewDirPayload()
	} else {
		s.payload = Payload{}
	}
	return nil
}

// Free marks the slot as None and releases its payload. The caller
// must hold the slot's write lock.
func (t *Table) Free(inumber int) {
	s := &t.slots[inumber]
	s.kind = None
	s.payload = Payload{}
}

// Read copies out the kind and payload of a slot. The caller must
// hold at least a read lock.
func (t *Table) Read(inumber int) (Kind, Payload) {
	s := &t.slots[inumber]
	return s.kind, s.payload
}

// SetPayload overwrites a slot's payload in place, preserving its
// kind. Used by the move engine to restore a moved node's contents
// after reinitializing its slot. The caller must hold the write lock.
func (t *Table) SetPayload(inumber int, payload Payload) {
	t.slots[inumber].payload = payload
}

// DirAdd inserts (child, name) into the first free entry slot of the
// directory at inumber.
func (t *Table) DirAdd(inumber, child int, name string) error {
	s := &t.slots[inumber]
	if s.kind != Directory {
		return ErrNotDir
	}
	for i := range s.payload.Entries {
		if s.payload.Entries[i].Inumber == FreeInode {
			s.payload.Entries[i] = DirEntry{Name: name, Inumber: child}
			return nil
		}
	}
	return ErrDirFull
}

// DirRemove marks the entry pointing at child within the directory
// at inumber as free.
func (t *Table) DirRemove(inumber, child int) error {
	s := &t.slots[inumber]
	if s.kind != Directory {
		return ErrNotDir
	}
	for i := range s.payload.Entries {
		if s.payload.Entries[i].Inumber == child {
			s.payload.Entries[i] = DirEntry{Inumber: FreeInode}
			return nil
		}
	}
	return ErrNotFound
}
