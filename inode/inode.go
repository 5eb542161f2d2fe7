// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inode implements the fixed-size inode table that backs the
// tecnicofs tree: a bounded array of slots, each carrying a kind, a
// tagged payload, and a readers/writer lock that protects that slot
// only. There is no global tree lock; callers serialize structural
// changes through the locking discipline documented on Table.
package inode

import (
	"fmt"
)

// Kind identifies the type of an inode slot.
type Kind int

const (
	// None marks a free slot.
	None Kind = iota
	File
	Directory
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case File:
		return "file"
	case Directory:
		return "directory"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

const (
	// InodeTableSize bounds the number of inodes the table can hold.
	// Slot 0 is reserved for the root directory.
	InodeTableSize = 50

	// MaxDirEntries bounds the number of children a single directory
	// may hold.
	MaxDirEntries = 20

	// MaxFileName is the nominal maximum length in bytes of a single
	// path component. No path helper or engine operation checks a
	// component's length against it.
	MaxFileName = 255

	// FreeInode marks an empty directory entry slot.
	FreeInode = -1

	// Root is the inumber of the filesystem root, created by Init.
	Root = 0

	// AllocFail is returned by Allocate when the table has no free
	// slots.
	AllocFail = -1
)

// DirEntry is a (name, inumber) pair stored inside a directory's
// payload. A FreeInode Inumber marks the slot as unused.
type DirEntry struct {
	Name    string
	Inumber int
}

// Payload is the tagged variant carried by a slot: a directory's
// entries, a file's opaque content, or nothing for a free slot.
type Payload struct {
	Entries [MaxDirEntries]DirEntry
	Content []byte
}

// NewDirPayload returns a payload with every entry slot marked free.
func NewDirPayload() Payload {
	var p Payload
	for i := range p.Entries {
		p.Entries[i].Inumber = FreeInode
	}
	return p
}

// IsEmptyDir reports whether every entry slot of a directory payload
// is free.
func (p Payload) IsEmptyDir() bool {
	for _, e := range p.Entries {
		if e.Inumber != FreeInode {
			return false
		}
	}
	return true
}

// Lookup returns the inumber of the named entry, or FreeInode if no
// such entry exists.
func (p Payload) Lookup(name string) int {
	for _, e := range p.Entries {
		if e.Inumber != FreeInode && e.Name == name {
			return e.Inumber
		}
	}
	return FreeInode
}
