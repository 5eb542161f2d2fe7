// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine implements the concurrent tree operations: create,
// delete, move, and print, on top of the inode table's locking
// discipline. It builds on the inode package's path walks and holds
// the two-path move's canonical lock order and the printer/mutator
// barrier.
package engine

import "github.com/pkg/errors"

// The semantic error taxonomy observable by callers, widened from the
// original's bare 0/-1 wire protocol. server collapses these back to
// 0/-1 by default and to extended codes when a client negotiates the
// extended reply form.
var (
	ErrInvalidParent = errors.New("engine: invalid parent directory")
	ErrNotDir        = errors.New("engine: not a directory")
	ErrAlreadyExists = errors.New("engine: already exists")
	ErrNotFound      = errors.New("engine: not found")
	ErrNotEmpty      = errors.New("engine: directory not empty")
	ErrAllocFail     = errors.New("engine: inode table full")
	ErrCycle         = errors.New("engine: move would create a cycle")
)
