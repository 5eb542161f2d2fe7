// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/rfsilva/tecnicofs/inode"
)

// Print serializes the whole tree to w in depth-first order, one
// path per line, parent before children. It excludes every mutator
// for its duration via the print barrier: no create/delete/move can
// interleave, but it does not block Lookup, which only takes
// per-inode read locks.
//
// Reading inodes without per-inode locks during the walk is safe
// here specifically because the barrier guarantees no mutator is
// running concurrently.
func (e *Engine) Print(w io.Writer) (err error) {
	start := time.Now()
	defer func() { e.observe("print", start, err) }()

	e.barrier.enterPrint()
	defer e.barrier.leavePrint()

	return e.printSubtree(w, inode.Root, "/")
}

func (e *Engine) printSubtree(w io.Writer, inumber int, path string) error {
	if _, err := fmt.Fprintln(w, path); err != nil {
		return err
	}
	kind, payload := e.table.Read(inumber)
	if kind != inode.Directory {
		return nil
	}
	for _, entry := range payload.Entries {
		if entry.Inumber == inode.FreeInode {
			continue
		}
		childPath := "/" + entry.Name
		if path != "/" {
			childPath = path + "/" + entry.Name
		}
		if err := e.printSubtree(w, entry.Inumber, childPath); err != nil {
			return err
		}
	}
	return nil
}
