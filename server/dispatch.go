// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"os"

	"github.com/rfsilva/tecnicofs/engine"
	"github.com/rfsilva/tecnicofs/inode"
	"github.com/rfsilva/tecnicofs/proto"
)

// dispatch runs one decoded command against e and returns the wire
// reply code. Lookup is the one verb whose success reply is the
// inumber itself (0 for the root) rather than Success.
func dispatch(e *engine.Engine, cmd proto.Command) int32 {
	switch cmd.Verb {
	case proto.Create:
		kind := inode.File
		if cmd.NodeType == proto.DirectoryType {
			kind = inode.Directory
		}
		return replyCode(e.Create(cmd.Path, kind), cmd.Extended)

	case proto.Delete:
		return replyCode(e.Delete(cmd.Path), cmd.Extended)

	case proto.Lookup:
		inum, err := e.Lookup(cmd.Path)
		if err != nil {
			return replyCode(err, cmd.Extended)
		}
		return int32(inum)

	case proto.Move:
		return replyCode(e.Move(cmd.Path, cmd.Path2), cmd.Extended)

	case proto.Print:
		return dispatchPrint(e, cmd)

	default:
		return proto.Fail
	}
}

// dispatchPrint renders the tree to the server-local file named by
// the command, matching the original's print_tree(char *path).
func dispatchPrint(e *engine.Engine, cmd proto.Command) int32 {
	f, err := os.Create(cmd.Path)
	if err != nil {
		return replyCode(err, cmd.Extended)
	}
	defer f.Close()

	if err := e.Print(f); err != nil {
		return replyCode(err, cmd.Extended)
	}
	return proto.Success
}
