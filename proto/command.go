// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proto tokenizes the wire command grammar: one ASCII verb
// line per datagram, c/d/l/m/p plus the extended "e" form. It never
// mutates its input, unlike the original's in-place strtok_r-based
// parser.
package proto

import (
	"strings"

	"github.com/pkg/errors"
)

// Verb identifies the requested operation.
type Verb byte

const (
	Create Verb = 'c'
	Delete Verb = 'd'
	Lookup Verb = 'l'
	Move   Verb = 'm'
	Print  Verb = 'p'
)

// NodeType is the second argument of a create command.
type NodeType byte

const (
	FileType      NodeType = 'f'
	DirectoryType NodeType = 'd'
)

// ErrMalformed reports a protocol violation: an unknown verb or a
// wrong argument count. It is never fatal: the caller replies -1
// and keeps serving.
var ErrMalformed = errors.New("proto: malformed command")

// Command is a decoded (verb, arg1, arg2?) tuple.
type Command struct {
	Verb     Verb
	Path     string
	Path2    string   // Move's destination. Print's output file is in Path.
	NodeType NodeType // Create only.

	// Extended requests a richer reply taxonomy instead of the
	// baseline 0/-1/inumber wire codes, negotiated with a leading
	// "e" verb.
	Extended bool
}

// Parse decodes a single command line. Lines are whitespace-separated
// fields; Parse never mutates the input string.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrMalformed
	}

	extended := false
	if fields[0] == "e" {
		extended = true
		fields = fields[1:]
		if len(fields) == 0 {
			return Command{}, ErrMalformed
		}
	}

	if len(fields[0]) != 1 {
		return Command{}, ErrMalformed
	}
	verb := Verb(fields[0][0])

	cmd := Command{Verb: verb, Extended: extended}

	switch verb {
	case Create:
		if len(fields) != 3 || len(fields[2]) != 1 {
			return Command{}, ErrMalformed
		}
		nt := NodeType(fields[2][0])
		if nt != FileType && nt != DirectoryType {
			return Command{}, ErrMalformed
		}
		cmd.Path = fields[1]
		cmd.NodeType = nt
	case Delete, Lookup, Print:
		if len(fields) != 2 {
			return Command{}, ErrMalformed
		}
		cmd.Path = fields[1]
	case Move:
		if len(fields) != 3 {
			return Command{}, ErrMalformed
		}
		cmd.Path = fields[1]
		cmd.Path2 = fields[2]
	default:
		return Command{}, ErrMalformed
	}

	return cmd, nil
}
