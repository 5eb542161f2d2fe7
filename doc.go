// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tecnicofs is an in-memory hierarchical name service: a
// POSIX-like directory tree with no block layer, exposed over a
// datagram transport to many concurrent clients.
//
// The inode package holds the fixed-size inode table and the
// per-slot locking discipline. The engine package builds the
// concurrent tree operations on top of it: create, delete, move and
// the print barrier. The server package drains the command queue
// with a fixed worker pool and dispatches into the engine.
package tecnicofs
