// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustCreate(t *testing.T, tbl *Table, parent int, name string, kind Kind) int {
	t.Helper()
	inumber, err := tbl.Allocate(kind)
	require.NoError(t, err)
	require.NoError(t, tbl.DirAdd(parent, inumber, name))
	tbl.Slot(inumber).Lock().Unlock()
	return inumber
}

func TestReadWalkResolvesExistingPath(t *testing.T) {
	tbl := NewTable()
	a := mustCreate(t, tbl, Root, "a", Directory)
	b := mustCreate(t, tbl, a, "b", File)

	w := ReadWalk(tbl, "/a/b")
	defer w.Release()

	require.True(t, w.Resolved)
	require.Equal(t, b, w.Terminal)
	require.Equal(t, []int{Root, a, b}, w.Inumbers())
}

func TestReadWalkStopsAtMissingComponent(t *testing.T) {
	tbl := NewTable()
	mustCreate(t, tbl, Root, "a", Directory)

	w := ReadWalk(tbl, "/a/missing")
	defer w.Release()

	require.False(t, w.Resolved)
	require.Equal(t, -1, w.Terminal)
}

func TestWriteWalkRootTakesWriteLock(t *testing.T) {
	tbl := NewTable()
	w := WriteWalk(tbl, "")
	defer w.Release()

	require.True(t, w.Resolved)
	require.Equal(t, Root, w.Terminal)
	require.False(t, tbl.Slot(Root).Lock().TryRLock())
}

func TestWriteWalkLocksTerminalForWriteAncestorsForRead(t *testing.T) {
	tbl := NewTable()
	a := mustCreate(t, tbl, Root, "a", Directory)

	w := WriteWalk(tbl, "/a")
	defer w.Release()

	require.True(t, w.Resolved)
	require.Equal(t, a, w.Terminal)
	// ancestor (root) is read-locked: another reader can share it.
	require.True(t, tbl.Slot(Root).Lock().TryRLock())
	tbl.Slot(Root).Lock().RUnlock()
	// terminal is write-locked: nothing else can acquire it.
	require.False(t, tbl.Slot(a).Lock().TryRLock())
}

func TestWalkReleaseIsIdempotent(t *testing.T) {
	tbl := NewTable()
	w := ReadWalk(tbl, "")
	w.Release()
	require.NotPanics(t, func() { w.Release() })
}
