// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableInitCreatesRoot(t *testing.T) {
	tbl := NewTable()
	kind, payload := tbl.Read(Root)
	require.Equal(t, Directory, kind)
	require.True(t, payload.IsEmptyDir())
}

func TestAllocateClaimsFreeSlotWithLockHeld(t *testing.T) {
	tbl := NewTable()
	inumber, err := tbl.Allocate(File)
	require.NoError(t, err)
	require.NotEqual(t, Root, inumber)

	// the lock is retained by the caller; a concurrent allocate must
	// not be able to claim the same slot again.
	slot := tbl.Slot(inumber)
	require.False(t, slot.Lock().TryLock())
	slot.Lock().Unlock()
}

func TestAllocateFailsWhenTableFull(t *testing.T) {
	tbl := NewTable()
	for i := 1; i < InodeTableSize; i++ {
		inumber, err := tbl.Allocate(File)
		require.NoError(t, err)
		tbl.Slot(inumber).Lock().Unlock()
	}
	_, err := tbl.Allocate(File)
	require.ErrorIs(t, err, ErrTableFull)
}

func TestDirAddAndRemove(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.DirAdd(Root, 1, "a"))
	_, payload := tbl.Read(Root)
	require.Equal(t, 1, payload.Lookup("a"))

	require.NoError(t, tbl.DirRemove(Root, 1))
	_, payload = tbl.Read(Root)
	require.Equal(t, FreeInode, payload.Lookup("a"))
}

func TestDirAddFailsOnNonDirectory(t *testing.T) {
	tbl := NewTable()
	inumber, err := tbl.Allocate(File)
	require.NoError(t, err)
	tbl.Slot(inumber).Lock().Unlock()

	require.ErrorIs(t, tbl.DirAdd(inumber, 2, "x"), ErrNotDir)
}

func TestDirAddFailsWhenFull(t *testing.T) {
	tbl := NewTable()
	for i := 0; i < MaxDirEntries; i++ {
		require.NoError(t, tbl.DirAdd(Root, i+1, string(rune('a'+i))))
	}
	require.ErrorIs(t, tbl.DirAdd(Root, 99, "overflow"), ErrDirFull)
}

func TestAllocateAtRequiresFreeSlot(t *testing.T) {
	tbl := NewTable()
	require.ErrorIs(t, tbl.AllocateAt(File, Root), ErrNotFree)

	inumber, err := tbl.Allocate(File)
	require.NoError(t, err)
	tbl.Free(inumber)
	require.NoError(t, tbl.AllocateAt(Directory, inumber))
	kind, payload := tbl.Read(inumber)
	require.Equal(t, Directory, kind)
	require.True(t, payload.IsEmptyDir())
}
