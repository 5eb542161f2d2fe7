// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCreate(t *testing.T) {
	cmd, err := Parse("c /a/b d")
	require.NoError(t, err)
	require.Equal(t, Create, cmd.Verb)
	require.Equal(t, "/a/b", cmd.Path)
	require.Equal(t, DirectoryType, cmd.NodeType)
}

func TestParseMove(t *testing.T) {
	cmd, err := Parse("m /x/k /y/k")
	require.NoError(t, err)
	require.Equal(t, Move, cmd.Verb)
	require.Equal(t, "/x/k", cmd.Path)
	require.Equal(t, "/y/k", cmd.Path2)
}

func TestParseExtended(t *testing.T) {
	cmd, err := Parse("e d /a")
	require.NoError(t, err)
	require.True(t, cmd.Extended)
	require.Equal(t, Delete, cmd.Verb)
	require.Equal(t, "/a", cmd.Path)
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"x /a",
		"c /a",
		"c /a x",
		"m /a",
		"d /a /b",
	}
	for _, line := range cases {
		_, err := Parse(line)
		require.ErrorIs(t, err, ErrMalformed, "line %q", line)
	}
}

func TestParseDoesNotMutateInput(t *testing.T) {
	line := "c /a/b d"
	cp := line
	_, err := Parse(line)
	require.NoError(t, err)
	require.Equal(t, cp, line)
}
