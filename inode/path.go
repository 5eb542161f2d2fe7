// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inode

import "strings"

// SplitParentChild splits a path into its parent path and its final
// component. A trailing slash is stripped first; the empty path (or
// "/") denotes the root and has no parent. This never mutates the
// input, unlike the original's in-place strtok_r-based tokenizer.
func SplitParentChild(path string) (parent, child string) {
	path = strings.TrimSuffix(path, "/")
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return "", ""
	}
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}

// Components splits a path into its non-empty slash-delimited
// components, tolerating a leading slash and a trailing slash. The
// empty path yields no components (the root).
func Components(path string) []string {
	path = strings.TrimSuffix(path, "/")
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
