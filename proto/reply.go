// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

// Baseline wire reply codes. Lookup's reply is the inumber itself on
// a hit.
const (
	Success = int32(0)
	Fail    = int32(-1)
)

// Extended reply codes, only sent when the client negotiated the "e"
// verb prefix: the baseline protocol stays 0/-1/inumber-compatible,
// and a richer taxonomy is offered behind a second verb rather than
// changing the default wire format.
const (
	ExtInvalidParent = int32(-2)
	ExtNotDir        = int32(-3)
	ExtAlreadyExists = int32(-4)
	ExtNotFound      = int32(-5)
	ExtNotEmpty      = int32(-6)
	ExtAllocFail     = int32(-7)
	ExtCycle         = int32(-8)
)
