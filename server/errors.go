// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	stderrors "errors"

	"github.com/rfsilva/tecnicofs/engine"
	"github.com/rfsilva/tecnicofs/proto"
)

// replyCode turns an engine error into a wire reply code. Baseline
// clients only ever see -1; clients that sent the "e" prefix get the
// distinguishing code for the failure.
func replyCode(err error, extended bool) int32 {
	if err == nil {
		return proto.Success
	}
	if !extended {
		return proto.Fail
	}

	switch {
	case stderrors.Is(err, engine.ErrInvalidParent):
		return proto.ExtInvalidParent
	case stderrors.Is(err, engine.ErrNotDir):
		return proto.ExtNotDir
	case stderrors.Is(err, engine.ErrAlreadyExists):
		return proto.ExtAlreadyExists
	case stderrors.Is(err, engine.ErrNotFound):
		return proto.ExtNotFound
	case stderrors.Is(err, engine.ErrNotEmpty):
		return proto.ExtNotEmpty
	case stderrors.Is(err, engine.ErrAllocFail):
		return proto.ExtAllocFail
	case stderrors.Is(err, engine.ErrCycle):
		return proto.ExtCycle
	default:
		return proto.Fail
	}
}
