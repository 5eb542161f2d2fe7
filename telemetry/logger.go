// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package telemetry adapts logrus to the small Logger interfaces the
// engine and server packages depend on, the way winfsp's own log
// package wraps logrus behind a narrow interface rather than coupling
// callers to it directly.
package telemetry

import (
	"github.com/sirupsen/logrus"
)

// Logger wraps a *logrus.Entry so the engine and server packages get
// structured, leveled logging without importing logrus themselves.
type Logger struct {
	entry *logrus.Entry
}

// New builds a Logger writing through base, tagged with component
// (e.g. "engine", "server").
func New(base *logrus.Logger, component string) *Logger {
	if base == nil {
		base = logrus.StandardLogger()
	}
	return &Logger{entry: base.WithField("component", component)}
}

// Printf satisfies engine.Logger and server.Logger; tecnicofsd passes
// the same format strings it always has, just rendered through
// logrus's text/JSON formatters instead of fprintf to stderr.
func (l *Logger) Printf(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}
