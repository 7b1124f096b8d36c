// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package accesslog provides a structured-logging route listener.
//
// The Logger emits one canonical slog line per dispatched call, carrying a
// generated call ID, the route pattern, the call duration, and the outcome.
package accesslog

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"rivaas.dev/dispatch"
	"rivaas.dev/dispatch/loop"
	"rivaas.dev/dispatch/route"
)

// Logger is a dispatch.Listener that writes access log lines.
// All methods are safe for concurrent use.
type Logger struct {
	log *slog.Logger
}

// Option configures a Logger during New.
type Option func(*Logger)

// WithLogger sets the slog logger to emit through.
// Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(l *Logger) { l.log = log }
}

// New creates an access log listener.
func New(opts ...Option) *Logger {
	l := &Logger{log: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// callToken correlates start and completion of one call.
type callToken struct {
	id    string
	loop  string
	start time.Time
}

// OnStart implements dispatch.Listener. The returned token carries a
// generated call ID usable as a correlation key in downstream logs.
func (l *Logger) OnStart(lp *loop.EventLoop, rt *route.Route) any {
	return &callToken{
		id:    uuid.NewString(),
		loop:  lp.Name(),
		start: time.Now(),
	}
}

// OnSucceed implements dispatch.Listener.
func (l *Logger) OnSucceed(c *dispatch.Context, _ any) {
	token, ok := c.ID().(*callToken)
	if !ok {
		return
	}
	l.log.Info("call completed",
		"call_id", token.id,
		"route", c.Route().Pattern(),
		"version", c.Route().VersionNumber(),
		"source", c.SourceIP(),
		"loop", token.loop,
		"duration", time.Since(token.start),
	)
}

// OnFail implements dispatch.Listener.
func (l *Logger) OnFail(c *dispatch.Context, reason error) {
	token, ok := c.ID().(*callToken)
	if !ok {
		return
	}
	l.log.Warn("call failed",
		"call_id", token.id,
		"route", c.Route().Pattern(),
		"version", c.Route().VersionNumber(),
		"source", c.SourceIP(),
		"loop", token.loop,
		"duration", time.Since(token.start),
		"error", reason,
	)
}
