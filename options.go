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

package dispatch

import (
	"log/slog"
	"time"
)

// Option configures a Router during New.
type Option func(*Router)

// WithPlugin registers a plugin. Plugins run in registration order for
// every hook chain; order is fixed at startup so parameter slot indices are
// reproducible across restarts. Duplicate plugin names fail New.
//
// Example:
//
//	r, err := dispatch.New(
//	    dispatch.WithPlugin(authPlugin{}),
//	    dispatch.WithPlugin(auditPlugin{}),
//	)
func WithPlugin(p Plugin) Option {
	return func(r *Router) {
		r.plugins = append(r.plugins, p)
	}
}

// WithListener sets the route listener notified at call start, success,
// and failure. Use CombineListeners to stack several.
//
// Example:
//
//	r := dispatch.MustNew(
//	    dispatch.WithListener(dispatch.CombineListeners(
//	        metricsRecorder,
//	        accessLogger,
//	    )),
//	)
func WithListener(l Listener) Option {
	return func(r *Router) {
		r.listener = l
	}
}

// WithCallTimeout arms a per-call timeout. A call that has not reached a
// terminal outcome within d (a plugin that never invoked its continuation,
// a handler that never finished) fails with ErrCallTimeout on its own
// loop. Zero disables the guard (the default).
func WithCallTimeout(d time.Duration) Option {
	return func(r *Router) {
		r.callTimeout = d
	}
}

// WithLogger sets the structured logger used for dispatcher diagnostics:
// double continuations, duplicate completions, scheduling failures.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}
