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
	"rivaas.dev/dispatch/loop"
	"rivaas.dev/dispatch/route"
)

// Listener observes the lifecycle of dispatched calls. Implementations
// typically record metrics, trace spans, or access log lines.
//
// Contract per call: OnStart is invoked exactly once, before parameter
// binding; the opaque token it returns becomes the call's correlation ID
// (Context.ID). After the plugin result chain settles, exactly one of
// OnSucceed or OnFail is invoked, exactly once.
//
// OnStart, OnSucceed, and OnFail all run on the call's event loop, but
// different calls run on different loops concurrently, so implementations
// must be safe for concurrent use.
type Listener interface {
	// OnStart is called at the very start of dispatch, before parameter
	// binding. The returned token is opaque to the router and is carried
	// on the Context for the remainder of the call.
	OnStart(lp *loop.EventLoop, r *route.Route) any

	// OnSucceed is called when the call finished with a result, after
	// the plugin result chain has settled.
	OnSucceed(c *Context, result any)

	// OnFail is called when the call failed: a binding error, a plugin
	// chain error, a handler failure, or a dispatcher timeout.
	OnFail(c *Context, reason error)
}

// NopListener is a Listener that observes nothing. It is the router's
// default when no listener is configured.
type NopListener struct{}

// OnStart returns a nil token.
func (NopListener) OnStart(*loop.EventLoop, *route.Route) any { return nil }

// OnSucceed does nothing.
func (NopListener) OnSucceed(*Context, any) {}

// OnFail does nothing.
func (NopListener) OnFail(*Context, error) {}

// CombineListeners fans lifecycle events out to several listeners,
// preserving the exactly-once contract for each. The combined OnStart token
// is the slice of the individual tokens, in the same order as the
// listeners.
//
// This is how the observability pillars stack: metrics, tracing, and
// access logging each stay a self-contained Listener.
func CombineListeners(listeners ...Listener) Listener {
	if len(listeners) == 1 {
		return listeners[0]
	}
	return multiListener(listeners)
}

type multiListener []Listener

func (m multiListener) OnStart(lp *loop.EventLoop, r *route.Route) any {
	tokens := make([]any, len(m))
	for i, l := range m {
		tokens[i] = l.OnStart(lp, r)
	}
	return tokens
}

// token returns the i-th listener's own token from the combined token.
func (m multiListener) token(c *Context, i int) any {
	if tokens, ok := c.ID().([]any); ok && i < len(tokens) {
		return tokens[i]
	}
	return nil
}

func (m multiListener) OnSucceed(c *Context, result any) {
	for i, l := range m {
		l.OnSucceed(c.withID(m.token(c, i)), result)
	}
}

func (m multiListener) OnFail(c *Context, reason error) {
	for i, l := range m {
		l.OnFail(c.withID(m.token(c, i)), reason)
	}
}
