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
	"bytes"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"rivaas.dev/dispatch/loop"
	"rivaas.dev/dispatch/route"
)

// Context is the per-call bundle: transport identity, execution affinity,
// decoded parameter values, and a reference to the immutable route being
// executed.
//
// A Context is created fresh for each inbound call after route matching and
// is never reused. It is pinned to one event loop; handler code and plugin
// hooks for the call all run there, so no field needs locking. A call ends
// through exactly one of Finish or Fail.
type Context struct {
	channel  any
	sourceIP string
	lp       *loop.EventLoop
	rt       *route.Route
	id       any
	args     []any

	// state is shared by the token-scoped views handed to combined
	// listeners; guards and completion plumbing live here.
	state *callState
}

// callState carries the per-call completion machinery.
type callState struct {
	// completing guards the public Finish/Fail entry points.
	completing atomic.Bool
	// terminal guards the single listener notification and done call.
	terminal atomic.Bool

	listener Listener
	bindings []pluginBinding
	logger   *slog.Logger
	done     func(Result)
	timer    *time.Timer
}

// Channel returns the opaque transport channel handle for the call.
func (c *Context) Channel() any { return c.channel }

// SourceIP returns the source address reported by the transport.
func (c *Context) SourceIP() string { return c.sourceIP }

// Loop returns the event loop the call is pinned to.
func (c *Context) Loop() *loop.EventLoop { return c.lp }

// Route returns the route being executed.
func (c *Context) Route() *route.Route { return c.rt }

// ID returns the opaque correlation token produced by the listener's
// OnStart for this call.
func (c *Context) ID() any { return c.id }

// withID returns a view of the context carrying a different correlation
// token. Used by combined listeners so each sees its own token.
func (c *Context) withID(id any) *Context {
	view := *c
	view.id = id
	return &view
}

// Arguments returns the call's parameter array. Indices are the stable
// slots assigned at route-build time. Plugins mutate only the slots they
// claimed; the handler reads the fully populated array.
func (c *Context) Arguments() []any { return c.args }

// Argument returns the value bound to the given parameter slot.
func (c *Context) Argument(slot int) any { return c.args[slot] }

// SetArgument overwrites the value at the given parameter slot. Intended
// for plugins populating slots they claimed via the route Modifier.
func (c *Context) SetArgument(slot int, v any) { c.args[slot] = v }

// PathValue returns the decoded value of the i-th typed path segment.
func (c *Context) PathValue(i int) any { return c.args[c.rt.TypedSlot(i)] }

// QueryValue returns the decoded value bound to the given parameter slot.
// For declared queries this equals Argument(q.Slot).
func (c *Context) QueryValue(slot int) any { return c.args[slot] }

// Finish completes the call with a result. The plugin result chain runs in
// registration order, the listener is notified, and the result is encoded
// with the route's writer (no body if the route has none).
//
// Finish may be called from any goroutine; processing hops to the call's
// loop. Calling Finish or Fail more than once is a handler bug: later
// calls are ignored and logged.
func (c *Context) Finish(v any) {
	if !c.state.completing.CompareAndSwap(false, true) {
		c.logDuplicate("Finish")
		return
	}
	c.schedule(func() {
		runResultChain(c, c.state.bindings, v, func(v any, err error) {
			if err != nil {
				c.fail(err)
				return
			}
			c.succeed(v)
		})
	})
}

// Fail completes the call with a failure. The result chain is skipped, the
// listener's OnFail fires, and the failure is reported to the dispatcher's
// completion callback. Like Finish, Fail may be called from any goroutine
// and is effective at most once.
func (c *Context) Fail(reason error) {
	if !c.state.completing.CompareAndSwap(false, true) {
		c.logDuplicate("Fail")
		return
	}
	c.schedule(func() { c.fail(reason) })
}

// failNow terminates the call from inside the dispatcher (binding errors,
// chain errors, handler panics). It claims the completion guard so a
// late Finish/Fail from a misbehaving handler is ignored.
func (c *Context) failNow(reason error) {
	c.state.completing.Store(true)
	c.fail(reason)
}

// expire is the timeout guard's terminal path. It bypasses the completion
// guard: a call whose chain never continued still must fail exactly once.
func (c *Context) expire() {
	c.fail(ErrCallTimeout)
}

// fail performs the terminal failure transition. Runs on the call's loop.
func (c *Context) fail(reason error) {
	if !c.state.terminal.CompareAndSwap(false, true) {
		return
	}
	c.stopTimer()
	c.state.listener.OnFail(c, reason)
	c.state.done(Result{Err: reason})
}

// succeed performs the terminal success transition: listener first, then
// result encoding. Runs on the call's loop.
func (c *Context) succeed(v any) {
	if !c.state.terminal.CompareAndSwap(false, true) {
		return
	}
	c.stopTimer()
	c.state.listener.OnSucceed(c, v)

	res := Result{Value: v}
	if w := c.rt.Writer(); w != nil {
		var buf bytes.Buffer
		if err := w.Encode(v, &buf); err != nil {
			res.Err = fmt.Errorf("encode result: %w", err)
		} else {
			res.Body = buf.Bytes()
			res.ContentType = w.ContentType()
		}
	}
	c.state.done(res)
}

func (c *Context) stopTimer() {
	if c.state.timer != nil {
		c.state.timer.Stop()
	}
}

// schedule queues fn on the call's loop, preserving execution affinity for
// work triggered from foreign goroutines.
func (c *Context) schedule(fn func()) {
	if err := c.lp.Schedule(fn); err != nil {
		c.state.logger.Error("cannot schedule on call loop",
			"loop", c.lp.Name(), "route", c.rt.Pattern(), "error", err)
	}
}

func (c *Context) logDuplicate(op string) {
	c.state.logger.Error("call completed more than once",
		"op", op, "route", c.rt.Pattern())
}
