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

import "sync/atomic"

// Hook chaining.
//
// ModifyCall and ModifyResult hooks run strictly sequentially in plugin
// registration order: hook i+1 starts only after hook i's continuation has
// completed. A continuation may be invoked from any goroutine at any later
// time; the chain hops back onto the call's event loop before running the
// next hook, so every hook observes single-threaded execution.
//
// Each continuation is effective exactly once. A plugin invoking its
// continuation twice is a defect: the second invocation is ignored and
// logged. A plugin that never invokes its continuation leaves the call
// pending; the dispatcher's timeout guard (WithCallTimeout) is the only
// recovery from that.

// runCallChain runs the ModifyCall hooks for the call's plugins, then
// reports the chain outcome to done on the call's loop. An error from any
// hook skips the remaining hooks.
func runCallChain(c *Context, bindings []pluginBinding, done func(error)) {
	var step func(i int, err error)
	step = func(i int, err error) {
		if err != nil || i == len(bindings) {
			done(err)
			return
		}
		b := bindings[i]
		b.plugin.ModifyCall(b.pctx, c, c.args, c.once(b.plugin.Name(), "ModifyCall", func(err error) {
			step(i+1, err)
		}))
	}
	step(0, nil)
}

// runResultChain threads the handler's result through the ModifyResult
// hooks, then reports the final value or error to done on the call's loop.
func runResultChain(c *Context, bindings []pluginBinding, result any, done func(any, error)) {
	var step func(i int, v any, err error)
	step = func(i int, v any, err error) {
		if err != nil || i == len(bindings) {
			done(v, err)
			return
		}
		b := bindings[i]
		b.plugin.ModifyResult(b.pctx, c, v, c.onceResult(b.plugin.Name(), func(v any, err error) {
			step(i+1, v, err)
		}))
	}
	step(0, result, nil)
}

// once wraps a chain step as an exactly-once continuation that resumes on
// the call's loop.
func (c *Context) once(plugin, hook string, next func(error)) func(error) {
	var used atomic.Bool
	return func(err error) {
		if !used.CompareAndSwap(false, true) {
			c.logDoubleContinue(plugin, hook)
			return
		}
		c.schedule(func() { next(err) })
	}
}

// onceResult is the ModifyResult counterpart of once.
func (c *Context) onceResult(plugin string, next func(any, error)) ResultContinuation {
	var used atomic.Bool
	return func(v any, err error) {
		if !used.CompareAndSwap(false, true) {
			c.logDoubleContinue(plugin, "ModifyResult")
			return
		}
		c.schedule(func() { next(v, err) })
	}
}

func (c *Context) logDoubleContinue(plugin, hook string) {
	c.state.logger.Error("continuation invoked more than once",
		"plugin", plugin, "hook", hook, "route", c.rt.Pattern())
}
