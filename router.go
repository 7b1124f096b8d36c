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
	"fmt"
	"log/slog"
	"sync"
	"time"

	"rivaas.dev/dispatch/loop"
	"rivaas.dev/dispatch/route"
	"rivaas.dev/dispatch/swagger"
)

// Handler executes one matched call. It reads decoded parameters from the
// Context's argument array and must complete the call through exactly one
// of Context.Finish or Context.Fail, synchronously or later, after
// deferred work on another goroutine.
type Handler func(c *Context, l Listener)

// Router is the dispatch orchestrator: it owns the route table, the plugin
// registration order, and the listener, and drives every inbound call
// through binding, the plugin chains, the handler, and outcome reporting.
//
// Routes are registered at startup and frozen by Warmup (run explicitly or
// implicitly on the first dispatched call). After freeze the Router is
// immutable and safe for concurrent use from any number of event loops.
type Router struct {
	plugins     []Plugin
	listener    Listener
	logger      *slog.Logger
	callTimeout time.Duration

	mu      sync.Mutex
	pending []*route.Route
	table   route.Table
	// bindings maps each frozen route to its plugin/context pairs, in
	// plugin registration order.
	bindings map[*route.Route][]pluginBinding

	warmupOnce sync.Once
	warmupErr  error
	warmed     bool
}

// New creates a Router with the given options. Duplicate plugin names are
// a startup-time configuration error.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		listener: NopListener{},
		logger:   slog.Default(),
		bindings: make(map[*route.Route][]pluginBinding),
	}
	for _, opt := range opts {
		opt(r)
	}

	seen := make(map[string]struct{}, len(r.plugins))
	for _, p := range r.plugins {
		if _, dup := seen[p.Name()]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlugin, p.Name())
		}
		seen[p.Name()] = struct{}{}
	}

	return r, nil
}

// MustNew creates a Router and panics on configuration errors.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("dispatch: failed to create router: %v", err))
	}
	return r
}

// GET registers a route matching GET calls on the given path pattern.
// Returns the route for fluent parameter and metadata declaration.
//
// Example:
//
//	r.GET("/users/:id", getUser).
//	    Bind("id", codec.Int()).
//	    Returns(codec.JSON[User]())
func (r *Router) GET(path string, handler Handler) *route.Route {
	return r.register(route.MethodGet, path, handler)
}

// POST registers a route matching POST calls on the given path pattern.
func (r *Router) POST(path string, handler Handler) *route.Route {
	return r.register(route.MethodPost, path, handler)
}

// PUT registers a route matching PUT calls on the given path pattern.
func (r *Router) PUT(path string, handler Handler) *route.Route {
	return r.register(route.MethodPut, path, handler)
}

// DELETE registers a route matching DELETE calls on the given path pattern.
func (r *Router) DELETE(path string, handler Handler) *route.Route {
	return r.register(route.MethodDelete, path, handler)
}

func (r *Router) register(method route.Method, path string, handler Handler) *route.Route {
	if handler == nil {
		panic("dispatch: " + ErrNilHandler.Error())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.warmed {
		panic("dispatch: cannot register routes after warmup")
	}

	rt := route.New(method, path, handler)
	r.pending = append(r.pending, rt)
	return rt
}

// Warmup freezes route registration: every plugin's ModifyRoute runs, in
// registration order, once per pending route; plugin contexts are cached;
// routes become immutable and enter the match table.
//
// Warmup runs at most once. A configuration error (an unresolvable
// Provide, a failing ModifyRoute) aborts startup and is returned from
// every subsequent Warmup and Dispatch. Dispatch warms up implicitly, but
// calling Warmup during startup surfaces configuration errors early.
func (r *Router) Warmup() error {
	r.warmupOnce.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.warmupErr = r.freezeRoutes()
		r.warmed = true
	})
	return r.warmupErr
}

// freezeRoutes runs the build-time plugin protocol for each pending route.
// Caller holds r.mu.
func (r *Router) freezeRoutes() error {
	for _, rt := range r.pending {
		contexts := make([]any, len(r.plugins))
		for i, p := range r.plugins {
			pctx, err := p.ModifyRoute(route.NewModifier(rt), rt.Properties())
			if err != nil {
				return fmt.Errorf("plugin %q: route %s: %w", p.Name(), rt.Pattern(), err)
			}
			contexts[i] = pctx
		}
		rt.Freeze(contexts)

		bindings := make([]pluginBinding, len(r.plugins))
		for i, p := range r.plugins {
			bindings[i] = pluginBinding{plugin: p, pctx: contexts[i]}
		}
		r.bindings[rt] = bindings
		r.table.Add(rt)
	}
	r.pending = nil
	return nil
}

// Routes returns introspection snapshots of all frozen routes.
func (r *Router) Routes() ([]route.Info, error) {
	if err := r.Warmup(); err != nil {
		return nil, err
	}
	var infos []route.Info
	for _, rt := range r.table.Routes() {
		infos = append(infos, rt.Info())
	}
	return infos, nil
}

// Swagger generates the documentation side channel: a Swagger document
// built from route metadata, with each plugin's ModifySwagger hook applied
// to each operation. Generation never mutates routes or affects dispatch.
func (r *Router) Swagger(info swagger.Info) (*swagger.Document, error) {
	if err := r.Warmup(); err != nil {
		return nil, err
	}

	routes := r.table.Routes()
	doc := swagger.Generate(info, routes)
	for _, rt := range routes {
		op := doc.OperationFor(rt)
		if op == nil {
			continue
		}
		contexts := rt.PluginContexts()
		for i, p := range r.plugins {
			p.ModifySwagger(contexts[i], op)
		}
	}
	return doc, nil
}

// Dispatch drives one inbound call to completion on the given event loop.
//
// The completion callback receives the call's Result exactly once, on the
// loop. Dispatch itself returns immediately; matching, binding, plugin
// chains, and the handler all run as loop work.
func (r *Router) Dispatch(lp *loop.EventLoop, call *Call, done func(Result)) {
	if err := lp.Schedule(func() { r.dispatch(lp, call, done) }); err != nil {
		done(Result{Err: err})
	}
}

// dispatch runs on the call's loop.
func (r *Router) dispatch(lp *loop.EventLoop, call *Call, done func(Result)) {
	if err := r.Warmup(); err != nil {
		done(Result{Err: err})
		return
	}

	rt, raw, err := r.table.Match(call.Method, call.Path, call.Version)
	if err != nil {
		done(Result{Err: fmt.Errorf("%s %s v%d: %w", call.Method, call.Path, call.Version, err)})
		return
	}

	// Listener first: OnStart precedes parameter binding so even binding
	// failures are observed with a correlated token.
	id := r.listener.OnStart(lp, rt)

	c := &Context{
		channel:  call.Channel,
		sourceIP: call.SourceIP,
		lp:       lp,
		rt:       rt,
		id:       id,
		args:     make([]any, len(rt.Readers())),
		state: &callState{
			listener: r.listener,
			bindings: r.bindings[rt],
			logger:   r.logger,
			done:     done,
		},
	}
	if r.callTimeout > 0 {
		c.state.timer = lp.ScheduleAfter(r.callTimeout, c.expire)
	}

	if err := bindParameters(rt, c, call, raw); err != nil {
		c.failNow(err)
		return
	}

	runCallChain(c, c.state.bindings, func(err error) {
		if err != nil {
			c.failNow(err)
			return
		}
		r.invoke(rt, c)
	})
}

// invoke runs the route handler, converting panics into call failures.
func (r *Router) invoke(rt *route.Route, c *Context) {
	defer func() {
		if p := recover(); p != nil {
			c.failNow(fmt.Errorf("%w: %v", ErrHandlerPanic, p))
		}
	}()
	rt.Handler().(Handler)(c, r.listener)
}

// bindParameters decodes path, query, and body parameters into the call's
// argument array. Plugin-provided slots are skipped; their owners fill
// them during the ModifyCall chain. Any failure here aborts the call before
// the handler runs.
func bindParameters(rt *route.Route, c *Context, call *Call, raw []string) error {
	typed := rt.TypedSegments()
	for i, seg := range typed {
		slot := seg.Slot
		if rt.Provided(slot) {
			continue
		}
		v, err := seg.Reader.Decode(raw[i])
		if err != nil {
			return fmt.Errorf("path parameter %q: %w", seg.Value, err)
		}
		c.args[slot] = v
	}

	bodyIdx, hasBody := rt.BodyQuery()
	for qi, q := range rt.Queries() {
		if rt.Provided(q.Slot) {
			continue
		}

		if hasBody && qi == bodyIdx {
			if len(call.Body) == 0 {
				if q.Optional {
					c.args[q.Slot] = q.Default
					continue
				}
				return fmt.Errorf("body parameter %q: %w", q.Name, route.ErrMissingParameter)
			}
			v, err := q.Reader.DecodeBody(call.Body)
			if err != nil {
				return fmt.Errorf("body parameter %q: %w", q.Name, err)
			}
			c.args[q.Slot] = v
			continue
		}

		values, ok := call.Query[q.Name]
		if !ok || len(values) == 0 {
			if q.Optional {
				c.args[q.Slot] = q.Default
				continue
			}
			return fmt.Errorf("query parameter %q: %w", q.Name, route.ErrMissingParameter)
		}
		v, err := q.Reader.Decode(values[0])
		if err != nil {
			return fmt.Errorf("query parameter %q: %w", q.Name, err)
		}
		c.args[q.Slot] = v
	}

	return nil
}
