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
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/dispatch/codec"
	"rivaas.dev/dispatch/route"
)

// orderPlugin appends trace entries so tests can assert hook ordering.
type orderPlugin struct {
	Base
	name  string
	trace *callTrace
}

type callTrace struct {
	mu      sync.Mutex
	entries []string
}

func (t *callTrace) add(entry string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
}

func (t *callTrace) all() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.entries...)
}

func (p *orderPlugin) Name() string { return p.name }

func (p *orderPlugin) ModifyRoute(m *route.Modifier, _ []route.Property) (any, error) {
	p.trace.add(p.name + ":route")
	return nil, nil
}

func (p *orderPlugin) ModifyCall(_ any, _ *Context, _ []any, continueWith func(error)) {
	p.trace.add(p.name + ":call")
	continueWith(nil)
}

func (p *orderPlugin) ModifyResult(_ any, _ *Context, result any, continueWith ResultContinuation) {
	p.trace.add(p.name + ":result")
	continueWith(result, nil)
}

func TestPluginChainRegistrationOrder(t *testing.T) {
	t.Parallel()

	trace := &callTrace{}
	r := MustNew(
		WithPlugin(&orderPlugin{name: "p1", trace: trace}),
		WithPlugin(&orderPlugin{name: "p2", trace: trace}),
	)
	r.GET("/ping", func(c *Context, _ Listener) {
		trace.add("handler")
		c.Finish("pong")
	})

	res := dispatchWait(t, r, newLoop(t), &Call{Method: route.MethodGet, Path: "/ping"})
	require.NoError(t, res.Err)

	assert.Equal(t, []string{
		"p1:route", "p2:route",
		"p1:call", "p2:call",
		"handler",
		"p1:result", "p2:result",
	}, trace.all())
}

// sessionPlugin claims a declared parameter slot and injects a value at
// call time, the way an auth plugin supplies a verified principal.
type sessionPlugin struct {
	Base
	value any
}

func (sessionPlugin) Name() string { return "session" }

func (p sessionPlugin) ModifyRoute(m *route.Modifier, _ []route.Property) (any, error) {
	slot, err := m.Provide(codec.KindString)
	if err != nil {
		return nil, err
	}
	return slot, nil
}

func (p sessionPlugin) ModifyCall(pctx any, _ *Context, arguments []any, continueWith func(error)) {
	arguments[pctx.(int)] = p.value
	continueWith(nil)
}

func TestPluginProvidesParameter(t *testing.T) {
	t.Parallel()

	r := MustNew(WithPlugin(sessionPlugin{value: "injected"}))
	r.GET("/me", func(c *Context, _ Listener) {
		c.Finish(c.Argument(0))
	}).Arg("session", codec.String())

	res := dispatchWait(t, r, newLoop(t), &Call{Method: route.MethodGet, Path: "/me"})

	require.NoError(t, res.Err)
	assert.Equal(t, "injected", res.Value, "provided slots bypass request binding")
}

func TestPluginProvideMissingKindFailsWarmup(t *testing.T) {
	t.Parallel()

	r := MustNew(WithPlugin(sessionPlugin{value: "x"}))
	r.GET("/bare", func(c *Context, _ Listener) { c.Finish(nil) })

	err := r.Warmup()
	var missing *route.MissingParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, codec.KindString, missing.Kind)
	assert.Contains(t, err.Error(), "session", "warmup error names the failing plugin")
}

// addsQueryPlugin extends the route signature with its own query parameter.
type addsQueryPlugin struct {
	Base
}

func (addsQueryPlugin) Name() string { return "pagination" }

func (addsQueryPlugin) ModifyRoute(m *route.Modifier, _ []route.Property) (any, error) {
	return m.AddOptional("page", codec.Int(), 1), nil
}

func TestPluginAddedParameterBindsFromRequest(t *testing.T) {
	t.Parallel()

	r := MustNew(WithPlugin(addsQueryPlugin{}))

	var seen any
	r.GET("/items/:name", func(c *Context, _ Listener) {
		// Slot 0 is the declared path parameter, slot 1 the plugin's query.
		seen = c.Argument(1)
		c.Finish(c.PathValue(0))
	}).Bind("name", codec.String())

	lp := newLoop(t)

	res := dispatchWait(t, r, lp, &Call{Method: route.MethodGet, Path: "/items/widget"})
	require.NoError(t, res.Err)
	assert.Equal(t, "widget", res.Value)
	assert.Equal(t, 1, seen, "absent optional falls back to the default")
}

// abortPlugin fails every call before the handler.
type abortPlugin struct {
	Base
	reason error
}

func (abortPlugin) Name() string { return "abort" }

func (p abortPlugin) ModifyCall(_ any, _ *Context, _ []any, continueWith func(error)) {
	continueWith(p.reason)
}

func TestPluginCallErrorShortCircuits(t *testing.T) {
	t.Parallel()

	denied := errors.New("access denied")
	trace := &callTrace{}
	r := MustNew(
		WithPlugin(abortPlugin{reason: denied}),
		WithPlugin(&orderPlugin{name: "p2", trace: trace}),
	)

	handled := false
	r.GET("/secret", func(c *Context, _ Listener) {
		handled = true
		c.Finish(nil)
	})

	res := dispatchWait(t, r, newLoop(t), &Call{Method: route.MethodGet, Path: "/secret"})

	require.ErrorIs(t, res.Err, denied)
	assert.False(t, handled)
	assert.NotContains(t, trace.all(), "p2:call", "later plugins are skipped on abort")
}

// rewritePlugin replaces the handler result in ModifyResult.
type rewritePlugin struct {
	Base
	wrap func(any) any
}

func (rewritePlugin) Name() string { return "rewrite" }

func (p rewritePlugin) ModifyResult(_ any, _ *Context, result any, continueWith ResultContinuation) {
	continueWith(p.wrap(result), nil)
}

func TestPluginResultTransform(t *testing.T) {
	t.Parallel()

	r := MustNew(WithPlugin(rewritePlugin{
		wrap: func(v any) any { return fmt.Sprintf("<%v>", v) },
	}))
	r.GET("/greet", func(c *Context, _ Listener) { c.Finish("hello") })

	res := dispatchWait(t, r, newLoop(t), &Call{Method: route.MethodGet, Path: "/greet"})

	require.NoError(t, res.Err)
	assert.Equal(t, "<hello>", res.Value)
}

// failResultPlugin converts every success into a failure.
type failResultPlugin struct {
	Base
	reason error
}

func (failResultPlugin) Name() string { return "fail-result" }

func (p failResultPlugin) ModifyResult(_ any, _ *Context, _ any, continueWith ResultContinuation) {
	continueWith(nil, p.reason)
}

func TestPluginResultErrorFailsCall(t *testing.T) {
	t.Parallel()

	tainted := errors.New("result rejected")
	listener := NewRecordingListener()
	r := MustNew(
		WithPlugin(failResultPlugin{reason: tainted}),
		WithListener(listener),
	)
	r.GET("/ok", func(c *Context, _ Listener) { c.Finish("fine") })

	res := dispatchWait(t, r, newLoop(t), &Call{Method: route.MethodGet, Path: "/ok"})

	require.ErrorIs(t, res.Err, tainted)
	assert.Empty(t, listener.Succeeds())
	require.Len(t, listener.Fails(), 1)
}

// deferredPlugin hands its continuation to another goroutine.
type deferredPlugin struct {
	Base
	delay time.Duration
}

func (deferredPlugin) Name() string { return "deferred" }

func (p deferredPlugin) ModifyCall(_ any, _ *Context, _ []any, continueWith func(error)) {
	go func() {
		time.Sleep(p.delay)
		continueWith(nil)
	}()
}

func TestPluginDeferredContinuation(t *testing.T) {
	t.Parallel()

	trace := &callTrace{}
	r := MustNew(
		WithPlugin(deferredPlugin{delay: 10 * time.Millisecond}),
		WithPlugin(&orderPlugin{name: "p2", trace: trace}),
	)
	r.GET("/async", func(c *Context, _ Listener) {
		trace.add("handler")
		c.Finish("done")
	})

	res := dispatchWait(t, r, newLoop(t), &Call{Method: route.MethodGet, Path: "/async"})

	require.NoError(t, res.Err)
	assert.Equal(t, "done", res.Value)
	assert.Equal(t, []string{"p2:call", "handler", "p2:result"}, trace.all(),
		"chain resumes in order after the deferred continuation")
}

// doublePlugin invokes its continuation twice; the second must be ignored.
type doublePlugin struct {
	Base
}

func (doublePlugin) Name() string { return "double" }

func (doublePlugin) ModifyCall(_ any, _ *Context, _ []any, continueWith func(error)) {
	continueWith(nil)
	continueWith(errors.New("late abort"))
}

func TestPluginDuplicateContinuationIgnored(t *testing.T) {
	t.Parallel()

	listener := NewRecordingListener()
	r := MustNew(WithPlugin(doublePlugin{}), WithListener(listener))

	calls := 0
	r.GET("/once", func(c *Context, _ Listener) {
		calls++
		c.Finish("ok")
	})

	res := dispatchWait(t, r, newLoop(t), &Call{Method: route.MethodGet, Path: "/once"})

	require.NoError(t, res.Err, "the late error continuation is discarded")
	assert.Equal(t, 1, calls)
	require.Len(t, listener.Succeeds(), 1)
	assert.Empty(t, listener.Fails())
}

// contextPlugin verifies the warmup-built plugin context reaches call hooks.
type contextPlugin struct {
	Base
	got chan any
}

func (contextPlugin) Name() string { return "ctx" }

func (contextPlugin) ModifyRoute(_ *route.Modifier, properties []route.Property) (any, error) {
	return route.PropertiesNamed(properties, "tenant"), nil
}

func (p contextPlugin) ModifyCall(pctx any, _ *Context, _ []any, continueWith func(error)) {
	p.got <- pctx
	continueWith(nil)
}

func TestPluginContextFlowsFromWarmupToCall(t *testing.T) {
	t.Parallel()

	got := make(chan any, 1)
	r := MustNew(WithPlugin(contextPlugin{got: got}))
	r.GET("/t", func(c *Context, _ Listener) { c.Finish(nil) }).
		Property("tenant", "acme")

	res := dispatchWait(t, r, newLoop(t), &Call{Method: route.MethodGet, Path: "/t"})
	require.NoError(t, res.Err)

	select {
	case pctx := <-got:
		values, ok := pctx.([]any)
		require.True(t, ok)
		assert.Equal(t, []any{"acme"}, values)
	default:
		t.Fatal("plugin context never reached ModifyCall")
	}
}
