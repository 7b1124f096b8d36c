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
	"rivaas.dev/dispatch/route"
	"rivaas.dev/dispatch/swagger"
)

// ResultContinuation is the exactly-once completion signal of a
// ModifyResult hook. The plugin passes the (possibly transformed) result
// forward, or a non-nil error to convert the call into a failure.
type ResultContinuation func(result any, err error)

// Plugin is a named extension that augments route construction and per-call
// behavior.
//
// Hook lifecycle per route: ModifyRoute runs exactly once at warmup,
// strictly before any call is dispatched, and returns the plugin's opaque
// context for that route. ModifySwagger runs during documentation
// generation only. ModifyCall and ModifyResult run once per inbound call.
//
// When several plugins are registered, hooks chain in registration order:
// a plugin's ModifyCall starts only after the previous plugin's continuation
// completed, and likewise for ModifyResult. A hook may defer its
// continuation (hand it to another goroutine and invoke it later) but
// must invoke it exactly once. A continuation invoked with a non-nil error
// skips the remaining hooks in that chain and fails the call.
//
// Plugin implementations must be safe for concurrent use: hooks for
// different calls run concurrently on different event loops. The context
// value produced at ModifyRoute is read-only for the route's lifetime.
//
// Embed Base to inherit pass-through defaults for hooks a plugin does not
// override.
type Plugin interface {
	// Name identifies the plugin. Names must be unique per router.
	Name() string

	// ModifyRoute extends the route's parameter signature through the
	// Modifier and returns the plugin's per-route context. Returning an
	// error aborts route registration.
	ModifyRoute(m *route.Modifier, properties []route.Property) (pluginContext any, err error)

	// ModifySwagger augments the generated documentation operation for a
	// route. It must not affect dispatch behavior.
	ModifySwagger(pluginContext any, op *swagger.Operation)

	// ModifyCall runs before the handler. The arguments slice shares the
	// route's parameter slot index space; the plugin writes only to slots
	// it claimed via the Modifier. Continue with nil to proceed, or with
	// an error to abort the call before the handler runs.
	ModifyCall(pluginContext any, c *Context, arguments []any, continueWith func(error))

	// ModifyResult runs after the handler finished successfully. The
	// plugin may pass the result through, replace it, or convert it into
	// a failure.
	ModifyResult(pluginContext any, c *Context, result any, continueWith ResultContinuation)
}

// Base provides pass-through defaults for every optional Plugin hook.
// Plugins embed it and override only the hooks they need:
//
//	type authPlugin struct {
//	    dispatch.Base
//	}
//
//	func (authPlugin) Name() string { return "auth" }
type Base struct{}

// ModifyRoute leaves the route unchanged and produces no context.
func (Base) ModifyRoute(*route.Modifier, []route.Property) (any, error) { return nil, nil }

// ModifySwagger leaves the operation unchanged.
func (Base) ModifySwagger(any, *swagger.Operation) {}

// ModifyCall continues immediately with no error.
func (Base) ModifyCall(_ any, _ *Context, _ []any, continueWith func(error)) {
	continueWith(nil)
}

// ModifyResult passes the result through unchanged.
func (Base) ModifyResult(_ any, _ *Context, result any, continueWith ResultContinuation) {
	continueWith(result, nil)
}

// pluginBinding pairs a plugin with the opaque context it produced for one
// route at warmup. Bindings are built once per route and shared read-only
// by every call against that route.
type pluginBinding struct {
	plugin Plugin
	pctx   any
}
