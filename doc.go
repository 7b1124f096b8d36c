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

// Package dispatch is the request-routing and dispatch core of the Rivaas
// server stack: it matches an inbound call to a route, assembles handler
// parameters from path, query, and body data, lets plugins extend routes at
// build time and inject parameters or transform results per call, and
// reports every call's outcome through listeners.
//
// # Routes and parameters
//
// A route is registered once at startup and frozen by Warmup:
//
//	r := dispatch.MustNew(
//	    dispatch.WithListener(accesslog.New()),
//	)
//	r.GET("/users/:id", getUser).
//	    Bind("id", codec.Int()).
//	    Optional("expand", codec.Bool(), false).
//	    Returns(codec.JSON[User]())
//
// Every parameter (typed path segment, query parameter, body parameter,
// or plugin-provided value) occupies one stable slot in the route's
// argument array. Handlers and plugins address parameters by slot index;
// indices assigned at build time never move.
//
// # Plugins
//
// A plugin implements up to four hooks. ModifyRoute runs once per route at
// warmup and may extend the parameter signature through the route Modifier;
// the opaque context it returns is threaded unchanged into every per-call
// hook. ModifyCall and ModifyResult run on every call, chained in plugin
// registration order, each completing through an exactly-once continuation
// that may be deferred across goroutines. ModifySwagger augments generated
// documentation and never affects dispatch.
//
// # Execution model
//
// Each call is pinned to one event loop (package loop). Hooks, handler,
// and continuations for a call all run on that loop, so per-call state is
// never locked. Routes and plugin contexts are immutable after warmup and
// shared freely across loops.
//
// Every dispatched call ends in exactly one of two ways, Finish or Fail,
// and its listener sees exactly one OnStart followed by exactly one of
// OnSucceed or OnFail.
package dispatch
