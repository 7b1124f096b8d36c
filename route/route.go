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

package route

import (
	"rivaas.dev/dispatch/codec"
)

// Method is an HTTP method supported by the dispatch core.
type Method string

const (
	// MethodGet matches GET requests.
	MethodGet Method = "GET"
	// MethodPost matches POST requests.
	MethodPost Method = "POST"
	// MethodDelete matches DELETE requests.
	MethodDelete Method = "DELETE"
	// MethodPut matches PUT requests.
	MethodPut Method = "PUT"
)

// Handler is a type alias for the route handler function.
// In practice this is dispatch.Handler (func(*dispatch.Context,
// dispatch.Listener)). Using any here avoids the import cycle with the main
// dispatch package.
type Handler = any

// Route is the descriptor of one callable endpoint: method, version, path
// shape, parameter binding plan, result encoder, and handler.
//
// Routes use deferred registration: they are mutated fluently after
// creation and frozen by the router's Warmup. After freeze every accessor is
// safe for concurrent use and every mutator panics; routes live for the
// process lifetime and are shared read-only across all in-flight calls.
type Route struct {
	name        string
	description string
	tags        []string

	method   Method
	version  int
	path     string
	segments []Segment
	typed    []int // indexes into segments of parameter segments, in order
	queries  []Query

	// readers is the unified parameter slot space: one entry per typed
	// segment or query, appended in declaration order. Slot indices are
	// stable for the route's lifetime.
	readers  []codec.Reader
	provided []bool

	writer    codec.Writer
	bodyQuery int // index into queries, -1 if no body parameter

	handler    Handler
	properties []Property

	// pluginContexts holds, per registered plugin in registration order,
	// the opaque context value returned by that plugin's ModifyRoute.
	// The route only stores and forwards these values.
	pluginContexts []any

	frozen bool
}

// New creates a route for the given method, path pattern, and handler.
// Parameter segments (":name") bind string slots until retyped with Bind.
func New(method Method, path string, handler Handler) *Route {
	r := &Route{
		method:    method,
		path:      path,
		bodyQuery: -1,
		handler:   handler,
	}
	r.appendSegments(parseSegments(path))
	return r
}

// appendSegments attaches segments to the route, assigning parameter slots.
// Returns the slot of the first newly typed segment, or -1 if all literal.
func (r *Route) appendSegments(segments []Segment) int {
	first := -1
	for _, s := range segments {
		if s.Param {
			s.Slot = len(r.readers)
			if first == -1 {
				first = s.Slot
			}
			r.readers = append(r.readers, s.Reader)
			r.provided = append(r.provided, false)
			r.typed = append(r.typed, len(r.segments))
		}
		r.segments = append(r.segments, s)
	}
	return first
}

// appendQuery attaches a query parameter, assigning its slot.
func (r *Route) appendQuery(q Query) int {
	q.Hash = hashName(q.Name)
	q.Slot = len(r.readers)
	r.readers = append(r.readers, q.Reader)
	r.provided = append(r.provided, false)
	r.queries = append(r.queries, q)
	return q.Slot
}

// mutable panics if the route has been frozen.
func (r *Route) mutable() {
	if r.frozen {
		panic("route: cannot modify route after router warmup")
	}
}

// Bind retypes the named path parameter with the given reader.
// Panics if the route has no parameter segment with that name, or if the
// route is frozen. Returns the route for method chaining.
//
// Example:
//
//	r.GET("/users/:id", getUser).Bind("id", codec.Int())
func (r *Route) Bind(name string, reader codec.Reader) *Route {
	r.mutable()
	for _, i := range r.typed {
		if r.segments[i].Value == name {
			r.segments[i].Reader = reader
			r.readers[r.segments[i].Slot] = reader
			return r
		}
	}
	panic("route: no path parameter named " + name)
}

// Arg declares a required query parameter. Absence at call time is a
// binding error. Returns the route for method chaining.
func (r *Route) Arg(name string, reader codec.Reader) *Route {
	r.mutable()
	r.checkDuplicateQuery(name)
	r.appendQuery(Query{Name: name, Reader: reader})
	return r
}

// Optional declares an optional query parameter with a default value used
// when the parameter is absent. Returns the route for method chaining.
func (r *Route) Optional(name string, reader codec.Reader, def any) *Route {
	r.mutable()
	r.checkDuplicateQuery(name)
	r.appendQuery(Query{Name: name, Reader: reader, Optional: true, Default: def})
	return r
}

// Body declares a required parameter populated from the request body
// instead of the URL query string. A route has at most one body parameter.
// Returns the route for method chaining.
func (r *Route) Body(name string, reader codec.Reader) *Route {
	r.mutable()
	if r.bodyQuery != -1 {
		panic("route: body parameter already declared")
	}
	r.checkDuplicateQuery(name)
	r.appendQuery(Query{Name: name, Reader: reader})
	r.bodyQuery = len(r.queries) - 1
	return r
}

// DescribeArg sets documentation text on a declared query parameter.
// Panics if no query with that name exists.
func (r *Route) DescribeArg(name, description string) *Route {
	r.mutable()
	for i := range r.queries {
		if r.queries[i].Name == name {
			r.queries[i].Description = description
			return r
		}
	}
	panic("route: no query parameter named " + name)
}

// checkDuplicateQuery panics on a duplicate query declaration.
// Duplicates are a programming error caught at startup, matching the
// fail-fast treatment of invalid path patterns.
func (r *Route) checkDuplicateQuery(name string) {
	hash := hashName(name)
	for i := range r.queries {
		if r.queries[i].Hash == hash && r.queries[i].Name == name {
			panic("route: duplicate query parameter " + name)
		}
	}
}

// Returns sets the result encoder. A route without a writer produces no
// response body. Returns the route for method chaining.
func (r *Route) Returns(w codec.Writer) *Route {
	r.mutable()
	r.writer = w
	return r
}

// Version sets the route version. Routes sharing a path coexist when their
// versions differ. Returns the route for method chaining.
func (r *Route) Version(v int) *Route {
	r.mutable()
	r.version = v
	return r
}

// Property attaches a free-form (name, value) tag read by plugins during
// ModifyRoute and ModifySwagger. Returns the route for method chaining.
func (r *Route) Property(name string, value any) *Route {
	r.mutable()
	r.properties = append(r.properties, Property{Name: name, Value: value})
	return r
}

// SetName assigns a human-readable name used in diagnostics and listener
// output. Returns the route for method chaining.
func (r *Route) SetName(name string) *Route {
	r.mutable()
	r.name = name
	return r
}

// SetDescription sets an optional description for documentation generation.
// Returns the route for method chaining.
func (r *Route) SetDescription(desc string) *Route {
	r.mutable()
	r.description = desc
	return r
}

// SetTags adds categorization tags used in documentation.
// Returns the route for method chaining.
func (r *Route) SetTags(tags ...string) *Route {
	r.mutable()
	r.tags = append(r.tags, tags...)
	return r
}

// Freeze marks the route immutable and records the plugin contexts produced
// during warmup. Called by the router once all plugins have run ModifyRoute.
func (r *Route) Freeze(pluginContexts []any) {
	r.pluginContexts = pluginContexts
	r.frozen = true
}

// Frozen reports whether the route has been frozen.
func (r *Route) Frozen() bool { return r.frozen }

// Name returns the route name (empty if not named).
func (r *Route) Name() string { return r.name }

// Description returns the route description (empty if not set).
func (r *Route) Description() string { return r.description }

// Tags returns the route tags.
func (r *Route) Tags() []string { return r.tags }

// Method returns the HTTP method for this route.
func (r *Route) Method() Method { return r.method }

// VersionNumber returns the route version.
func (r *Route) VersionNumber() int { return r.version }

// Path returns the declared path pattern.
func (r *Route) Path() string { return r.path }

// Segments returns the declared path segments in order.
func (r *Route) Segments() []Segment { return r.segments }

// TypedSegments returns the parameter-binding subsequence of Segments,
// ordering preserved. Plugins use positional indexes into this slice.
func (r *Route) TypedSegments() []Segment {
	out := make([]Segment, len(r.typed))
	for i, idx := range r.typed {
		out[i] = r.segments[idx]
	}
	return out
}

// NumTyped returns the number of typed segments.
func (r *Route) NumTyped() int { return len(r.typed) }

// TypedSlot returns the parameter slot of the i-th typed segment.
func (r *Route) TypedSlot(i int) int { return r.segments[r.typed[i]].Slot }

// Queries returns the declared query parameters in order.
func (r *Route) Queries() []Query { return r.queries }

// QueryByName returns the index into Queries of the named parameter.
// The precomputed name hash is compared before the string.
func (r *Route) QueryByName(name string) (int, bool) {
	hash := hashName(name)
	for i := range r.queries {
		if r.queries[i].Hash == hash && r.queries[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// Readers returns the unified parameter slot readers. The returned slice
// must not be mutated.
func (r *Route) Readers() []codec.Reader { return r.readers }

// Provided reports whether the parameter slot is claimed by a plugin and
// therefore excluded from request binding.
func (r *Route) Provided(slot int) bool {
	return slot >= 0 && slot < len(r.provided) && r.provided[slot]
}

// Writer returns the result encoder, or nil if the route produces no body.
func (r *Route) Writer() codec.Writer { return r.writer }

// BodyQuery returns the index into Queries of the body-bound parameter.
func (r *Route) BodyQuery() (int, bool) {
	if r.bodyQuery == -1 {
		return 0, false
	}
	return r.bodyQuery, true
}

// Handler returns the registered handler.
func (r *Route) Handler() Handler { return r.handler }

// Properties returns the declared route properties.
func (r *Route) Properties() []Property { return r.properties }

// PluginContexts returns the per-plugin context values recorded at freeze,
// aligned with the router's plugin registration order.
func (r *Route) PluginContexts() []any { return r.pluginContexts }

// Pattern returns a diagnostic identifier of the form "GET /users/:id".
// Listeners use it as a low-cardinality label.
func (r *Route) Pattern() string {
	return string(r.method) + " " + r.path
}

// Info is an immutable snapshot of route metadata for introspection.
type Info struct {
	Name        string
	Method      Method
	Path        string
	Version     int
	Description string
	Tags        []string
	Params      []string // typed segment names, in slot order
	Queries     []string // query parameter names, in declaration order
}

// Info returns an introspection snapshot of the route.
func (r *Route) Info() Info {
	info := Info{
		Name:        r.name,
		Method:      r.method,
		Path:        r.path,
		Version:     r.version,
		Description: r.description,
		Tags:        append([]string(nil), r.tags...),
	}
	for _, i := range r.typed {
		info.Params = append(info.Params, r.segments[i].Value)
	}
	for i := range r.queries {
		info.Queries = append(info.Queries, r.queries[i].Name)
	}
	return info
}
