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

import "rivaas.dev/dispatch/codec"

// Modifier is the build-time mutable view of a route under construction.
//
// Plugins receive a Modifier during ModifyRoute and use it to extend the
// route's parameter signature: appending path segments, appending query
// parameters, or claiming existing slots they will populate themselves at
// call time. All operations are append-only: an index handed out by any
// Modifier method is stable for the lifetime of the built route and equals
// the position in the runtime argument array.
//
// Modifiers are scoped strictly to the route-build phase. The router
// creates one per (route × plugin) invocation and discards it after the
// hook returns; holding on to a Modifier after ModifyRoute is a bug.
type Modifier struct {
	route *Route
}

// NewModifier creates a Modifier for the given route under construction.
func NewModifier(r *Route) *Modifier {
	return &Modifier{route: r}
}

// Len returns the current number of parameter slots.
func (m *Modifier) Len() int { return len(m.route.readers) }

// Readers returns a copy of the current parameter slot readers.
func (m *Modifier) Readers() []codec.Reader {
	out := make([]codec.Reader, len(m.route.readers))
	copy(out, m.route.readers)
	return out
}

// HasParameter returns the slot index of the first parameter whose reader
// reports the given kind, or false if the route declares none.
func (m *Modifier) HasParameter(kind codec.Kind) (int, bool) {
	for i, r := range m.route.readers {
		if r.Kind() == kind {
			return i, true
		}
	}
	return 0, false
}

// ProvideParameter marks an existing slot as plugin-supplied. The slot is
// excluded from request binding; the claiming plugin must populate it in
// its ModifyCall hook before continuing.
func (m *Modifier) ProvideParameter(slot int) error {
	if slot < 0 || slot >= len(m.route.provided) {
		return ErrSlotOutOfRange
	}
	m.route.provided[slot] = true
	return nil
}

// Provide locates the first parameter of the given kind and claims it.
//
// A route with no parameter of that kind is a configuration error: Provide
// returns *MissingParameterError and the router aborts registration. It
// never silently claims an unrelated slot.
func (m *Modifier) Provide(kind codec.Kind) (int, error) {
	slot, ok := m.HasParameter(kind)
	if !ok {
		return 0, &MissingParameterError{Kind: kind}
	}
	if err := m.ProvideParameter(slot); err != nil {
		return 0, err
	}
	return slot, nil
}

// AddPath appends path segments parsed from the given pattern fragment
// (same ":name" syntax as route declaration) and returns the slot index of
// the first newly typed segment, or -1 if the fragment is all literal.
//
// Appending never moves indices already handed out to earlier plugins.
func (m *Modifier) AddPath(fragment string) int {
	return m.route.appendSegments(parseSegments(fragment))
}

// AddArg appends a required query parameter and returns its slot index.
func (m *Modifier) AddArg(name string, reader codec.Reader) int {
	return m.route.appendQuery(Query{Name: name, Reader: reader})
}

// AddOptional appends an optional query parameter with a default value and
// returns its slot index.
func (m *Modifier) AddOptional(name string, reader codec.Reader, def any) int {
	return m.route.appendQuery(Query{Name: name, Reader: reader, Optional: true, Default: def})
}
