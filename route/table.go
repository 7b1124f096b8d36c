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

// Table matches inbound calls to routes by method, path, and version.
//
// Routes are bucketed per method via a switch instead of a map to avoid
// string hashing on lookup. Within a bucket, matching walks declared
// segments against the concrete path elements; among shape matches, the
// route whose version equals the requested version wins.
//
// Table is written only during registration and warmup; after the router
// freezes, Match is safe for concurrent use without synchronization.
type Table struct {
	get    []*Route
	post   []*Route
	put    []*Route
	delete []*Route
}

// bucket returns the route list for the given method, or nil.
func (t *Table) bucket(method Method) []*Route {
	switch method {
	case MethodGet:
		return t.get
	case MethodPost:
		return t.post
	case MethodPut:
		return t.put
	case MethodDelete:
		return t.delete
	default:
		return nil
	}
}

// Add registers a route in its method bucket.
func (t *Table) Add(r *Route) {
	switch r.method {
	case MethodGet:
		t.get = append(t.get, r)
	case MethodPost:
		t.post = append(t.post, r)
	case MethodPut:
		t.put = append(t.put, r)
	case MethodDelete:
		t.delete = append(t.delete, r)
	}
}

// Routes returns every registered route across all buckets.
func (t *Table) Routes() []*Route {
	var out []*Route
	out = append(out, t.get...)
	out = append(out, t.post...)
	out = append(out, t.put...)
	out = append(out, t.delete...)
	return out
}

// Match finds the route for the given method, concrete path, and version.
// On success it returns the route and the raw text of each typed segment in
// typed-segment order, ready for decoding. Returns ErrNotFound when no
// route matches shape and version.
func (t *Table) Match(method Method, path string, version int) (*Route, []string, error) {
	elements := splitPath(path)

	for _, r := range t.bucket(method) {
		if r.version != version {
			continue
		}
		raw, ok := matchSegments(r.segments, elements)
		if ok {
			return r, raw, nil
		}
	}
	return nil, nil, ErrNotFound
}

// matchSegments walks declared segments against concrete path elements.
// Returns the raw values of parameter segments in order.
func matchSegments(segments []Segment, elements []string) ([]string, bool) {
	if len(segments) != len(elements) {
		return nil, false
	}

	var raw []string
	for i, s := range segments {
		if s.Param {
			raw = append(raw, elements[i])
			continue
		}
		if s.Value != elements[i] {
			return nil, false
		}
	}
	return raw, true
}
