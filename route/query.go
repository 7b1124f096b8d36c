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
	"hash/fnv"

	"rivaas.dev/dispatch/codec"
)

// Query is one declared query (or body) parameter of a route.
//
// Queries are immutable once the route freezes. The name hash is computed
// at declaration time so by-name lookups compare a uint32 before touching
// the string.
type Query struct {
	// Name is the query-string key (or a diagnostic name for body
	// parameters).
	Name string

	// Hash is the precomputed FNV-1a hash of Name.
	Hash uint32

	// Reader decodes the raw value.
	Reader codec.Reader

	// Optional reports whether the parameter may be absent.
	Optional bool

	// Default is the value bound when an optional parameter is absent.
	// Unused for required parameters.
	Default any

	// Description is optional documentation text.
	Description string

	// Slot is the parameter slot index this query binds to.
	Slot int
}

// hashName computes the FNV-1a hash of a query parameter name.
func hashName(name string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return h.Sum32()
}

// Property is a free-form (name, value) tag attached to a route at
// declaration time. Plugins filter properties by name during ModifyRoute
// and ModifySwagger; names are not required to be unique.
type Property struct {
	Name  string
	Value any
}

// PropertiesNamed returns the values of all properties with the given name,
// in declaration order.
func PropertiesNamed(props []Property, name string) []any {
	var out []any
	for _, p := range props {
		if p.Name == name {
			out = append(out, p.Value)
		}
	}
	return out
}
