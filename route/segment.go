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
	"strings"

	"rivaas.dev/dispatch/codec"
)

// Segment is one element of a route's declared path.
//
// A literal segment matches its text exactly. A parameter segment (declared
// with the :name syntax) matches any single path element and binds the raw
// text to a parameter slot through its Reader.
type Segment struct {
	// Value is the literal text for static segments, or the parameter
	// name (without ":") for parameter segments.
	Value string

	// Param reports whether this segment binds a parameter.
	Param bool

	// Reader decodes the matched text. Nil for literal segments.
	Reader codec.Reader

	// Slot is the parameter slot index, or -1 for literal segments.
	Slot int
}

// parseSegments parses a path pattern into segments.
// Parameter segments default to the string reader until Bind retypes them.
// Example: "/users/:id" -> [{users}, {id, param}].
func parseSegments(path string) []Segment {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}

	var segments []Segment
	for _, part := range strings.Split(trimmed, "/") {
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, ":") {
			segments = append(segments, Segment{
				Value:  part[1:],
				Param:  true,
				Reader: codec.String(),
				Slot:   -1, // assigned when attached to a route
			})
		} else {
			segments = append(segments, Segment{Value: part, Slot: -1})
		}
	}

	return segments
}

// splitPath splits a concrete request path into its elements.
// "/" and "" both split to nil.
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
