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

// Package codec provides the value decode/encode capability used by the
// dispatch core for route parameters and results.
//
// A Reader decodes one parameter value from its wire form (a path segment,
// a query string value, or a request body). A Writer encodes a route result
// to an output stream. Readers carry a Kind tag so that plugins can locate
// parameter slots by kind at route-build time without reflection.
//
// Built-in readers cover the common wire shapes:
//
//	codec.String()   // raw string
//	codec.Int()      // base-10 int
//	codec.Int64()    // base-10 int64
//	codec.Float()    // float64
//	codec.Bool()     // strconv.ParseBool syntax
//	codec.Time()     // RFC 3339
//	codec.UUID()     // canonical UUID
//	codec.JSON[T]()  // JSON document decoded into T (also a Writer)
//
// Decode failures are reported as *DecodeError so callers can distinguish
// malformed input from other failures.
package codec
