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

// Package route defines the immutable route descriptor, the build-time
// Modifier used by plugins to extend a route's parameter signature, and the
// method/path/version table used to match inbound calls.
//
// A Route is created once at registration, mutated fluently until the
// router's warmup freezes it, and is read-only for the rest of the process
// lifetime. Every parameter (typed path segment, query parameter, or
// plugin-provided value) occupies one stable slot in the route's reader
// list; slot indices assigned at build time never move.
package route
