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

import "errors"

var (
	// ErrDuplicatePlugin indicates that two registered plugins share a name.
	ErrDuplicatePlugin = errors.New("duplicate plugin name")

	// ErrCallTimeout indicates that a call did not reach a terminal
	// outcome within the router's call timeout.
	ErrCallTimeout = errors.New("call timed out")

	// ErrHandlerPanic indicates that a route handler panicked.
	ErrHandlerPanic = errors.New("handler panicked")

	// ErrNilHandler indicates a route was registered without a handler.
	ErrNilHandler = errors.New("route handler must not be nil")
)
