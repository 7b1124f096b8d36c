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
	"errors"
	"fmt"

	"rivaas.dev/dispatch/codec"
)

var (
	// ErrNotFound indicates that no route matches the requested
	// method, path, and version.
	ErrNotFound = errors.New("route not found")

	// ErrSlotOutOfRange indicates a parameter slot index outside the
	// route's reader list.
	ErrSlotOutOfRange = errors.New("parameter slot out of range")

	// ErrMissingParameter indicates that a required parameter was absent
	// from a call.
	ErrMissingParameter = errors.New("missing required parameter")
)

// MissingParameterError reports a failed Modifier.Provide: the plugin asked
// to claim a parameter of a kind the route does not declare.
//
// This is a startup-time configuration error, distinct from the generic
// slot/range failures, so callers aborting registration can name the exact
// kind that was requested.
type MissingParameterError struct {
	Kind codec.Kind
}

// Error implements the error interface.
func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("no parameter of kind %s to provide", e.Kind)
}
