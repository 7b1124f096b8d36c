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

import (
	"net/url"

	"rivaas.dev/dispatch/route"
)

// Call is one inbound request as seen by the dispatch core. The transport
// layer parses the wire protocol and hands the core a Call; the core never
// touches sockets or HTTP framing.
type Call struct {
	// Method is the request method (GET, POST, DELETE, PUT).
	Method route.Method

	// Path is the concrete request path, e.g. "/users/7".
	Path string

	// Version selects among routes sharing a path.
	Version int

	// Query holds the parsed query string parameters.
	Query url.Values

	// Body is the raw request body, nil if none.
	Body []byte

	// Channel is the opaque per-connection handle from the transport.
	Channel any

	// SourceIP is the source address reported by the transport.
	SourceIP string
}

// Result is the terminal outcome of a dispatched call, delivered exactly
// once to the completion callback passed to Dispatch.
type Result struct {
	// Value is the handler's (plugin-transformed) result on success.
	Value any

	// Body is the encoded response body, nil when the route has no
	// writer or the call failed.
	Body []byte

	// ContentType is the media type of Body.
	ContentType string

	// Err is non-nil when the call failed: route not found, a binding
	// error, a plugin chain error, a handler failure, a timeout, or a
	// result-encoding failure.
	Err error
}
