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

package codec

import (
	"fmt"
	"io"
)

// Kind identifies the wire shape a Reader decodes into.
//
// Kinds are the build-time lookup key used by plugins to claim parameter
// slots (route.Modifier.Provide). They form a closed, discriminated set;
// there is no runtime type inspection anywhere in the dispatch core.
type Kind uint8

const (
	// KindInvalid is the zero Kind. No built-in Reader reports it.
	KindInvalid Kind = iota

	// KindString is a raw string value.
	KindString

	// KindInt is a base-10 signed integer (platform int).
	KindInt

	// KindInt64 is a base-10 signed 64-bit integer.
	KindInt64

	// KindFloat is a decimal floating-point value (float64).
	KindFloat

	// KindBool is a boolean in strconv.ParseBool syntax.
	KindBool

	// KindTime is an RFC 3339 timestamp.
	KindTime

	// KindUUID is a canonical textual UUID.
	KindUUID

	// KindJSON is a JSON document decoded into a caller-chosen Go type.
	KindJSON
)

// String returns the kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindInt64:
		return "int64"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindUUID:
		return "uuid"
	case KindJSON:
		return "json"
	default:
		return "invalid"
	}
}

// Reader decodes one parameter value from its wire form.
//
// Decode handles textual sources (path segments, query string values).
// DecodeBody handles request bodies for parameters bound to the body slot.
// Both return the decoded value or a *DecodeError.
//
// Readers are stateless and safe for concurrent use; one Reader instance is
// shared by every call dispatched against the routes that declare it.
type Reader interface {
	// Kind reports the discriminated kind tag for build-time slot lookup.
	Kind() Kind

	// Decode decodes a value from a textual wire form.
	Decode(raw string) (any, error)

	// DecodeBody decodes a value from a raw request body.
	DecodeBody(body []byte) (any, error)
}

// Writer encodes a route result to an output stream.
//
// A route without a Writer produces no body. Writers are stateless and safe
// for concurrent use; any buffering state belongs to the destination stream,
// never to the Writer itself.
type Writer interface {
	// ContentType reports the media type of the encoded output.
	ContentType() string

	// Encode writes the encoded form of v to w.
	Encode(v any, w io.Writer) error
}

// DecodeError reports a malformed parameter value.
//
// It is a dedicated type so callers can separate bad input (a call-time
// binding failure) from configuration or handler failures.
type DecodeError struct {
	Kind  Kind   // expected wire shape
	Value string // offending input, truncated for diagnostics
	Err   error  // underlying parse error, may be nil
}

// maxValueDiag bounds how much of the offending input is echoed back.
const maxValueDiag = 64

func newDecodeError(kind Kind, raw string, err error) *DecodeError {
	if len(raw) > maxValueDiag {
		raw = raw[:maxValueDiag] + "..."
	}
	return &DecodeError{Kind: kind, Value: raw, Err: err}
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("codec: cannot decode %q as %s: %v", e.Value, e.Kind, e.Err)
	}
	return fmt.Sprintf("codec: cannot decode %q as %s", e.Value, e.Kind)
}

// Unwrap returns the underlying parse error.
func (e *DecodeError) Unwrap() error { return e.Err }
