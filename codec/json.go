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
	"encoding/json"
	"io"
)

// JSON returns a codec that decodes JSON documents into T and encodes T
// (or any value) back out as JSON. It satisfies both Reader and Writer, so
// the same instance can serve a body parameter and a route result.
//
// Example:
//
//	type CreateUser struct {
//	    Name  string `json:"name"`
//	    Email string `json:"email"`
//	}
//
//	body := codec.JSON[CreateUser]()
//	out := codec.JSON[User]()
func JSON[T any]() JSONCodec[T] { return JSONCodec[T]{} }

// JSONCodec is the Reader/Writer returned by JSON.
type JSONCodec[T any] struct{}

// Kind reports KindJSON.
func (JSONCodec[T]) Kind() Kind { return KindJSON }

// Decode decodes a JSON document from a textual wire form.
func (c JSONCodec[T]) Decode(raw string) (any, error) {
	return c.DecodeBody([]byte(raw))
}

// DecodeBody decodes a JSON document from a raw request body.
func (JSONCodec[T]) DecodeBody(body []byte) (any, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, newDecodeError(KindJSON, string(body), err)
	}
	return v, nil
}

// ContentType reports "application/json".
func (JSONCodec[T]) ContentType() string { return "application/json" }

// Encode writes v as JSON to w.
func (JSONCodec[T]) Encode(v any, w io.Writer) error {
	return json.NewEncoder(w).Encode(v)
}

// Text returns a Writer that writes results with fmt-style string
// conversion and a text/plain content type. Useful for health endpoints and
// handlers that finish with plain strings.
func Text() Writer { return textWriter{} }

type textWriter struct{}

func (textWriter) ContentType() string { return "text/plain; charset=utf-8" }

func (textWriter) Encode(v any, w io.Writer) error {
	switch s := v.(type) {
	case string:
		_, err := io.WriteString(w, s)
		return err
	case []byte:
		_, err := w.Write(s)
		return err
	default:
		return json.NewEncoder(w).Encode(v)
	}
}
