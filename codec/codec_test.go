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
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderDecode(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("a2b7cdd2-bfc0-4f6c-bf8f-17bc39f63c93")
	ts := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		reader Reader
		kind   Kind
		raw    string
		want   any
	}{
		{"string", String(), KindString, "hello", "hello"},
		{"int", Int(), KindInt, "42", 42},
		{"int negative", Int(), KindInt, "-7", -7},
		{"int64", Int64(), KindInt64, "9007199254740993", int64(9007199254740993)},
		{"float", Float(), KindFloat, "3.25", 3.25},
		{"bool true", Bool(), KindBool, "true", true},
		{"bool numeric", Bool(), KindBool, "0", false},
		{"time", Time(), KindTime, "2024-06-01T12:30:00Z", ts},
		{"uuid", UUID(), KindUUID, id.String(), id},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.kind, tt.reader.Kind())

			got, err := tt.reader.Decode(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReaderDecodeMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		reader Reader
		kind   Kind
		raw    string
	}{
		{"int", Int(), KindInt, "abc"},
		{"int64", Int64(), KindInt64, "12.5"},
		{"float", Float(), KindFloat, "NaNope"},
		{"bool", Bool(), KindBool, "maybe"},
		{"time", Time(), KindTime, "yesterday"},
		{"uuid", UUID(), KindUUID, "not-a-uuid"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.reader.Decode(tt.raw)
			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, tt.kind, decodeErr.Kind)
			assert.Equal(t, tt.raw, decodeErr.Value)
		})
	}
}

func TestDecodeErrorTruncatesLongValues(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 200)
	_, err := Int().Decode(long)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Len(t, decodeErr.Value, maxValueDiag+3)
	assert.True(t, strings.HasSuffix(decodeErr.Value, "..."))
}

func TestJSONCodec(t *testing.T) {
	t.Parallel()

	type user struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	c := JSON[user]()
	assert.Equal(t, KindJSON, c.Kind())
	assert.Equal(t, "application/json", c.ContentType())

	v, err := c.DecodeBody([]byte(`{"name":"ada","age":36}`))
	require.NoError(t, err)
	assert.Equal(t, user{Name: "ada", Age: 36}, v)

	_, err = c.DecodeBody([]byte(`{broken`))
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, KindJSON, decodeErr.Kind)

	var buf bytes.Buffer
	require.NoError(t, c.Encode(user{Name: "ada", Age: 36}, &buf))
	assert.JSONEq(t, `{"name":"ada","age":36}`, buf.String())
}

func TestTextWriter(t *testing.T) {
	t.Parallel()

	w := Text()
	assert.Equal(t, "text/plain; charset=utf-8", w.ContentType())

	var buf bytes.Buffer
	require.NoError(t, w.Encode("plain", &buf))
	assert.Equal(t, "plain", buf.String())

	buf.Reset()
	require.NoError(t, w.Encode([]byte("raw"), &buf))
	assert.Equal(t, "raw", buf.String())

	buf.Reset()
	require.NoError(t, w.Encode(map[string]int{"n": 1}, &buf))
	assert.JSONEq(t, `{"n":1}`, buf.String())
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "uuid", KindUUID.String())
	assert.Equal(t, "invalid", KindInvalid.String())
	assert.Equal(t, "invalid", Kind(200).String())
}
