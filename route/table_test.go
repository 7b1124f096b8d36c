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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableMatchLiteral(t *testing.T) {
	t.Parallel()

	var table Table
	rt := New(MethodGet, "/health", noopHandler)
	table.Add(rt)

	got, raw, err := table.Match(MethodGet, "/health", 0)
	require.NoError(t, err)
	assert.Same(t, rt, got)
	assert.Empty(t, raw)
}

func TestTableMatchParameters(t *testing.T) {
	t.Parallel()

	var table Table
	rt := New(MethodGet, "/orgs/:org/users/:id", noopHandler)
	table.Add(rt)

	got, raw, err := table.Match(MethodGet, "/orgs/acme/users/42", 0)
	require.NoError(t, err)
	assert.Same(t, rt, got)
	assert.Equal(t, []string{"acme", "42"}, raw)
}

func TestTableMethodSeparation(t *testing.T) {
	t.Parallel()

	var table Table
	get := New(MethodGet, "/items", noopHandler)
	post := New(MethodPost, "/items", noopHandler)
	table.Add(get)
	table.Add(post)

	got, _, err := table.Match(MethodPost, "/items", 0)
	require.NoError(t, err)
	assert.Same(t, post, got)

	_, _, err = table.Match(MethodDelete, "/items", 0)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTableShapeMismatch(t *testing.T) {
	t.Parallel()

	var table Table
	table.Add(New(MethodGet, "/users/:id", noopHandler))

	_, _, err := table.Match(MethodGet, "/users", 0)
	require.ErrorIs(t, err, ErrNotFound)

	_, _, err = table.Match(MethodGet, "/users/1/posts", 0)
	require.ErrorIs(t, err, ErrNotFound)

	_, _, err = table.Match(MethodGet, "/accounts/1", 0)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTableVersionExactMatch(t *testing.T) {
	t.Parallel()

	var table Table
	v0 := New(MethodGet, "/status", noopHandler)
	v2 := New(MethodGet, "/status", noopHandler).Version(2)
	table.Add(v0)
	table.Add(v2)

	got, _, err := table.Match(MethodGet, "/status", 0)
	require.NoError(t, err)
	assert.Same(t, v0, got)

	got, _, err = table.Match(MethodGet, "/status", 2)
	require.NoError(t, err)
	assert.Same(t, v2, got)

	_, _, err = table.Match(MethodGet, "/status", 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTableRootPath(t *testing.T) {
	t.Parallel()

	var table Table
	rt := New(MethodGet, "/", noopHandler)
	table.Add(rt)

	got, _, err := table.Match(MethodGet, "/", 0)
	require.NoError(t, err)
	assert.Same(t, rt, got)
}

func TestTableRoutes(t *testing.T) {
	t.Parallel()

	var table Table
	table.Add(New(MethodGet, "/a", noopHandler))
	table.Add(New(MethodPost, "/b", noopHandler))
	table.Add(New(MethodPut, "/c", noopHandler))
	table.Add(New(MethodDelete, "/d", noopHandler))

	assert.Len(t, table.Routes(), 4)
}
