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

package swagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/dispatch/codec"
	"rivaas.dev/dispatch/route"
)

func noop() {}

func TestPathKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		version int
		want    string
	}{
		{"/users/:id", 0, "/users/{id}"},
		{"/users/:id", 2, "/v2/users/{id}"},
		{"/orgs/:org/users/:id", 0, "/orgs/{org}/users/{id}"},
		{"/health", 0, "/health"},
		{"/", 0, "/"},
		{"/", 3, "/v3/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PathKey(tt.path, tt.version))
	}
}

func TestGenerateOperation(t *testing.T) {
	t.Parallel()

	rt := route.New(route.MethodGet, "/users/:id", noop).
		Bind("id", codec.Int()).
		Arg("expand", codec.Bool()).
		Optional("limit", codec.Int(), 10).
		DescribeArg("limit", "page size").
		Returns(codec.JSON[map[string]any]()).
		SetName("users.get").
		SetDescription("fetch one user").
		SetTags("users")

	doc := Generate(Info{Title: "test", Version: "1.0"}, []*route.Route{rt})

	require.Equal(t, "2.0", doc.Swagger)
	item := doc.Paths["/users/{id}"]
	require.NotNil(t, item)
	op := item.Get
	require.NotNil(t, op)

	assert.Equal(t, "users.get", op.ID)
	assert.Equal(t, "fetch one user", op.Description)
	assert.Equal(t, []string{"users"}, op.Tags)
	assert.Equal(t, []string{"application/json"}, op.Produces)
	assert.Contains(t, op.Responses, "200")

	require.Len(t, op.Parameters, 3)

	assert.Equal(t, Parameter{
		Name: "id", In: "path", Type: "integer", Format: "int32", Required: true,
	}, op.Parameters[0])

	assert.Equal(t, "expand", op.Parameters[1].Name)
	assert.Equal(t, "query", op.Parameters[1].In)
	assert.Equal(t, "boolean", op.Parameters[1].Type)
	assert.True(t, op.Parameters[1].Required)

	assert.Equal(t, "limit", op.Parameters[2].Name)
	assert.False(t, op.Parameters[2].Required)
	assert.Equal(t, 10, op.Parameters[2].Default)
	assert.Equal(t, "page size", op.Parameters[2].Description)
}

func TestGenerateBodyParameter(t *testing.T) {
	t.Parallel()

	type createUser struct{}
	rt := route.New(route.MethodPost, "/users", noop).
		Body("user", codec.JSON[createUser]())

	doc := Generate(Info{}, []*route.Route{rt})
	op := doc.Paths["/users"].Post
	require.NotNil(t, op)

	require.Len(t, op.Parameters, 1)
	assert.Equal(t, "body", op.Parameters[0].In)
	assert.Equal(t, "object", op.Parameters[0].Type)
	assert.True(t, op.Parameters[0].Required)
}

func TestGenerateSkipsProvidedSlots(t *testing.T) {
	t.Parallel()

	rt := route.New(route.MethodGet, "/me", noop).Arg("session", codec.String())
	m := route.NewModifier(rt)
	_, err := m.Provide(codec.KindString)
	require.NoError(t, err)

	doc := Generate(Info{}, []*route.Route{rt})
	op := doc.Paths["/me"].Get
	require.NotNil(t, op)
	assert.Empty(t, op.Parameters, "plugin-supplied slots stay out of the wire contract")
}

func TestGenerateVersionedPathsCoexist(t *testing.T) {
	t.Parallel()

	v0 := route.New(route.MethodGet, "/status", noop)
	v2 := route.New(route.MethodGet, "/status", noop).Version(2)

	doc := Generate(Info{}, []*route.Route{v0, v2})

	require.Len(t, doc.Paths, 2)
	assert.NotNil(t, doc.Paths["/status"].Get)
	assert.NotNil(t, doc.Paths["/v2/status"].Get)
}

func TestGenerateMethodsShareOnePathItem(t *testing.T) {
	t.Parallel()

	get := route.New(route.MethodGet, "/items", noop)
	post := route.New(route.MethodPost, "/items", noop)
	del := route.New(route.MethodDelete, "/items", noop)

	doc := Generate(Info{}, []*route.Route{get, post, del})

	require.Len(t, doc.Paths, 1)
	item := doc.Paths["/items"]
	assert.NotNil(t, item.Get)
	assert.NotNil(t, item.Post)
	assert.NotNil(t, item.Delete)
	assert.Nil(t, item.Put)
}

func TestOperationFor(t *testing.T) {
	t.Parallel()

	rt := route.New(route.MethodPut, "/items/:id", noop)
	other := route.New(route.MethodGet, "/elsewhere", noop)

	doc := Generate(Info{}, []*route.Route{rt})

	assert.NotNil(t, doc.OperationFor(rt))
	assert.Nil(t, doc.OperationFor(other))
}
