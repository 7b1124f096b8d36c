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

// Package swagger generates Swagger 2.0 documentation from route metadata.
//
// Generation is a pure side channel of dispatch: it reads frozen routes,
// never mutates them, and has no effect on runtime behavior. Plugins
// augment the generated operations through their ModifySwagger hook.
package swagger

import (
	"strconv"
	"strings"
)

// Info is the document header metadata.
type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// Document is a Swagger 2.0 API document.
type Document struct {
	Swagger  string               `json:"swagger"`
	Info     Info                 `json:"info"`
	BasePath string               `json:"basePath,omitempty"`
	Paths    map[string]*PathItem `json:"paths"`
}

// PathItem groups the operations declared on one path.
type PathItem struct {
	Get    *Operation `json:"get,omitempty"`
	Post   *Operation `json:"post,omitempty"`
	Put    *Operation `json:"put,omitempty"`
	Delete *Operation `json:"delete,omitempty"`
}

// Operation documents one route. Plugins may append parameters, tags, and
// responses during ModifySwagger.
type Operation struct {
	ID          string              `json:"operationId,omitempty"`
	Summary     string              `json:"summary,omitempty"`
	Description string              `json:"description,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	Produces    []string            `json:"produces,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

// Parameter documents one operation parameter.
type Parameter struct {
	Name        string `json:"name"`
	In          string `json:"in"` // "path", "query", or "body"
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

// Response documents one response status.
type Response struct {
	Description string `json:"description"`
}

// AddParameter appends a parameter to the operation.
func (op *Operation) AddParameter(p Parameter) {
	op.Parameters = append(op.Parameters, p)
}

// AddTags appends tags to the operation.
func (op *Operation) AddTags(tags ...string) {
	op.Tags = append(op.Tags, tags...)
}

// PathKey converts a declared route path to Swagger syntax, namespacing
// versioned routes under a "/v{n}" prefix so versions of one path coexist
// in a single document. ":id" parameter syntax becomes "{id}".
func PathKey(path string, version int) string {
	var b strings.Builder
	trimmed := strings.Trim(path, "/")

	if version != 0 {
		b.WriteString("/v")
		b.WriteString(strconv.Itoa(version))
	}
	if trimmed == "" {
		b.WriteByte('/')
		return b.String()
	}
	for _, part := range strings.Split(trimmed, "/") {
		b.WriteByte('/')
		if strings.HasPrefix(part, ":") {
			b.WriteByte('{')
			b.WriteString(part[1:])
			b.WriteByte('}')
		} else {
			b.WriteString(part)
		}
	}
	return b.String()
}
