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
	"rivaas.dev/dispatch/codec"
	"rivaas.dev/dispatch/route"
)

// Generate builds a Swagger document from frozen route metadata.
//
// Each route becomes one operation keyed by its versioned path. Typed path
// segments become required path parameters, queries become query
// parameters (body-bound queries become the body parameter), and the
// route's writer contributes the produces list.
func Generate(info Info, routes []*route.Route) *Document {
	doc := &Document{
		Swagger: "2.0",
		Info:    info,
		Paths:   make(map[string]*PathItem),
	}
	for _, rt := range routes {
		doc.attach(rt, operationFor(rt))
	}
	return doc
}

// OperationFor returns the generated operation for a route, or nil if the
// route is not part of the document.
func (d *Document) OperationFor(rt *route.Route) *Operation {
	item := d.Paths[PathKey(rt.Path(), rt.VersionNumber())]
	if item == nil {
		return nil
	}
	switch rt.Method() {
	case route.MethodGet:
		return item.Get
	case route.MethodPost:
		return item.Post
	case route.MethodPut:
		return item.Put
	case route.MethodDelete:
		return item.Delete
	default:
		return nil
	}
}

func (d *Document) attach(rt *route.Route, op *Operation) {
	key := PathKey(rt.Path(), rt.VersionNumber())
	item := d.Paths[key]
	if item == nil {
		item = &PathItem{}
		d.Paths[key] = item
	}
	switch rt.Method() {
	case route.MethodGet:
		item.Get = op
	case route.MethodPost:
		item.Post = op
	case route.MethodPut:
		item.Put = op
	case route.MethodDelete:
		item.Delete = op
	}
}

func operationFor(rt *route.Route) *Operation {
	op := &Operation{
		ID:          rt.Name(),
		Description: rt.Description(),
		Tags:        append([]string(nil), rt.Tags()...),
		Responses:   map[string]Response{"200": {Description: "OK"}},
	}
	if w := rt.Writer(); w != nil {
		op.Produces = []string{w.ContentType()}
	}

	for _, seg := range rt.TypedSegments() {
		typ, format := kindSchema(seg.Reader.Kind())
		op.Parameters = append(op.Parameters, Parameter{
			Name:     seg.Value,
			In:       "path",
			Type:     typ,
			Format:   format,
			Required: true,
		})
	}

	bodyIdx, hasBody := rt.BodyQuery()
	for qi, q := range rt.Queries() {
		if rt.Provided(q.Slot) {
			// Plugin-supplied slots are not part of the wire contract.
			continue
		}
		in := "query"
		if hasBody && qi == bodyIdx {
			in = "body"
		}
		typ, format := kindSchema(q.Reader.Kind())
		op.Parameters = append(op.Parameters, Parameter{
			Name:        q.Name,
			In:          in,
			Type:        typ,
			Format:      format,
			Required:    !q.Optional,
			Default:     q.Default,
			Description: q.Description,
		})
	}

	return op
}

// kindSchema maps a codec kind to its Swagger type and format.
func kindSchema(k codec.Kind) (typ, format string) {
	switch k {
	case codec.KindInt:
		return "integer", "int32"
	case codec.KindInt64:
		return "integer", "int64"
	case codec.KindFloat:
		return "number", "double"
	case codec.KindBool:
		return "boolean", ""
	case codec.KindTime:
		return "string", "date-time"
	case codec.KindUUID:
		return "string", "uuid"
	case codec.KindJSON:
		return "object", ""
	default:
		return "string", ""
	}
}
