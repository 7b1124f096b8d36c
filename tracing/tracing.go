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

// Package tracing provides an OpenTelemetry trace route listener.
//
// The Recorder opens one server span per dispatched call at OnStart and
// closes it with the call's outcome at OnSucceed/OnFail. Spans export
// through a stdout exporter (development), or any caller-supplied
// TracerProvider.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/dispatch"
	"rivaas.dev/dispatch/loop"
	"rivaas.dev/dispatch/route"
)

// Recorder is a dispatch.Listener that traces calls.
// All methods are safe for concurrent use.
type Recorder struct {
	tracer   trace.Tracer
	provider trace.TracerProvider
	shutdown func(context.Context) error

	serviceName string
	useStdout   bool
}

// Option configures a Recorder during New.
type Option func(*Recorder)

// WithServiceName sets the service.name resource attribute for spans
// exported through the built-in stdout provider.
func WithServiceName(name string) Option {
	return func(r *Recorder) { r.serviceName = name }
}

// WithStdout builds a dedicated TracerProvider exporting spans to stdout.
// Without this (or WithTracerProvider), the global otel provider is used.
func WithStdout() Option {
	return func(r *Recorder) { r.useStdout = true }
}

// WithTracerProvider uses a caller-supplied TracerProvider. Useful for
// tests (sdk/trace with an in-memory exporter) and for binaries that manage
// their own OpenTelemetry wiring.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Recorder) { r.provider = tp }
}

// New creates a Recorder with the given options.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{serviceName: "rivaas-service"}
	for _, opt := range opts {
		opt(r)
	}

	if r.useStdout && r.provider != nil {
		return nil, fmt.Errorf("conflicting provider options: only one of WithStdout or WithTracerProvider can be used")
	}

	if r.useStdout {
		exporter, err := stdouttrace.New()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(resource.NewSchemaless(
				attribute.String("service.name", r.serviceName),
			)),
		)
		r.provider = tp
		r.shutdown = tp.Shutdown
	}
	if r.provider == nil {
		r.provider = otel.GetTracerProvider()
	}

	r.tracer = r.provider.Tracer("rivaas.dev/dispatch/tracing")
	return r, nil
}

// MustNew creates a Recorder and panics on configuration errors.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("tracing: %v", err))
	}
	return r
}

// Shutdown flushes pending spans when the Recorder owns its provider.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r.shutdown == nil {
		return nil
	}
	return r.shutdown(ctx)
}

// OnStart implements dispatch.Listener: it opens a server span named by
// the low-cardinality route pattern and returns it as the call token.
func (r *Recorder) OnStart(lp *loop.EventLoop, rt *route.Route) any {
	_, span := r.tracer.Start(context.Background(), rt.Pattern(),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("dispatch.route", rt.Pattern()),
			attribute.Int("dispatch.version", rt.VersionNumber()),
			attribute.String("dispatch.loop", lp.Name()),
		),
	)
	return span
}

// OnSucceed implements dispatch.Listener.
func (r *Recorder) OnSucceed(c *dispatch.Context, _ any) {
	span, ok := c.ID().(trace.Span)
	if !ok {
		return
	}
	span.SetStatus(codes.Ok, "")
	span.End()
}

// OnFail implements dispatch.Listener.
func (r *Recorder) OnFail(c *dispatch.Context, reason error) {
	span, ok := c.ID().(trace.Span)
	if !ok {
		return
	}
	span.RecordError(reason)
	span.SetStatus(codes.Error, reason.Error())
	span.End()
}
