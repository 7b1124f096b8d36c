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

// Package metrics provides an OpenTelemetry-backed route listener.
//
// The Recorder observes every dispatched call and records call counts,
// failure counts, in-flight gauges, and duration histograms, labeled by
// route pattern so cardinality stays bounded. Metrics export through
// Prometheus (default), a periodic stdout reader, or any caller-supplied
// MeterProvider.
//
// By default this package does NOT set the global OpenTelemetry meter
// provider, so multiple Recorder instances can coexist in one process.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"rivaas.dev/dispatch"
	"rivaas.dev/dispatch/loop"
	"rivaas.dev/dispatch/route"
)

// Provider selects the metrics export backend.
type Provider string

const (
	// PrometheusProvider exports through a pull-based Prometheus
	// registry (the default).
	PrometheusProvider Provider = "prometheus"
	// StdoutProvider exports through a periodic stdout reader, useful in
	// development.
	StdoutProvider Provider = "stdout"
	// CustomProvider uses a caller-supplied MeterProvider.
	CustomProvider Provider = "custom"
)

// DefaultDurationBuckets are the call duration histogram boundaries in
// seconds.
var DefaultDurationBuckets = []float64{
	.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10,
}

// Recorder is a dispatch.Listener that records call metrics.
// All methods are safe for concurrent use.
type Recorder struct {
	meter         metric.Meter
	meterProvider metric.MeterProvider
	registry      *promclient.Registry
	handler       http.Handler

	callDuration metric.Float64Histogram
	callCount    metric.Int64Counter
	activeCalls  metric.Int64UpDownCounter
	failCount    metric.Int64Counter

	serviceName     string
	serviceVersion  string
	durationBuckets []float64
	exportInterval  time.Duration

	provider         Provider
	providerSetCount int
	commonAttrs      []attribute.KeyValue
}

// Option configures a Recorder during New.
type Option func(*Recorder)

// WithServiceName sets the service.name attribute on all recorded metrics.
func WithServiceName(name string) Option {
	return func(r *Recorder) { r.serviceName = name }
}

// WithServiceVersion sets the service.version attribute on all recorded
// metrics.
func WithServiceVersion(version string) Option {
	return func(r *Recorder) { r.serviceVersion = version }
}

// WithPrometheus selects the Prometheus backend. Scrape the handler
// returned by Handler.
func WithPrometheus() Option {
	return func(r *Recorder) {
		r.provider = PrometheusProvider
		r.providerSetCount++
	}
}

// WithStdout selects the periodic stdout backend.
func WithStdout() Option {
	return func(r *Recorder) {
		r.provider = StdoutProvider
		r.providerSetCount++
	}
}

// WithMeterProvider uses a caller-supplied MeterProvider. Useful for tests
// (sdk/metric ManualReader) and for binaries that already manage their own
// OpenTelemetry wiring.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(r *Recorder) {
		r.provider = CustomProvider
		r.providerSetCount++
		r.meterProvider = mp
	}
}

// WithDurationBuckets overrides the call duration histogram boundaries
// (seconds).
func WithDurationBuckets(buckets ...float64) Option {
	return func(r *Recorder) { r.durationBuckets = buckets }
}

// WithExportInterval sets the stdout reader's export interval.
func WithExportInterval(d time.Duration) Option {
	return func(r *Recorder) { r.exportInterval = d }
}

// New creates a Recorder with the given options.
// For a version that panics on error, use MustNew.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		serviceName:     "rivaas-service",
		serviceVersion:  "1.0.0",
		provider:        PrometheusProvider,
		durationBuckets: DefaultDurationBuckets,
		exportInterval:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.providerSetCount > 1 {
		return nil, fmt.Errorf("conflicting provider options: only one of WithPrometheus, WithStdout, or WithMeterProvider can be used")
	}
	if r.serviceName == "" {
		return nil, fmt.Errorf("service name cannot be empty")
	}

	if err := r.initProvider(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	if err := r.initInstruments(); err != nil {
		return nil, fmt.Errorf("failed to create instruments: %w", err)
	}

	r.commonAttrs = []attribute.KeyValue{
		attribute.String("service.name", r.serviceName),
		attribute.String("service.version", r.serviceVersion),
	}
	return r, nil
}

// MustNew creates a Recorder and panics on configuration errors.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("metrics: %v", err))
	}
	return r
}

func (r *Recorder) initProvider() error {
	switch r.provider {
	case PrometheusProvider:
		r.registry = promclient.NewRegistry()
		exporter, err := otelprom.New(otelprom.WithRegisterer(r.registry))
		if err != nil {
			return err
		}
		r.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
		r.handler = promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
	case StdoutProvider:
		exporter, err := stdoutmetric.New()
		if err != nil {
			return err
		}
		reader := sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(r.exportInterval))
		r.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	case CustomProvider:
		if r.meterProvider == nil {
			return fmt.Errorf("custom provider requires a MeterProvider")
		}
	default:
		return fmt.Errorf("unsupported metrics provider: %s", r.provider)
	}

	r.meter = r.meterProvider.Meter("rivaas.dev/dispatch/metrics")
	return nil
}

func (r *Recorder) initInstruments() error {
	var err error

	r.callDuration, err = r.meter.Float64Histogram("dispatch.call.duration",
		metric.WithDescription("Call duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...))
	if err != nil {
		return err
	}

	r.callCount, err = r.meter.Int64Counter("dispatch.call.count",
		metric.WithDescription("Total dispatched calls"))
	if err != nil {
		return err
	}

	r.activeCalls, err = r.meter.Int64UpDownCounter("dispatch.call.active",
		metric.WithDescription("Calls currently in flight"))
	if err != nil {
		return err
	}

	r.failCount, err = r.meter.Int64Counter("dispatch.call.failures",
		metric.WithDescription("Calls that reached the failure path"))
	return err
}

// Handler returns the Prometheus scrape handler.
// Nil unless the Prometheus backend is selected.
func (r *Recorder) Handler() http.Handler { return r.handler }

// callToken is the opaque per-call state returned from OnStart.
type callToken struct {
	start time.Time
	attrs []attribute.KeyValue
}

// OnStart implements dispatch.Listener.
func (r *Recorder) OnStart(lp *loop.EventLoop, rt *route.Route) any {
	attrs := make([]attribute.KeyValue, 0, len(r.commonAttrs)+2)
	attrs = append(attrs, r.commonAttrs...)
	attrs = append(attrs,
		attribute.String("dispatch.route", rt.Pattern()),
		attribute.Int("dispatch.version", rt.VersionNumber()),
	)

	r.activeCalls.Add(context.Background(), 1, metric.WithAttributes(attrs...))
	return &callToken{start: time.Now(), attrs: attrs}
}

// OnSucceed implements dispatch.Listener.
func (r *Recorder) OnSucceed(c *dispatch.Context, _ any) {
	r.finish(c, "success")
}

// OnFail implements dispatch.Listener.
func (r *Recorder) OnFail(c *dispatch.Context, _ error) {
	r.finish(c, "failure")
	if token, ok := c.ID().(*callToken); ok {
		r.failCount.Add(context.Background(), 1, metric.WithAttributes(token.attrs...))
	}
}

func (r *Recorder) finish(c *dispatch.Context, outcome string) {
	token, ok := c.ID().(*callToken)
	if !ok {
		// Another listener's token; this call was started elsewhere.
		return
	}
	ctx := context.Background()
	attrs := append(token.attrs, attribute.String("dispatch.outcome", outcome))

	r.activeCalls.Add(ctx, -1, metric.WithAttributes(token.attrs...))
	r.callCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	r.callDuration.Record(ctx, time.Since(token.start).Seconds(), metric.WithAttributes(attrs...))
}
