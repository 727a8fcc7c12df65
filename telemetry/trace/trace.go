//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

// Package trace provides the shared tracer used across agentmesh.
// It integrates with OpenTelemetry; by default a noop provider is installed
// so tracing has no cost until the host application opts in.
package trace

import (
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// instrumentationName identifies agentmesh spans.
const instrumentationName = "github.com/agentmesh/agentmesh"

// TracerProvider is the global tracer provider for telemetry.
var TracerProvider trace.TracerProvider = noop.NewTracerProvider()

// Tracer is the global tracer instance for telemetry.
var Tracer trace.Tracer = TracerProvider.Tracer(instrumentationName)

// SetTracerProvider installs the provider supplied by the host application.
// Exporter setup (OTLP, sampling, resources) is the host's concern.
func SetTracerProvider(tp trace.TracerProvider) {
	TracerProvider = tp
	Tracer = tp.Tracer(instrumentationName)
}
