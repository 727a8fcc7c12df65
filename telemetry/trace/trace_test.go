//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

package trace

import (
	"testing"

	"go.opentelemetry.io/otel/trace/noop"
)

func TestDefaultsAreNoop(t *testing.T) {
	if TracerProvider == nil {
		t.Fatal("Expected default tracer provider")
	}
	if Tracer == nil {
		t.Fatal("Expected default tracer")
	}
}

func TestSetTracerProvider(t *testing.T) {
	tp := noop.NewTracerProvider()
	SetTracerProvider(tp)
	if TracerProvider != tp {
		t.Error("Expected provider to be installed")
	}
	if Tracer == nil {
		t.Error("Expected tracer to be refreshed")
	}
}
