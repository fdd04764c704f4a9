package telemetry

import (
	"context"
	"testing"
)

func TestTracerWithoutSetup(t *testing.T) {
	ctx, span := Tracer("builders").Start(context.Background(), "mapforge.build")
	defer span.End()
	if ctx == nil {
		t.Fatal("Start returned nil context")
	}
	if span.SpanContext().IsValid() {
		t.Error("default provider should not record spans")
	}
}

func TestNoopTracer(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "noop")
	defer span.End()
	if span.IsRecording() {
		t.Error("noop span is recording")
	}
}

func TestHoneycombHeaders(t *testing.T) {
	if h := HoneycombHeaders("", "mapforge"); h != nil {
		t.Errorf("headers without key: %v", h)
	}
	h := HoneycombHeaders("secret", "levels")
	if h["x-honeycomb-team"] != "secret" || h["x-honeycomb-dataset"] != "levels" {
		t.Errorf("headers: %v", h)
	}
	if _, ok := HoneycombHeaders("secret", "")["x-honeycomb-dataset"]; ok {
		t.Error("empty dataset should be omitted")
	}
}

func TestExporterOptions(t *testing.T) {
	if n := len(Options{}.exporterOptions()); n != 0 {
		t.Errorf("empty options: %d exporter options", n)
	}
	o := Options{Endpoint: "https://api.honeycomb.io", Headers: HoneycombHeaders("k", "d")}
	if n := len(o.exporterOptions()); n != 2 {
		t.Errorf("exporter options: %d != 2", n)
	}
}
