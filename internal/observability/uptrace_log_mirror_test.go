package observability

import (
	"testing"

	otellog "go.opentelemetry.io/otel/log"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	if !shouldSkipUptraceLog("http request", []any{"method", "GET", "path", "/health"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if !shouldSkipUptraceLog("http request", []any{"path", "/ready"}) {
		t.Fatalf("expected readiness log to be skipped")
	}
	if shouldSkipUptraceLog("http request", []any{"path", "/api/v1/matches"}) {
		t.Fatalf("did not expect match listing log to be skipped")
	}
	if shouldSkipUptraceLog("sync pass completed", []any{"path", "/health"}) {
		t.Fatalf("did not expect non-http event to be skipped")
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{"date", "2024-05-01", "synced", 12, "payload"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "date" || attrs[0].Value.AsString() != "2024-05-01" {
		t.Fatalf("unexpected date attribute")
	}
	if attrs[1].Key != "synced" || attrs[1].Value.AsInt64() != 12 {
		t.Fatalf("unexpected synced attribute")
	}
	if attrs[2].Key != "payload" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute")
	}
}

func TestToOTelLogValue_Map(t *testing.T) {
	v := toOTelLogValue(map[string]any{
		"goals":    3,
		"finished": true,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	items := v.AsMap()
	if len(items) != 2 {
		t.Fatalf("expected 2 map items, got %d", len(items))
	}
}
