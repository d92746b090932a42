package sinks

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mineflow/bot/logging"
)

func TestJSONWritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSON(&buf, 0)

	err := sink.Write(logging.Event{
		Type:     "navigation.goto_completed",
		Time:     time.Unix(1234, 0).UTC(),
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNavigation,
		Actor:    logging.EntityRef{ID: "miner-1", Kind: logging.EntityKindAgent},
		TraceID:  "trace-9",
		Payload:  map[string]any{"outcome": "direct"},
	})
	if err != nil {
		t.Fatalf("expected write to succeed, got %v", err)
	}

	line := strings.TrimSpace(buf.String())
	if strings.Contains(line, "\n") {
		t.Fatalf("expected a single line, got %q", line)
	}

	var wire map[string]any
	if err := json.Unmarshal([]byte(line), &wire); err != nil {
		t.Fatalf("expected valid json, got %v in %q", err, line)
	}
	if wire["type"] != "navigation.goto_completed" {
		t.Fatalf("unexpected type field: %v", wire["type"])
	}
	if wire["traceId"] != "trace-9" {
		t.Fatalf("unexpected traceId field: %v", wire["traceId"])
	}
	payload, ok := wire["payload"].(map[string]any)
	if !ok || payload["outcome"] != "direct" {
		t.Fatalf("unexpected payload: %v", wire["payload"])
	}
}

func TestJSONCloseFlushesBufferedEvents(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSON(&buf, time.Hour) // interval flush only, nothing written yet

	if err := sink.Write(logging.Event{Type: "cache.route_stored"}); err != nil {
		t.Fatalf("expected write to succeed, got %v", err)
	}
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("expected close to flush, got %v", err)
	}
	if !strings.Contains(buf.String(), "cache.route_stored") {
		t.Fatalf("expected flushed event in output, got %q", buf.String())
	}
}

func TestConsoleSinkFormatsEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf)

	err := sink.Write(logging.Event{
		Type:     "navigation.goto_failed",
		Severity: logging.SeverityWarn,
		Actor:    logging.EntityRef{ID: "miner-1", Kind: logging.EntityKindAgent},
		TraceID:  "trace-3",
	})
	if err != nil {
		t.Fatalf("expected write to succeed, got %v", err)
	}

	out := buf.String()
	for _, want := range []string{"[navigation.goto_failed]", "actor=agent:miner-1", "severity=warn", "trace=trace-3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in console line %q", want, out)
		}
	}
}

func TestBuildRouterAssemblesConfiguredSinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.ndjson")
	cfg := logging.Config{
		EnabledSinks: []string{"memory", "json"},
		JSON:         logging.JSONConfig{FilePath: path},
	}

	router, err := BuildRouter(nil, cfg)
	if err != nil {
		t.Fatalf("expected router, got %v", err)
	}

	router.Publish(context.Background(), logging.Event{Type: "navigation.goto_completed", TraceID: "t-1"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("expected clean close, got %v", err)
	}

	memory, ok := router.Sink("memory").(*MemorySink)
	if !ok {
		t.Fatalf("expected a memory sink registered under its name")
	}
	if events := memory.Events(); len(events) != 1 {
		t.Fatalf("expected 1 event in memory, got %d", len(events))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected json sink file, got %v", err)
	}
	if !strings.Contains(string(data), "navigation.goto_completed") {
		t.Fatalf("expected event written to file, got %q", data)
	}
}

func TestBuildRouterRejectsUnknownSink(t *testing.T) {
	if _, err := BuildRouter(nil, logging.Config{EnabledSinks: []string{"syslog"}}); err == nil {
		t.Fatalf("expected an error for an unknown sink name")
	}
}

func TestBuildRouterRequiresJSONFilePath(t *testing.T) {
	if _, err := BuildRouter(nil, logging.Config{EnabledSinks: []string{"json"}}); err == nil {
		t.Fatalf("expected an error when the json sink has no file path")
	}
}

func TestMemorySinkCopiesOnRead(t *testing.T) {
	sink := NewMemorySink()
	if err := sink.Write(logging.Event{Type: "waypoint.registered"}); err != nil {
		t.Fatalf("expected write to succeed, got %v", err)
	}

	events := sink.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	events[0].Type = "mutated"
	if sink.Events()[0].Type != "waypoint.registered" {
		t.Fatalf("reads must not expose internal storage")
	}

	sink.Reset()
	if len(sink.Events()) != 0 {
		t.Fatalf("expected reset to clear events")
	}
}
