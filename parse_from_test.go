package valigo_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	valigo "github.com/reoring/valigo"
	"github.com/reoring/valigo/dsl"
)

func TestParseFrom_JSONBytes(t *testing.T) {
	s := dsl.Object(
		dsl.Field("name", dsl.String()),
		dsl.Field("age", dsl.Number()),
	)
	out, err := valigo.ParseFrom[map[string]any](context.Background(), s, valigo.JSONBytes([]byte(`{"name":"gopher","age":13}`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["name"] != "gopher" {
		t.Fatalf("name = %v", out["name"])
	}
	if out["age"] != float64(13) {
		t.Fatalf("age decoded as %T %v, want float64", out["age"], out["age"])
	}
}

func TestParseFrom_NumberJSONPreservesRawText(t *testing.T) {
	s := dsl.Record(dsl.Any())
	out, err := valigo.ParseFrom[map[string]any](context.Background(), s,
		valigo.JSONBytes([]byte(`{"n":123456789012345678901234567890}`)),
		valigo.ParseOpt{NumberMode: valigo.NumberJSON})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := out["n"].(json.Number)
	if !ok {
		t.Fatalf("n is %T, want json.Number", out["n"])
	}
	if n.String() != "123456789012345678901234567890" {
		t.Fatalf("raw text lost: %q", n)
	}
}

func TestParseFrom_MalformedJSON(t *testing.T) {
	_, err := valigo.ParseFrom[map[string]any](context.Background(), dsl.Record(dsl.Any()), valigo.JSONBytes([]byte(`{"a":`)))
	iss, ok := valigo.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected issues, got %v", err)
	}
	if iss[0].Code != valigo.CodeParseError {
		t.Fatalf("code = %q", iss[0].Code)
	}
}

func TestParseFrom_DuplicateKey(t *testing.T) {
	src := valigo.JSONBytes([]byte(`{"a":1,"a":2}`))
	_, err := valigo.ParseFrom[map[string]any](context.Background(), dsl.Record(dsl.Any()), src,
		valigo.ParseOpt{OnDuplicateKey: valigo.Error})
	iss, ok := valigo.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	if iss[0].Code != valigo.CodeDuplicateKey {
		t.Fatalf("code = %q", iss[0].Code)
	}
	if got := iss[0].Path.String(); got != "/a" {
		t.Fatalf("path = %q", got)
	}
}

func TestParseFrom_DuplicateKeyIgnoredByDefault(t *testing.T) {
	out, err := valigo.ParseFrom[map[string]any](context.Background(), dsl.Record(dsl.Any()),
		valigo.JSONBytes([]byte(`{"a":1,"a":2}`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["a"] != float64(2) {
		t.Fatalf("last value should win, got %v", out["a"])
	}
}

func TestParseFrom_MaxDepth(t *testing.T) {
	deep := strings.Repeat(`{"a":`, 10) + `1` + strings.Repeat(`}`, 10)
	_, err := valigo.ParseFrom[map[string]any](context.Background(), dsl.Record(dsl.Any()),
		valigo.JSONBytes([]byte(deep)), valigo.ParseOpt{MaxDepth: 3})
	iss, ok := valigo.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	if iss[0].Code != valigo.CodeDepthExceeded {
		t.Fatalf("code = %q", iss[0].Code)
	}
}

func TestParseFrom_MaxBytes(t *testing.T) {
	payload := []byte(`{"a":"` + strings.Repeat("x", 100) + `"}`)
	_, err := valigo.ParseFrom[map[string]any](context.Background(), dsl.Record(dsl.Any()),
		valigo.JSONBytes(payload), valigo.ParseOpt{MaxBytes: 16})
	iss, ok := valigo.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	if iss[0].Code != valigo.CodeTooLarge {
		t.Fatalf("code = %q", iss[0].Code)
	}
}

func TestParseFrom_JSONReader(t *testing.T) {
	out, err := valigo.ParseFrom[map[string]any](context.Background(), dsl.Record(dsl.Number()),
		valigo.JSONReader(strings.NewReader(`{"x":1.5}`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["x"] != 1.5 {
		t.Fatalf("x = %v", out["x"])
	}
}

func TestParseFrom_YAMLBytes(t *testing.T) {
	s := dsl.Object(
		dsl.Field("name", dsl.String()),
		dsl.Field("tags", dsl.Array(dsl.String())),
	)
	out, err := valigo.ParseFrom[map[string]any](context.Background(), s, valigo.YAMLBytes([]byte("name: gopher\ntags:\n  - a\n  - b\n")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["name"] != "gopher" {
		t.Fatalf("name = %v", out["name"])
	}
	tags, ok := out["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Fatalf("tags = %#v", out["tags"])
	}
}

func TestParseFrom_YAMLDepthEnforced(t *testing.T) {
	doc := []byte("a:\n  b:\n    c:\n      d: 1\n")
	_, err := valigo.ParseFrom[map[string]any](context.Background(), dsl.Record(dsl.Any()),
		valigo.YAMLBytes(doc), valigo.ParseOpt{MaxDepth: 2})
	iss, ok := valigo.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != valigo.CodeDepthExceeded {
		t.Fatalf("expected depth_exceeded, got %v", err)
	}
}

func TestParseFrom_ValidationIssuesCarryPaths(t *testing.T) {
	s := dsl.Object(dsl.Field("items", dsl.Array(dsl.Number())))
	_, err := valigo.ParseFrom[map[string]any](context.Background(), s,
		valigo.JSONBytes([]byte(`{"items":[1,"two",3]}`)))
	iss, ok := valigo.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	if got := iss[0].Path.String(); got != "/items/1" {
		t.Fatalf("path = %q", got)
	}
}
