package dsl_test

import (
	"context"
	"testing"

	valigo "github.com/reoring/valigo"
	"github.com/reoring/valigo/dsl"
)

func TestObject_TwoFailingFields(t *testing.T) {
	s := dsl.Object(
		dsl.Field("a", dsl.String()),
		dsl.Field("b", dsl.Number()),
	)
	_, err := s.Parse(context.Background(), map[string]any{"a": 1, "b": "x"})
	iss, _ := valigo.AsIssues(err)
	if len(iss) != 2 {
		t.Fatalf("want two issues, got %v", iss)
	}
	if got := iss[0].Path.String(); got != "/a" {
		t.Fatalf("first path = %q", got)
	}
	if got := iss[1].Path.String(); got != "/b" {
		t.Fatalf("second path = %q", got)
	}
}

func TestObject_MissingKeyPresentsUndefined(t *testing.T) {
	s := dsl.Object(dsl.Field("name", dsl.String()))
	_, err := s.Parse(context.Background(), map[string]any{})
	iss, _ := valigo.AsIssues(err)
	if len(iss) != 1 {
		t.Fatalf("want one issue, got %v", iss)
	}
	if iss[0].Code != valigo.CodeInvalidType || iss[0].Received != "undefined" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
	if got := iss[0].Path.String(); got != "/name" {
		t.Fatalf("path = %q", got)
	}
}

func TestObject_OptionalFieldMayBeMissing(t *testing.T) {
	s := dsl.Object(
		dsl.Field("name", dsl.String()),
		dsl.Field("nick", dsl.Optional(dsl.String())),
	)
	out, err := s.Parse(context.Background(), map[string]any{"name": "gopher"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := out["nick"]; present {
		t.Fatalf("missing optional field materialized: %v", out)
	}
}

func TestObject_OptionalDefaultFillsMissing(t *testing.T) {
	s := dsl.Object(
		dsl.Field("role", dsl.Optional(dsl.String()).Default("user")),
	)
	out, err := s.Parse(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["role"] != "user" {
		t.Fatalf("default not applied: %v", out)
	}

	out, err = s.Parse(context.Background(), map[string]any{"role": "admin"})
	if err != nil || out["role"] != "admin" {
		t.Fatalf("present value lost: %v, %v", out, err)
	}
}

func TestObject_UnknownKeysPassThroughByDefault(t *testing.T) {
	s := dsl.Object(dsl.Field("a", dsl.String()))
	out, err := s.Parse(context.Background(), map[string]any{"a": "x", "extra": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["extra"] != 1 {
		t.Fatalf("unknown key dropped: %v", out)
	}
}

func TestObject_StrictRejectsUnknownKeysSorted(t *testing.T) {
	s := dsl.Object(dsl.Field("a", dsl.String())).Strict()
	_, err := s.Parse(context.Background(), map[string]any{"a": "x", "z": 1, "b": 2})
	iss, _ := valigo.AsIssues(err)
	if len(iss) != 2 {
		t.Fatalf("want two issues, got %v", iss)
	}
	if iss[0].Code != valigo.CodeUnknownKey || iss[1].Code != valigo.CodeUnknownKey {
		t.Fatalf("unexpected codes: %v", iss)
	}
	if iss[0].Path.String() != "/b" || iss[1].Path.String() != "/z" {
		t.Fatalf("unknown keys not sorted: %v, %v", iss[0].Path, iss[1].Path)
	}
}

func TestObject_StripDropsUnknownKeys(t *testing.T) {
	s := dsl.Object(dsl.Field("a", dsl.String())).Strip()
	out, err := s.Parse(context.Background(), map[string]any{"a": "x", "extra": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := out["extra"]; present {
		t.Fatalf("unknown key kept: %v", out)
	}
}

func TestObject_NonObjectInput(t *testing.T) {
	_, err := dsl.Object().Parse(context.Background(), []any{})
	assertSingleCode(t, err, valigo.CodeInvalidType)
}

func TestObject_RefineRunsAfterFields(t *testing.T) {
	s := dsl.Object(
		dsl.Field("min", dsl.Number()),
		dsl.Field("max", dsl.Number()),
	).Refine("min_le_max", func(m map[string]any) bool {
		return m["min"].(float64) <= m["max"].(float64)
	})

	if _, err := s.Parse(context.Background(), map[string]any{"min": 1.0, "max": 2.0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := s.Parse(context.Background(), map[string]any{"min": 3.0, "max": 2.0})
	iss, _ := valigo.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != valigo.CodeCustom || iss[0].Rule != "min_le_max" {
		t.Fatalf("unexpected issues: %v", iss)
	}

	// A field failure suppresses the refinement.
	_, err = s.Parse(context.Background(), map[string]any{"min": "x", "max": 2.0})
	iss, _ = valigo.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != valigo.CodeInvalidType {
		t.Fatalf("refinement ran on broken object: %v", iss)
	}
}

func TestObject_NestedPaths(t *testing.T) {
	s := dsl.Object(
		dsl.Field("profile", dsl.Object(
			dsl.Field("age", dsl.Number()),
		)),
	)
	_, err := s.Parse(context.Background(), map[string]any{
		"profile": map[string]any{"age": "old"},
	})
	iss, _ := valigo.AsIssues(err)
	if len(iss) != 1 {
		t.Fatalf("want one issue, got %v", iss)
	}
	if got := iss[0].Path.String(); got != "/profile/age" {
		t.Fatalf("path = %q", got)
	}
}

func TestObject_JSONSchemaRequired(t *testing.T) {
	s := dsl.Object(
		dsl.Field("a", dsl.String()),
		dsl.Field("b", dsl.Optional(dsl.String())),
	)
	js := s.JSONSchema()
	if len(js.Required) != 1 || js.Required[0] != "a" {
		t.Fatalf("required = %v", js.Required)
	}
}
