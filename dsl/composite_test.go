package dsl_test

import (
	"context"
	"testing"

	valigo "github.com/reoring/valigo"
	"github.com/reoring/valigo/dsl"
)

func TestArray_ElementPaths(t *testing.T) {
	s := dsl.Array(dsl.Number())
	_, err := s.Parse(context.Background(), []any{1.0, "two", 3.0, "four"})
	iss, _ := valigo.AsIssues(err)
	if len(iss) != 2 {
		t.Fatalf("want two issues, got %v", iss)
	}
	if iss[0].Path.String() != "/1" || iss[1].Path.String() != "/3" {
		t.Fatalf("paths = %v, %v", iss[0].Path, iss[1].Path)
	}
}

func TestArray_WidensTypedSlices(t *testing.T) {
	out, err := dsl.Array(dsl.String()).Parse(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0] != "a" {
		t.Fatalf("got %v", out)
	}
}

func TestArray_RejectsNonSequence(t *testing.T) {
	_, err := dsl.Array(dsl.String()).Parse(context.Background(), "abc")
	assertSingleCode(t, err, valigo.CodeInvalidType)
}

func TestArrayOf_TypedOutput(t *testing.T) {
	s := dsl.ArrayOf[float64](dsl.Number())
	out, err := s.Parse(context.Background(), []any{1.0, 2.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[1] != 2.0 {
		t.Fatalf("got %v", out)
	}
}

func TestTuple_ArityMismatch(t *testing.T) {
	s := dsl.Tuple(dsl.String(), dsl.Number())
	_, err := s.Parse(context.Background(), []any{"only"})
	iss, _ := valigo.AsIssues(err)
	if len(iss) != 1 {
		t.Fatalf("arity mismatch must yield exactly one issue, got %v", iss)
	}
	if iss[0].Code != valigo.CodeArityMismatch {
		t.Fatalf("code = %q", iss[0].Code)
	}
	if iss[0].Params["expected"] != 2 || iss[0].Params["got"] != 1 {
		t.Fatalf("params = %v", iss[0].Params)
	}
}

func TestTuple_PositionalValidation(t *testing.T) {
	s := dsl.Tuple(dsl.String(), dsl.Number(), dsl.Boolean())
	out, err := s.Parse(context.Background(), []any{"x", 1.0, true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %v", out)
	}

	_, err = s.Parse(context.Background(), []any{"x", "not a number", true})
	iss, _ := valigo.AsIssues(err)
	if len(iss) != 1 || iss[0].Path.String() != "/1" {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestRecord_ValidatesEveryValue(t *testing.T) {
	s := dsl.Record(dsl.Number())
	out, err := s.Parse(context.Background(), map[string]any{"a": 1.0, "b": 2.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["b"] != 2.0 {
		t.Fatalf("got %v", out)
	}

	_, err = s.Parse(context.Background(), map[string]any{"z": "x", "a": "y"})
	iss, _ := valigo.AsIssues(err)
	if len(iss) != 2 {
		t.Fatalf("want two issues, got %v", iss)
	}
	// Keys are visited sorted, so issue order is deterministic.
	if iss[0].Path.String() != "/a" || iss[1].Path.String() != "/z" {
		t.Fatalf("paths = %v, %v", iss[0].Path, iss[1].Path)
	}
}

func TestRecordWithKeys_ValidatesKeys(t *testing.T) {
	s := dsl.RecordWithKeys(dsl.Enum("red", "green"), dsl.Number())
	_, err := s.Parse(context.Background(), map[string]any{"red": 1.0, "blue": 2.0})
	iss, _ := valigo.AsIssues(err)
	if len(iss) != 1 {
		t.Fatalf("want one issue, got %v", iss)
	}
	if iss[0].Code != valigo.CodeInvalidEnum || iss[0].Path.String() != "/blue" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}

func TestMap_EntrySegments(t *testing.T) {
	s := dsl.Map(dsl.String(), dsl.Number())
	out, err := s.Parse(context.Background(), map[string]any{"a": 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["a"] != 1.0 {
		t.Fatalf("got %v", out)
	}

	_, err = s.Parse(context.Background(), map[string]any{"a": "x"})
	iss, _ := valigo.AsIssues(err)
	if len(iss) != 1 {
		t.Fatalf("want one issue, got %v", iss)
	}
	if got := iss[0].Path.String(); got != "/a" {
		t.Fatalf("path = %q", got)
	}
}

func TestSet_MembersValidated(t *testing.T) {
	s := dsl.Set(dsl.String())
	out, err := s.Parse(context.Background(), map[string]struct{}{"a": {}, "b": {}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := out["a"]; !ok {
		t.Fatalf("got %v", out)
	}

	// A plain map is not a set.
	_, err = s.Parse(context.Background(), map[string]any{"a": 1})
	assertSingleCode(t, err, valigo.CodeInvalidType)
}

func TestMap_RejectsSetIdiom(t *testing.T) {
	_, err := dsl.Map(dsl.String(), dsl.Any()).Parse(context.Background(), map[string]struct{}{"a": {}})
	assertSingleCode(t, err, valigo.CodeInvalidType)
}
