package valigo_test

import (
	"context"
	"strings"
	"testing"

	valigo "github.com/reoring/valigo"
)

func TestRunActions_EmptyPipelineIsIdentity(t *testing.T) {
	out, iss := valigo.RunActions(context.Background(), "hello", nil)
	if iss != nil {
		t.Fatalf("unexpected issues: %v", iss)
	}
	if out != "hello" {
		t.Fatalf("value changed: %q", out)
	}
}

func TestRunActions_DeclarationOrder(t *testing.T) {
	var seen []string
	actions := []valigo.Action[string]{
		valigo.Check("first", func(string) bool { seen = append(seen, "first"); return true }),
		valigo.Check("second", func(string) bool { seen = append(seen, "second"); return true }),
	}
	if _, iss := valigo.RunActions(context.Background(), "x", actions); iss != nil {
		t.Fatalf("unexpected issues: %v", iss)
	}
	if len(seen) != 2 || seen[0] != "first" || seen[1] != "second" {
		t.Fatalf("wrong order: %v", seen)
	}
}

func TestRunActions_TransformFeedsNextAction(t *testing.T) {
	actions := []valigo.Action[string]{
		valigo.Transform(strings.TrimSpace),
		valigo.Check("non_empty", func(s string) bool { return s != "" }),
		valigo.Transform(strings.ToUpper),
	}
	out, iss := valigo.RunActions(context.Background(), "  ok  ", actions)
	if iss != nil {
		t.Fatalf("unexpected issues: %v", iss)
	}
	if out != "OK" {
		t.Fatalf("got %q", out)
	}
}

func TestRunActions_FirstFailureStopsPipeline(t *testing.T) {
	ran := false
	actions := []valigo.Action[int]{
		valigo.Check("positive", func(n int) bool { return n > 0 }),
		valigo.Check("never", func(int) bool { ran = true; return true }),
	}
	_, iss := valigo.RunActions(context.Background(), -1, actions)
	if len(iss) != 1 {
		t.Fatalf("want exactly one issue, got %v", iss)
	}
	if ran {
		t.Fatal("pipeline continued past failing validation")
	}
	if iss[0].Code != valigo.CodeCustom || iss[0].Rule != "positive" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}

func TestRunActions_MessageOverride(t *testing.T) {
	actions := []valigo.Action[int]{
		valigo.Check("positive", func(n int) bool { return n > 0 }).Message("must be positive"),
	}
	_, iss := valigo.RunActions(context.Background(), 0, actions)
	if len(iss) != 1 || iss[0].Message != "must be positive" {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestRunActions_RuleCarriesCodeAndParams(t *testing.T) {
	actions := []valigo.Action[int]{
		valigo.Rule(valigo.CodeTooSmall, "min_value", map[string]any{"min": 3}, func(n int) bool { return n >= 3 }),
	}
	_, iss := valigo.RunActions(context.Background(), 1, actions)
	if len(iss) != 1 {
		t.Fatalf("want one issue, got %v", iss)
	}
	if iss[0].Code != valigo.CodeTooSmall {
		t.Fatalf("code = %q", iss[0].Code)
	}
	if iss[0].Params["min"] != 3 {
		t.Fatalf("params = %v", iss[0].Params)
	}
}
