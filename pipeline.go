package valigo

import (
	"context"
	"fmt"

	"github.com/reoring/valigo/i18n"
	js "github.com/reoring/valigo/jsonschema"
)

// Action is one step of a schema's pipeline: either a validation (predicate
// that yields an issue on rejection without altering the value) or a
// transformation (pure function replacing the running value). Actions are
// immutable; the chainers return modified copies.
type Action[T any] struct {
	code      string
	rule      string
	message   string
	params    map[string]any
	check     func(T) bool
	transform func(T) T
	annotate  func(*js.Schema)
}

// Check builds a validation action with code "custom". rule names the check in
// issue output.
func Check[T any](rule string, pred func(T) bool) Action[T] {
	return Action[T]{code: CodeCustom, rule: rule, check: pred}
}

// Rule builds a validation action with an explicit issue code and structured
// parameters. The stock actions in the pipe package are built on it.
func Rule[T any](code, rule string, params map[string]any, pred func(T) bool) Action[T] {
	return Action[T]{code: code, rule: rule, params: params, check: pred}
}

// Transform builds a transformation action. fn must be pure; its output feeds
// the next action and, at the end of the pipeline, becomes the schema output.
func Transform[T any](fn func(T) T) Action[T] {
	return Action[T]{transform: fn}
}

// Message overrides the issue message the action produces on rejection.
func (a Action[T]) Message(msg string) Action[T] {
	a.message = msg
	return a
}

// Annotate attaches a JSON Schema annotation hook applied during export.
func (a Action[T]) Annotate(fn func(*js.Schema)) Action[T] {
	a.annotate = fn
	return a
}

// RunActions executes the pipeline over an already structurally-valid value.
// Actions run strictly in declaration order; the first failing validation
// stops the run and yields exactly one issue. An empty pipeline is an identity
// pass-through.
func RunActions[T any](ctx context.Context, v T, actions []Action[T]) (T, Issues) {
	_ = ctx
	for _, a := range actions {
		if a.transform != nil {
			v = a.transform(v)
			continue
		}
		if a.check == nil || a.check(v) {
			continue
		}
		msg := a.message
		if msg == "" {
			msg = i18n.T(a.code, i18nData(a.rule, a.params))
		}
		var zero T
		return zero, Issues{{
			Code:     a.code,
			Message:  msg,
			Input:    v,
			Received: TypeNameOf(v),
			Rule:     a.rule,
			Params:   a.params,
		}}
	}
	return v, nil
}

// AnnotateSchema applies every action's JSON Schema annotation hook to sch.
func AnnotateSchema[T any](sch *js.Schema, actions []Action[T]) {
	for _, a := range actions {
		if a.annotate != nil {
			a.annotate(sch)
		}
	}
}

func i18nData(rule string, params map[string]any) map[string]string {
	if rule == "" && len(params) == 0 {
		return nil
	}
	data := make(map[string]string, len(params)+1)
	if rule != "" {
		data["rule"] = rule
	}
	for k, v := range params {
		data[k] = fmt.Sprint(v)
	}
	return data
}
