package dsl

import (
	"context"
	"reflect"

	valigo "github.com/reoring/valigo"
	js "github.com/reoring/valigo/jsonschema"
)

// ArraySchema validates an ordered sequence against a single element schema.
type ArraySchema struct {
	elem    valigo.AnySchema
	msg     string
	actions []valigo.Action[[]any]
}

// Array builds an array schema with an optional trailing pipeline.
func Array(elem valigo.AnySchema, actions ...valigo.Action[[]any]) *ArraySchema {
	return &ArraySchema{elem: elem, actions: actions}
}

func (a *ArraySchema) Message(msg string) *ArraySchema {
	c := *a
	c.msg = msg
	return &c
}

func (a *ArraySchema) Kind() valigo.Kind { return valigo.KindArray }

func (a *ArraySchema) Parse(ctx context.Context, v any) ([]any, error) {
	ctx, ok := valigo.EnterNesting(ctx)
	if !ok {
		return nil, depthExceeded(v)
	}
	arr, ok := asSlice(v)
	if !ok {
		return nil, invalidType(valigo.KindArray, v, a.msg)
	}

	out := make([]any, 0, len(arr))
	var iss valigo.Issues
	for i, el := range arr {
		parsed, err := a.elem.ParseAny(ctx, el)
		if err != nil {
			iss = valigo.AppendIssues(iss, childIssues(err, valigo.Index(i))...)
			if valigo.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out = append(out, parsed)
	}
	if len(iss) > 0 {
		return nil, iss
	}

	res, iss := valigo.RunActions(ctx, out, a.actions)
	if len(iss) > 0 {
		return nil, iss
	}
	return res, nil
}

func (a *ArraySchema) ParseAny(ctx context.Context, v any) (any, error) {
	return erase(a.Parse(ctx, v))
}

func (a *ArraySchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "array", Items: a.elem.JSONSchema()}
	valigo.AnnotateSchema(out, a.actions)
	return out
}

// asSlice widens []any plus reflect-visible slices/arrays (strings excluded).
func asSlice(v any) ([]any, bool) {
	if arr, ok := v.([]any); ok {
		return arr, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	}
	return nil, false
}

// TypedArraySchema is the typed-output variant of Array for homogeneous
// element types.
type TypedArraySchema[E any] struct {
	elem    valigo.Schema[E]
	msg     string
	actions []valigo.Action[[]E]
}

// ArrayOf builds an array schema whose output is []E.
func ArrayOf[E any](elem valigo.Schema[E], actions ...valigo.Action[[]E]) *TypedArraySchema[E] {
	return &TypedArraySchema[E]{elem: elem, actions: actions}
}

func (a *TypedArraySchema[E]) Message(msg string) *TypedArraySchema[E] {
	c := *a
	c.msg = msg
	return &c
}

func (a *TypedArraySchema[E]) Kind() valigo.Kind { return valigo.KindArray }

func (a *TypedArraySchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
	ctx, ok := valigo.EnterNesting(ctx)
	if !ok {
		return nil, depthExceeded(v)
	}
	arr, ok := asSlice(v)
	if !ok {
		return nil, invalidType(valigo.KindArray, v, a.msg)
	}

	out := make([]E, 0, len(arr))
	var iss valigo.Issues
	for i, el := range arr {
		parsed, err := a.elem.Parse(ctx, el)
		if err != nil {
			iss = valigo.AppendIssues(iss, childIssues(err, valigo.Index(i))...)
			if valigo.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out = append(out, parsed)
	}
	if len(iss) > 0 {
		return nil, iss
	}

	res, iss := valigo.RunActions(ctx, out, a.actions)
	if len(iss) > 0 {
		return nil, iss
	}
	return res, nil
}

func (a *TypedArraySchema[E]) ParseAny(ctx context.Context, v any) (any, error) {
	return erase(a.Parse(ctx, v))
}

func (a *TypedArraySchema[E]) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "array", Items: a.elem.JSONSchema()}
	valigo.AnnotateSchema(out, a.actions)
	return out
}
