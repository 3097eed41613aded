package dsl

import (
	"context"

	"github.com/mitchellh/mapstructure"

	valigo "github.com/reoring/valigo"
	js "github.com/reoring/valigo/jsonschema"
)

// BoundSchema decodes the validated object output into a struct T. Validation
// semantics come entirely from the inner object schema; binding only maps the
// resulting map[string]any onto T's fields via their json tags.
type BoundSchema[T any] struct {
	inner valigo.Schema[map[string]any]
}

// Bind projects an object schema onto a struct type.
func Bind[T any](inner valigo.Schema[map[string]any]) *BoundSchema[T] {
	return &BoundSchema[T]{inner: inner}
}

func (b *BoundSchema[T]) Kind() valigo.Kind { return valigo.KindBound }

func (b *BoundSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	var out T
	m, err := b.inner.Parse(ctx, v)
	if err != nil {
		return out, err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: "json",
	})
	if err != nil {
		return out, valigo.Issues{{Code: valigo.CodeParseError, Message: err.Error(), Input: v}}
	}
	if err := dec.Decode(m); err != nil {
		return out, valigo.Issues{{Code: valigo.CodeParseError, Message: err.Error(), Input: v}}
	}
	return out, nil
}

func (b *BoundSchema[T]) ParseAny(ctx context.Context, v any) (any, error) {
	return erase(b.Parse(ctx, v))
}

func (b *BoundSchema[T]) JSONSchema() *js.Schema { return b.inner.JSONSchema() }
