package pipe

import (
	"reflect"

	valigo "github.com/reoring/valigo"
	js "github.com/reoring/valigo/jsonschema"
)

// MinItems requires at least n elements.
func MinItems(n int) valigo.Action[[]any] {
	return valigo.Rule[[]any](valigo.CodeTooSmall, "min_items", map[string]any{"min": n}, func(v []any) bool {
		return len(v) >= n
	}).Annotate(func(sch *js.Schema) { sch.MinItems = &n })
}

// MaxItems allows at most n elements.
func MaxItems(n int) valigo.Action[[]any] {
	return valigo.Rule[[]any](valigo.CodeTooBig, "max_items", map[string]any{"max": n}, func(v []any) bool {
		return len(v) <= n
	}).Annotate(func(sch *js.Schema) { sch.MaxItems = &n })
}

// UniqueItems rejects arrays containing deeply-equal elements.
func UniqueItems() valigo.Action[[]any] {
	return valigo.Rule[[]any](valigo.CodeNotUnique, "unique_items", nil, func(v []any) bool {
		for i := 0; i < len(v); i++ {
			for j := i + 1; j < len(v); j++ {
				if reflect.DeepEqual(v[i], v[j]) {
					return false
				}
			}
		}
		return true
	}).Annotate(func(sch *js.Schema) { sch.UniqueItems = true })
}

// MinSize requires at least n entries in a record/object output.
func MinSize(n int) valigo.Action[map[string]any] {
	return valigo.Rule[map[string]any](valigo.CodeTooSmall, "min_size", map[string]any{"min": n}, func(v map[string]any) bool {
		return len(v) >= n
	}).Annotate(func(sch *js.Schema) { sch.MinProperties = &n })
}

// MaxSize allows at most n entries in a record/object output.
func MaxSize(n int) valigo.Action[map[string]any] {
	return valigo.Rule[map[string]any](valigo.CodeTooBig, "max_size", map[string]any{"max": n}, func(v map[string]any) bool {
		return len(v) <= n
	}).Annotate(func(sch *js.Schema) { sch.MaxProperties = &n })
}
