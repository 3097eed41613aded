package pipe

import (
	valigo "github.com/reoring/valigo"
)

// Cross-field object rules, applied to the reconstructed object output via
// ObjectSchema.Pipe. A key counts as present when it exists and is neither
// nil nor Undefined.

// AtLeastOne requires at least one of the keys to be present.
func AtLeastOne(keys ...string) valigo.Action[map[string]any] {
	return valigo.Rule[map[string]any](valigo.CodeCustom, "at_least_one", map[string]any{"keys": keys}, func(m map[string]any) bool {
		for _, k := range keys {
			if present(m, k) {
				return true
			}
		}
		return false
	})
}

// MutuallyExclusive allows at most one of the keys to be present.
func MutuallyExclusive(keys ...string) valigo.Action[map[string]any] {
	return valigo.Rule[map[string]any](valigo.CodeCustom, "mutually_exclusive", map[string]any{"keys": keys}, func(m map[string]any) bool {
		n := 0
		for _, k := range keys {
			if present(m, k) {
				n++
			}
		}
		return n <= 1
	})
}

// RequireWith requires every dep to be present whenever key is present.
func RequireWith(key string, deps ...string) valigo.Action[map[string]any] {
	return valigo.Rule[map[string]any](valigo.CodeCustom, "require_with", map[string]any{"key": key, "deps": deps}, func(m map[string]any) bool {
		if !present(m, key) {
			return true
		}
		for _, d := range deps {
			if !present(m, d) {
				return false
			}
		}
		return true
	})
}

func present(m map[string]any, k string) bool {
	v, ok := m[k]
	return ok && v != nil && !valigo.IsUndefined(v)
}
