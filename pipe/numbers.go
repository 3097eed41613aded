package pipe

import (
	"cmp"
	"math"

	valigo "github.com/reoring/valigo"
	js "github.com/reoring/valigo/jsonschema"
)

// MinValue requires v >= min (inclusive).
func MinValue[T cmp.Ordered](min T) valigo.Action[T] {
	a := valigo.Rule[T](valigo.CodeTooSmall, "min_value", map[string]any{"min": min}, func(v T) bool {
		return v >= min
	})
	if f, ok := toJSONNumber(min); ok {
		a = a.Annotate(func(sch *js.Schema) { sch.Minimum = &f })
	}
	return a
}

// MaxValue requires v <= max (inclusive).
func MaxValue[T cmp.Ordered](max T) valigo.Action[T] {
	a := valigo.Rule[T](valigo.CodeTooBig, "max_value", map[string]any{"max": max}, func(v T) bool {
		return v <= max
	})
	if f, ok := toJSONNumber(max); ok {
		a = a.Annotate(func(sch *js.Schema) { sch.Maximum = &f })
	}
	return a
}

// Int requires the float64 to be integral.
func Int() valigo.Action[float64] {
	return valigo.Rule[float64](valigo.CodeInvalidFormat, "int", nil, func(v float64) bool {
		return !math.IsInf(v, 0) && v == math.Trunc(v)
	})
}

// MultipleOf requires the value to be a multiple of n.
func MultipleOf(n float64) valigo.Action[float64] {
	return valigo.Rule[float64](valigo.CodeNotMultiple, "multiple_of", map[string]any{"divisor": n}, func(v float64) bool {
		if n == 0 {
			return false
		}
		r := math.Mod(v, n)
		return r == 0 || math.Abs(r) < 1e-9
	}).Annotate(func(sch *js.Schema) { sch.MultipleOf = &n })
}

// Finite rejects infinities.
func Finite() valigo.Action[float64] {
	return valigo.Rule[float64](valigo.CodeNotFinite, "finite", nil, func(v float64) bool {
		return !math.IsInf(v, 0)
	})
}

func toJSONNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	}
	return 0, false
}
