package dsl

import (
	"encoding/json"

	valigo "github.com/reoring/valigo"
	"github.com/reoring/valigo/i18n"
)

// invalidType builds the single structural-mismatch issue every schema kind
// produces. msg, when non-empty, overrides the translated default.
func invalidType(kind valigo.Kind, v any, msg string) valigo.Issues {
	received := valigo.TypeNameOf(v)
	m := msg
	if m == "" {
		m = i18n.T(valigo.CodeInvalidType, map[string]string{"expected": string(kind), "received": received})
	}
	return valigo.Issues{{Code: valigo.CodeInvalidType, Message: m, Input: v, Expected: string(kind), Received: received}}
}

func depthExceeded(v any) valigo.Issues {
	return valigo.Issues{{Code: valigo.CodeDepthExceeded, Message: i18n.T(valigo.CodeDepthExceeded, nil), Input: v}}
}

// childIssues rebases a child schema failure under the parent segment.
func childIssues(err error, seg valigo.Segment) valigo.Issues {
	if err == nil {
		return nil
	}
	if iss, ok := valigo.AsIssues(err); ok {
		return iss.Under(seg)
	}
	return valigo.Issues{{Code: valigo.CodeParseError, Message: err.Error(), Path: valigo.Path{seg}}}
}

// erase forwards a typed parse result through the type-erased ParseAny view.
func erase[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// toFloat widens the Go numeric family (and json.Number) to float64.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}
