package valigo

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
)

// undefinedValue is the concrete type behind the Undefined sentinel.
type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

// Undefined models the absence of a value, distinct from nil (null). An object
// schema presents Undefined to a field schema when the key is missing, so
// required-ness emerges from whether the field schema accepts it.
var Undefined any = undefinedValue{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefinedValue)
	return ok
}

// TypeNameOf names the shape of a runtime value for issue text ("string",
// "number", "null", "undefined", "nan", "object", "array", ...). NaN is
// reported as its own shape because the nan schema is a distinct kind.
func TypeNameOf(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case undefinedValue:
		return "undefined"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		if math.IsNaN(t) {
			return "nan"
		}
		return "number"
	case float32:
		if math.IsNaN(float64(t)) {
			return "nan"
		}
		return "number"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case json.Number:
		return "number"
	case *big.Int:
		return "bigint"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	rt := reflect.TypeOf(v)
	switch rt.Kind() {
	case reflect.Map:
		if rt.Elem() == reflect.TypeOf(struct{}{}) {
			return "set"
		}
		return "map"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct:
		return rt.String()
	default:
		return rt.String()
	}
}
