package dsl

import (
	"context"
	"encoding/json"
	"math"
	"math/big"

	valigo "github.com/reoring/valigo"
	js "github.com/reoring/valigo/jsonschema"
)

// StringSchema accepts Go strings.
type StringSchema struct {
	msg     string
	actions []valigo.Action[string]
}

// String builds a string schema with an optional trailing pipeline.
func String(actions ...valigo.Action[string]) *StringSchema {
	return &StringSchema{actions: actions}
}

// Message overrides the structural-mismatch message.
func (s *StringSchema) Message(msg string) *StringSchema {
	c := *s
	c.msg = msg
	return &c
}

func (s *StringSchema) Kind() valigo.Kind { return valigo.KindString }

func (s *StringSchema) Parse(ctx context.Context, v any) (string, error) {
	sv, ok := v.(string)
	if !ok {
		return "", invalidType(valigo.KindString, v, s.msg)
	}
	out, iss := valigo.RunActions(ctx, sv, s.actions)
	if len(iss) > 0 {
		return "", iss
	}
	return out, nil
}

func (s *StringSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return erase(s.Parse(ctx, v))
}

func (s *StringSchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "string"}
	valigo.AnnotateSchema(out, s.actions)
	return out
}

// NumberSchema accepts the Go numeric family (and json.Number), producing
// float64. NaN is rejected; the nan schema is its own kind.
type NumberSchema struct {
	msg     string
	actions []valigo.Action[float64]
}

func Number(actions ...valigo.Action[float64]) *NumberSchema {
	return &NumberSchema{actions: actions}
}

func (s *NumberSchema) Message(msg string) *NumberSchema {
	c := *s
	c.msg = msg
	return &c
}

func (s *NumberSchema) Kind() valigo.Kind { return valigo.KindNumber }

func (s *NumberSchema) Parse(ctx context.Context, v any) (float64, error) {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) {
		return 0, invalidType(valigo.KindNumber, v, s.msg)
	}
	out, iss := valigo.RunActions(ctx, f, s.actions)
	if len(iss) > 0 {
		return 0, iss
	}
	return out, nil
}

func (s *NumberSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return erase(s.Parse(ctx, v))
}

func (s *NumberSchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "number"}
	valigo.AnnotateSchema(out, s.actions)
	return out
}

// IntegerSchema accepts integral numeric input, producing int64. Fractional
// input is a structural mismatch; values outside the int64 range yield an
// overflow issue.
type IntegerSchema struct {
	msg     string
	actions []valigo.Action[int64]
}

func Integer(actions ...valigo.Action[int64]) *IntegerSchema {
	return &IntegerSchema{actions: actions}
}

func (s *IntegerSchema) Message(msg string) *IntegerSchema {
	c := *s
	c.msg = msg
	return &c
}

func (s *IntegerSchema) Kind() valigo.Kind { return valigo.KindInteger }

func (s *IntegerSchema) Parse(ctx context.Context, v any) (int64, error) {
	i, iss := s.toInt64(v)
	if len(iss) > 0 {
		return 0, iss
	}
	out, iss := valigo.RunActions(ctx, i, s.actions)
	if len(iss) > 0 {
		return 0, iss
	}
	return out, nil
}

func (s *IntegerSchema) toInt64(v any) (int64, valigo.Issues) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case uint:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return 0, s.overflow(v)
		}
		return int64(t), nil
	case float64:
		return s.fromFloat(t, v)
	case float32:
		return s.fromFloat(float64(t), v)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		if f, err := t.Float64(); err == nil {
			return s.fromFloat(f, v)
		}
		return 0, invalidType(valigo.KindInteger, v, s.msg)
	}
	return 0, invalidType(valigo.KindInteger, v, s.msg)
}

func (s *IntegerSchema) fromFloat(f float64, v any) (int64, valigo.Issues) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, invalidType(valigo.KindInteger, v, s.msg)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, s.overflow(v)
	}
	return int64(f), nil
}

func (s *IntegerSchema) overflow(v any) valigo.Issues {
	return valigo.Issues{{
		Code:     valigo.CodeOverflow,
		Message:  "integer out of range",
		Input:    v,
		Expected: string(valigo.KindInteger),
		Received: valigo.TypeNameOf(v),
	}}
}

func (s *IntegerSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return erase(s.Parse(ctx, v))
}

func (s *IntegerSchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "integer"}
	valigo.AnnotateSchema(out, s.actions)
	return out
}

// BooleanSchema accepts Go bools.
type BooleanSchema struct {
	msg     string
	actions []valigo.Action[bool]
}

func Boolean(actions ...valigo.Action[bool]) *BooleanSchema {
	return &BooleanSchema{actions: actions}
}

func (s *BooleanSchema) Message(msg string) *BooleanSchema {
	c := *s
	c.msg = msg
	return &c
}

func (s *BooleanSchema) Kind() valigo.Kind { return valigo.KindBoolean }

func (s *BooleanSchema) Parse(ctx context.Context, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, invalidType(valigo.KindBoolean, v, s.msg)
	}
	out, iss := valigo.RunActions(ctx, b, s.actions)
	if len(iss) > 0 {
		return false, iss
	}
	return out, nil
}

func (s *BooleanSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return erase(s.Parse(ctx, v))
}

func (s *BooleanSchema) JSONSchema() *js.Schema { return &js.Schema{Type: "boolean"} }

// BigIntSchema accepts *big.Int, the integral Go numeric family, and integral
// json.Number, producing *big.Int.
type BigIntSchema struct {
	msg     string
	actions []valigo.Action[*big.Int]
}

func BigInt(actions ...valigo.Action[*big.Int]) *BigIntSchema {
	return &BigIntSchema{actions: actions}
}

func (s *BigIntSchema) Message(msg string) *BigIntSchema {
	c := *s
	c.msg = msg
	return &c
}

func (s *BigIntSchema) Kind() valigo.Kind { return valigo.KindBigInt }

func (s *BigIntSchema) Parse(ctx context.Context, v any) (*big.Int, error) {
	var i *big.Int
	switch t := v.(type) {
	case *big.Int:
		i = new(big.Int).Set(t)
	case int:
		i = big.NewInt(int64(t))
	case int8:
		i = big.NewInt(int64(t))
	case int16:
		i = big.NewInt(int64(t))
	case int32:
		i = big.NewInt(int64(t))
	case int64:
		i = big.NewInt(t)
	case uint:
		i = new(big.Int).SetUint64(uint64(t))
	case uint8:
		i = big.NewInt(int64(t))
	case uint16:
		i = big.NewInt(int64(t))
	case uint32:
		i = big.NewInt(int64(t))
	case uint64:
		i = new(big.Int).SetUint64(t)
	case json.Number:
		var ok bool
		i, ok = new(big.Int).SetString(t.String(), 10)
		if !ok {
			return nil, invalidType(valigo.KindBigInt, v, s.msg)
		}
	case float64:
		if t != math.Trunc(t) || math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, invalidType(valigo.KindBigInt, v, s.msg)
		}
		bf := new(big.Float).SetFloat64(t)
		i, _ = bf.Int(nil)
	default:
		return nil, invalidType(valigo.KindBigInt, v, s.msg)
	}
	out, iss := valigo.RunActions(ctx, i, s.actions)
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (s *BigIntSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return erase(s.Parse(ctx, v))
}

func (s *BigIntSchema) JSONSchema() *js.Schema { return &js.Schema{Type: "integer"} }

// NullSchema accepts only nil.
type NullSchema struct{ msg string }

func Null() *NullSchema { return &NullSchema{} }

func (s *NullSchema) Message(msg string) *NullSchema {
	c := *s
	c.msg = msg
	return &c
}

func (s *NullSchema) Kind() valigo.Kind { return valigo.KindNull }

func (s *NullSchema) Parse(ctx context.Context, v any) (any, error) {
	if v != nil {
		return nil, invalidType(valigo.KindNull, v, s.msg)
	}
	return nil, nil
}

func (s *NullSchema) ParseAny(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) }

func (s *NullSchema) JSONSchema() *js.Schema { return &js.Schema{Type: "null"} }

// UndefinedSchema accepts only the Undefined sentinel.
type UndefinedSchema struct{ msg string }

func Undefined() *UndefinedSchema { return &UndefinedSchema{} }

func (s *UndefinedSchema) Message(msg string) *UndefinedSchema {
	c := *s
	c.msg = msg
	return &c
}

func (s *UndefinedSchema) Kind() valigo.Kind { return valigo.KindUndefined }

func (s *UndefinedSchema) Parse(ctx context.Context, v any) (any, error) {
	if !valigo.IsUndefined(v) {
		return nil, invalidType(valigo.KindUndefined, v, s.msg)
	}
	return valigo.Undefined, nil
}

func (s *UndefinedSchema) ParseAny(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) }

func (s *UndefinedSchema) JSONSchema() *js.Schema { return &js.Schema{Not: &js.Schema{}} }

// NaNSchema accepts only floating-point NaN; the number schema rejects it.
type NaNSchema struct{ msg string }

func NaN() *NaNSchema { return &NaNSchema{} }

func (s *NaNSchema) Message(msg string) *NaNSchema {
	c := *s
	c.msg = msg
	return &c
}

func (s *NaNSchema) Kind() valigo.Kind { return valigo.KindNaN }

func (s *NaNSchema) Parse(ctx context.Context, v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) {
			return t, nil
		}
	case float32:
		if math.IsNaN(float64(t)) {
			return float64(t), nil
		}
	}
	return 0, invalidType(valigo.KindNaN, v, s.msg)
}

func (s *NaNSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return erase(s.Parse(ctx, v))
}

func (s *NaNSchema) JSONSchema() *js.Schema { return &js.Schema{Not: &js.Schema{}} }
