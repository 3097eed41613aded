package dsl

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	valigo "github.com/reoring/valigo"
	"github.com/reoring/valigo/i18n"
	js "github.com/reoring/valigo/jsonschema"
)

// UnionSchema tries its options in declaration order against the same input;
// the first success wins, including its transformations. When every option
// fails, the failure is one synthetic union_exhausted issue — option-level
// issues are discarded to keep union failures legible.
type UnionSchema struct {
	options []valigo.AnySchema
	msg     string
}

// Union builds a union schema over the options.
func Union(options ...valigo.AnySchema) *UnionSchema {
	return &UnionSchema{options: options}
}

func (u *UnionSchema) Message(msg string) *UnionSchema {
	c := *u
	c.msg = msg
	return &c
}

func (u *UnionSchema) Kind() valigo.Kind { return valigo.KindUnion }

func (u *UnionSchema) Parse(ctx context.Context, v any) (any, error) {
	ctx, ok := valigo.EnterNesting(ctx)
	if !ok {
		return nil, depthExceeded(v)
	}
	for _, opt := range u.options {
		out, err := opt.ParseAny(ctx, v)
		if err == nil {
			return out, nil
		}
	}
	expected := u.expected()
	msg := u.msg
	if msg == "" {
		msg = i18n.T(valigo.CodeUnionExhausted, map[string]string{
			"expected": expected,
			"received": valigo.TypeNameOf(v),
		})
	}
	return nil, valigo.Issues{{
		Code:     valigo.CodeUnionExhausted,
		Message:  msg,
		Input:    v,
		Expected: expected,
		Received: valigo.TypeNameOf(v),
	}}
}

func (u *UnionSchema) expected() string {
	kinds := make([]string, len(u.options))
	for i, opt := range u.options {
		kinds[i] = string(opt.Kind())
	}
	return strings.Join(kinds, " | ")
}

func (u *UnionSchema) ParseAny(ctx context.Context, v any) (any, error) { return u.Parse(ctx, v) }

func (u *UnionSchema) JSONSchema() *js.Schema {
	out := &js.Schema{OneOf: make([]*js.Schema, len(u.options))}
	for i, opt := range u.options {
		out.OneOf[i] = opt.JSONSchema()
	}
	return out
}

// EnumSchema accepts a value strictly equal to one member of a fixed set.
type EnumSchema[T comparable] struct {
	members []T
	msg     string
}

// Enum builds an enum schema over the member list. Order is preserved for
// documentation; the check is by value equality.
func Enum[T comparable](members ...T) *EnumSchema[T] {
	return &EnumSchema[T]{members: members}
}

func (e *EnumSchema[T]) Message(msg string) *EnumSchema[T] {
	c := *e
	c.msg = msg
	return &c
}

func (e *EnumSchema[T]) Kind() valigo.Kind { return valigo.KindEnum }

func (e *EnumSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	if tv, ok := v.(T); ok {
		for _, m := range e.members {
			if tv == m {
				return tv, nil
			}
		}
	}
	var zero T
	return zero, e.failure(v)
}

func (e *EnumSchema[T]) failure(v any) valigo.Issues {
	expected := make([]string, len(e.members))
	values := make([]any, len(e.members))
	for i, m := range e.members {
		expected[i] = fmt.Sprint(m)
		values[i] = m
	}
	msg := e.msg
	if msg == "" {
		msg = i18n.T(valigo.CodeInvalidEnum, map[string]string{"expected": strings.Join(expected, " | ")})
	}
	return valigo.Issues{{
		Code:     valigo.CodeInvalidEnum,
		Message:  msg,
		Input:    v,
		Expected: strings.Join(expected, " | "),
		Received: valigo.TypeNameOf(v),
		Params:   map[string]any{"values": values},
	}}
}

func (e *EnumSchema[T]) ParseAny(ctx context.Context, v any) (any, error) {
	return erase(e.Parse(ctx, v))
}

func (e *EnumSchema[T]) JSONSchema() *js.Schema {
	out := &js.Schema{Enum: make([]any, len(e.members))}
	for i, m := range e.members {
		out.Enum[i] = m
	}
	return out
}

// NativeEnumSchema accepts a value equal to one of an externally supplied
// name-to-value mapping, the Go rendition of a foreign enum object.
type NativeEnumSchema[T comparable] struct {
	values map[string]T
	msg    string
}

// NativeEnum builds a schema over an external enumeration's values.
func NativeEnum[T comparable](values map[string]T) *NativeEnumSchema[T] {
	return &NativeEnumSchema[T]{values: values}
}

func (e *NativeEnumSchema[T]) Message(msg string) *NativeEnumSchema[T] {
	c := *e
	c.msg = msg
	return &c
}

func (e *NativeEnumSchema[T]) Kind() valigo.Kind { return valigo.KindNativeEnum }

func (e *NativeEnumSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	if tv, ok := v.(T); ok {
		for _, mv := range e.values {
			if tv == mv {
				return tv, nil
			}
		}
	}
	var zero T
	names := make([]string, 0, len(e.values))
	for n := range e.values {
		names = append(names, n)
	}
	sort.Strings(names)
	msg := e.msg
	if msg == "" {
		msg = i18n.T(valigo.CodeInvalidEnum, map[string]string{"expected": strings.Join(names, " | ")})
	}
	return zero, valigo.Issues{{
		Code:     valigo.CodeInvalidEnum,
		Message:  msg,
		Input:    v,
		Expected: strings.Join(names, " | "),
		Received: valigo.TypeNameOf(v),
	}}
}

func (e *NativeEnumSchema[T]) ParseAny(ctx context.Context, v any) (any, error) {
	return erase(e.Parse(ctx, v))
}

func (e *NativeEnumSchema[T]) JSONSchema() *js.Schema {
	names := make([]string, 0, len(e.values))
	for n := range e.values {
		names = append(names, n)
	}
	sort.Strings(names)
	out := &js.Schema{Enum: make([]any, len(names))}
	for i, n := range names {
		out.Enum[i] = e.values[n]
	}
	return out
}

// InstanceSchema accepts values satisfying a dynamic type assertion to T, the
// Go rendition of an instance/class-membership check.
type InstanceSchema[T any] struct{ msg string }

// Instance builds an instance schema for T.
func Instance[T any]() *InstanceSchema[T] { return &InstanceSchema[T]{} }

func (s *InstanceSchema[T]) Message(msg string) *InstanceSchema[T] {
	c := *s
	c.msg = msg
	return &c
}

func (s *InstanceSchema[T]) Kind() valigo.Kind { return valigo.KindInstance }

func (s *InstanceSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	if tv, ok := v.(T); ok {
		return tv, nil
	}
	var zero T
	expected := reflect.TypeOf(&zero).Elem().String()
	msg := s.msg
	if msg == "" {
		msg = i18n.T(valigo.CodeInvalidType, map[string]string{"expected": expected, "received": valigo.TypeNameOf(v)})
	}
	return zero, valigo.Issues{{
		Code:     valigo.CodeInvalidType,
		Message:  msg,
		Input:    v,
		Expected: expected,
		Received: valigo.TypeNameOf(v),
	}}
}

func (s *InstanceSchema[T]) ParseAny(ctx context.Context, v any) (any, error) {
	return erase(s.Parse(ctx, v))
}

func (s *InstanceSchema[T]) JSONSchema() *js.Schema { return &js.Schema{} }

// SpecialSchema accepts values satisfying an arbitrary caller-supplied
// predicate; used for branded/refined subtypes.
type SpecialSchema struct {
	name string
	pred func(any) bool
	msg  string
}

// Special builds a predicate schema. name identifies the check in issues.
func Special(name string, pred func(any) bool) *SpecialSchema {
	return &SpecialSchema{name: name, pred: pred}
}

func (s *SpecialSchema) Message(msg string) *SpecialSchema {
	c := *s
	c.msg = msg
	return &c
}

func (s *SpecialSchema) Kind() valigo.Kind { return valigo.KindSpecial }

func (s *SpecialSchema) Parse(ctx context.Context, v any) (any, error) {
	if s.pred(v) {
		return v, nil
	}
	msg := s.msg
	if msg == "" {
		msg = i18n.T(valigo.CodeCustom, map[string]string{"rule": s.name})
	}
	return nil, valigo.Issues{{
		Code:     valigo.CodeCustom,
		Message:  msg,
		Input:    v,
		Expected: s.name,
		Received: valigo.TypeNameOf(v),
		Rule:     s.name,
	}}
}

func (s *SpecialSchema) ParseAny(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) }

func (s *SpecialSchema) JSONSchema() *js.Schema { return &js.Schema{} }

// AnySchemaNode accepts everything unchanged.
type AnySchemaNode struct{ kind valigo.Kind }

// Any accepts every input.
func Any() *AnySchemaNode { return &AnySchemaNode{kind: valigo.KindAny} }

// Unknown accepts every input; it is a distinct kind from Any for
// documentation purposes with identical runtime behavior.
func Unknown() *AnySchemaNode { return &AnySchemaNode{kind: valigo.KindUnknown} }

func (s *AnySchemaNode) Kind() valigo.Kind { return s.kind }

func (s *AnySchemaNode) Parse(ctx context.Context, v any) (any, error) { return v, nil }

func (s *AnySchemaNode) ParseAny(ctx context.Context, v any) (any, error) { return v, nil }

func (s *AnySchemaNode) JSONSchema() *js.Schema { return &js.Schema{} }

// NeverSchema rejects every input with a fixed issue.
type NeverSchema struct{ msg string }

// Never rejects every input.
func Never() *NeverSchema { return &NeverSchema{} }

func (s *NeverSchema) Message(msg string) *NeverSchema {
	c := *s
	c.msg = msg
	return &c
}

func (s *NeverSchema) Kind() valigo.Kind { return valigo.KindNever }

func (s *NeverSchema) Parse(ctx context.Context, v any) (any, error) {
	return nil, invalidType(valigo.KindNever, v, s.msg)
}

func (s *NeverSchema) ParseAny(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) }

func (s *NeverSchema) JSONSchema() *js.Schema { return &js.Schema{Not: &js.Schema{}} }
