package dsl

import (
	"context"
	"sync"

	valigo "github.com/reoring/valigo"
	js "github.com/reoring/valigo/jsonschema"
)

// OptionalSchema accepts the Undefined sentinel (or a configured default)
// without consulting the inner schema; everything else delegates.
type OptionalSchema struct {
	inner  valigo.AnySchema
	def    any
	hasDef bool
}

// Optional widens s to tolerate a missing value.
func Optional(s valigo.AnySchema) *OptionalSchema { return &OptionalSchema{inner: s} }

// Default replaces Undefined with v instead of passing the sentinel through.
func (o *OptionalSchema) Default(v any) *OptionalSchema {
	c := *o
	c.def = v
	c.hasDef = true
	return &c
}

func (o *OptionalSchema) Kind() valigo.Kind { return valigo.KindOptional }

func (o *OptionalSchema) Parse(ctx context.Context, v any) (any, error) {
	ctx, ok := valigo.EnterNesting(ctx)
	if !ok {
		return nil, depthExceeded(v)
	}
	if valigo.IsUndefined(v) {
		if o.hasDef {
			return o.def, nil
		}
		return valigo.Undefined, nil
	}
	return o.inner.ParseAny(ctx, v)
}

func (o *OptionalSchema) ParseAny(ctx context.Context, v any) (any, error) { return o.Parse(ctx, v) }

func (o *OptionalSchema) JSONSchema() *js.Schema {
	out := o.inner.JSONSchema()
	if o.hasDef {
		c := *out
		c.Default = o.def
		return &c
	}
	return out
}

// NullableSchema accepts nil (or a configured default) without consulting the
// inner schema; everything else delegates.
type NullableSchema struct {
	inner  valigo.AnySchema
	def    any
	hasDef bool
}

// Nullable widens s to tolerate null.
func Nullable(s valigo.AnySchema) *NullableSchema { return &NullableSchema{inner: s} }

// Default replaces nil with v instead of passing it through.
func (n *NullableSchema) Default(v any) *NullableSchema {
	c := *n
	c.def = v
	c.hasDef = true
	return &c
}

func (n *NullableSchema) Kind() valigo.Kind { return valigo.KindNullable }

func (n *NullableSchema) Parse(ctx context.Context, v any) (any, error) {
	ctx, ok := valigo.EnterNesting(ctx)
	if !ok {
		return nil, depthExceeded(v)
	}
	if v == nil {
		if n.hasDef {
			return n.def, nil
		}
		return nil, nil
	}
	return n.inner.ParseAny(ctx, v)
}

func (n *NullableSchema) ParseAny(ctx context.Context, v any) (any, error) { return n.Parse(ctx, v) }

func (n *NullableSchema) JSONSchema() *js.Schema {
	out := &js.Schema{AnyOf: []*js.Schema{n.inner.JSONSchema(), {Type: "null"}}}
	if n.hasDef {
		out.Default = n.def
	}
	return out
}

// NullishSchema accepts both nil and Undefined (or a configured default);
// everything else delegates.
type NullishSchema struct {
	inner  valigo.AnySchema
	def    any
	hasDef bool
}

// Nullish widens s to tolerate both null and a missing value.
func Nullish(s valigo.AnySchema) *NullishSchema { return &NullishSchema{inner: s} }

// Default replaces nil or Undefined with v.
func (n *NullishSchema) Default(v any) *NullishSchema {
	c := *n
	c.def = v
	c.hasDef = true
	return &c
}

func (n *NullishSchema) Kind() valigo.Kind { return valigo.KindNullish }

func (n *NullishSchema) Parse(ctx context.Context, v any) (any, error) {
	ctx, ok := valigo.EnterNesting(ctx)
	if !ok {
		return nil, depthExceeded(v)
	}
	if v == nil || valigo.IsUndefined(v) {
		if n.hasDef {
			return n.def, nil
		}
		return v, nil
	}
	return n.inner.ParseAny(ctx, v)
}

func (n *NullishSchema) ParseAny(ctx context.Context, v any) (any, error) { return n.Parse(ctx, v) }

func (n *NullishSchema) JSONSchema() *js.Schema {
	out := &js.Schema{AnyOf: []*js.Schema{n.inner.JSONSchema(), {Type: "null"}}}
	if n.hasDef {
		out.Default = n.def
	}
	return out
}

// tighten is the shared body of the non-optional/non-nullable/non-nullish
// wrappers: reject the widened acceptance up front, then delegate.
type tightenSchema struct {
	kind        valigo.Kind
	inner       valigo.AnySchema
	msg         string
	rejectNil   bool
	rejectUndef bool
}

func (t *tightenSchema) Kind() valigo.Kind { return t.kind }

func (t *tightenSchema) Parse(ctx context.Context, v any) (any, error) {
	ctx, ok := valigo.EnterNesting(ctx)
	if !ok {
		return nil, depthExceeded(v)
	}
	if (t.rejectUndef && valigo.IsUndefined(v)) || (t.rejectNil && v == nil) {
		return nil, invalidType(t.inner.Kind(), v, t.msg)
	}
	return t.inner.ParseAny(ctx, v)
}

func (t *tightenSchema) ParseAny(ctx context.Context, v any) (any, error) { return t.Parse(ctx, v) }

func (t *tightenSchema) JSONSchema() *js.Schema { return t.inner.JSONSchema() }

// NonOptionalSchema rejects Undefined even when the inner schema accepts it.
type NonOptionalSchema struct{ tightenSchema }

// NonOptional tightens a previously widened schema against missing values.
func NonOptional(s valigo.AnySchema) *NonOptionalSchema {
	return &NonOptionalSchema{tightenSchema{kind: valigo.KindNonOptional, inner: s, rejectUndef: true}}
}

// Message overrides the rejection message.
func (n *NonOptionalSchema) Message(msg string) *NonOptionalSchema {
	c := *n
	c.msg = msg
	return &c
}

// NonNullableSchema rejects nil even when the inner schema accepts it.
type NonNullableSchema struct{ tightenSchema }

// NonNullable tightens a previously widened schema against null.
func NonNullable(s valigo.AnySchema) *NonNullableSchema {
	return &NonNullableSchema{tightenSchema{kind: valigo.KindNonNullable, inner: s, rejectNil: true}}
}

func (n *NonNullableSchema) Message(msg string) *NonNullableSchema {
	c := *n
	c.msg = msg
	return &c
}

// NonNullishSchema rejects both nil and Undefined.
type NonNullishSchema struct{ tightenSchema }

// NonNullish tightens a previously widened schema against null and missing
// values.
func NonNullish(s valigo.AnySchema) *NonNullishSchema {
	return &NonNullishSchema{tightenSchema{kind: valigo.KindNonNullish, inner: s, rejectNil: true, rejectUndef: true}}
}

func (n *NonNullishSchema) Message(msg string) *NonNullishSchema {
	c := *n
	c.msg = msg
	return &c
}

// RecursiveSchema breaks construction-time cycles: the factory resolves the
// real schema lazily, at most once, on first use.
type RecursiveSchema struct {
	factory func() valigo.AnySchema
	once    sync.Once
	inner   valigo.AnySchema
}

// Recursive builds a lazy indirection for self-referential shapes.
func Recursive(factory func() valigo.AnySchema) *RecursiveSchema {
	return &RecursiveSchema{factory: factory}
}

func (r *RecursiveSchema) resolve() valigo.AnySchema {
	r.once.Do(func() { r.inner = r.factory() })
	return r.inner
}

func (r *RecursiveSchema) Kind() valigo.Kind { return valigo.KindRecursive }

func (r *RecursiveSchema) Parse(ctx context.Context, v any) (any, error) {
	ctx, ok := valigo.EnterNesting(ctx)
	if !ok {
		return nil, depthExceeded(v)
	}
	return r.resolve().ParseAny(ctx, v)
}

func (r *RecursiveSchema) ParseAny(ctx context.Context, v any) (any, error) { return r.Parse(ctx, v) }

// JSONSchema exports a self-reference; expanding the resolved schema would
// never terminate.
func (r *RecursiveSchema) JSONSchema() *js.Schema { return &js.Schema{Ref: "#"} }
