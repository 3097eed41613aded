package dsl

import (
	"context"
	"sort"

	valigo "github.com/reoring/valigo"
	"github.com/reoring/valigo/i18n"
	js "github.com/reoring/valigo/jsonschema"
)

// ObjectField declares one object property. Fields validate in declaration
// order; a missing key presents the Undefined sentinel to the field schema, so
// required-ness emerges from whether the field schema accepts Undefined.
type ObjectField struct {
	Name   string
	Schema valigo.AnySchema
}

// Field declares an object property.
func Field(name string, s valigo.AnySchema) ObjectField {
	return ObjectField{Name: name, Schema: s}
}

type objectRefine struct {
	name string
	fn   func(map[string]any) bool
	msg  string
}

// ObjectSchema validates structural records. Unknown keys pass through by
// default; Strict and Strip tighten that.
type ObjectSchema struct {
	fields  []ObjectField
	names   map[string]struct{}
	policy  valigo.UnknownPolicy
	msg     string
	refines []objectRefine
	actions []valigo.Action[map[string]any]
}

// Object builds an object schema over the declared fields.
func Object(fields ...ObjectField) *ObjectSchema {
	names := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		names[f.Name] = struct{}{}
	}
	return &ObjectSchema{fields: fields, names: names}
}

// Strict rejects unknown keys with one unknown_key issue per extra key.
func (o *ObjectSchema) Strict() *ObjectSchema { return o.withPolicy(valigo.UnknownStrict) }

// Strip drops unknown keys from the output silently.
func (o *ObjectSchema) Strip() *ObjectSchema { return o.withPolicy(valigo.UnknownStrip) }

// Passthrough copies unknown keys to the output unchanged (the default).
func (o *ObjectSchema) Passthrough() *ObjectSchema { return o.withPolicy(valigo.UnknownPassthrough) }

func (o *ObjectSchema) withPolicy(p valigo.UnknownPolicy) *ObjectSchema {
	c := *o
	c.policy = p
	return &c
}

// Message overrides the structural-mismatch message.
func (o *ObjectSchema) Message(msg string) *ObjectSchema {
	c := *o
	c.msg = msg
	return &c
}

// Refine attaches a named cross-field predicate that runs after all fields
// validated. Rejection yields one issue with code "custom".
func (o *ObjectSchema) Refine(name string, fn func(map[string]any) bool) *ObjectSchema {
	c := *o
	c.refines = append(append([]objectRefine(nil), o.refines...), objectRefine{name: name, fn: fn})
	return &c
}

// RefineMessage is Refine with an explicit failure message.
func (o *ObjectSchema) RefineMessage(name, msg string, fn func(map[string]any) bool) *ObjectSchema {
	c := *o
	c.refines = append(append([]objectRefine(nil), o.refines...), objectRefine{name: name, fn: fn, msg: msg})
	return &c
}

// Pipe appends pipeline actions that run over the reconstructed object after
// all fields and refinements succeed.
func (o *ObjectSchema) Pipe(actions ...valigo.Action[map[string]any]) *ObjectSchema {
	c := *o
	c.actions = append(append([]valigo.Action[map[string]any](nil), o.actions...), actions...)
	return &c
}

func (o *ObjectSchema) Kind() valigo.Kind { return valigo.KindObject }

func (o *ObjectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	ctx, ok := valigo.EnterNesting(ctx)
	if !ok {
		return nil, depthExceeded(v)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalidType(valigo.KindObject, v, o.msg)
	}

	out := make(map[string]any, len(m))
	var iss valigo.Issues
	for _, f := range o.fields {
		val, exists := m[f.Name]
		if !exists {
			val = valigo.Undefined
		}
		parsed, err := f.Schema.ParseAny(ctx, val)
		if err != nil {
			iss = valigo.AppendIssues(iss, childIssues(err, valigo.Key(f.Name))...)
			if valigo.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		if exists || !valigo.IsUndefined(parsed) {
			out[f.Name] = parsed
		}
	}

	switch o.policy {
	case valigo.UnknownStrict:
		for _, k := range o.sortedUnknownKeys(m) {
			iss = valigo.AppendIssues(iss, valigo.Issue{
				Code:    valigo.CodeUnknownKey,
				Message: i18n.T(valigo.CodeUnknownKey, map[string]string{"key": k}),
				Path:    valigo.Path{valigo.Key(k)},
				Input:   m[k],
			})
			if valigo.IsFailFast(ctx) {
				return nil, iss
			}
		}
	case valigo.UnknownStrip:
		// dropped
	default:
		for k, kv := range m {
			if _, known := o.names[k]; !known {
				out[k] = kv
			}
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}

	for _, r := range o.refines {
		if r.fn(out) {
			continue
		}
		msg := r.msg
		if msg == "" {
			msg = i18n.T(valigo.CodeCustom, map[string]string{"rule": r.name})
		}
		return nil, valigo.Issues{{Code: valigo.CodeCustom, Message: msg, Rule: r.name, Input: out}}
	}

	res, iss := valigo.RunActions(ctx, out, o.actions)
	if len(iss) > 0 {
		return nil, iss
	}
	return res, nil
}

func (o *ObjectSchema) sortedUnknownKeys(m map[string]any) []string {
	var extras []string
	for k := range m {
		if _, known := o.names[k]; !known {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	return extras
}

func (o *ObjectSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return erase(o.Parse(ctx, v))
}

func (o *ObjectSchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "object", Properties: make(map[string]*js.Schema, len(o.fields))}
	for _, f := range o.fields {
		out.Properties[f.Name] = f.Schema.JSONSchema()
		if acceptsUndefined(f.Schema) {
			continue
		}
		out.Required = append(out.Required, f.Name)
	}
	if o.policy == valigo.UnknownStrict {
		out.AdditionalProperties = false
	}
	valigo.AnnotateSchema(out, o.actions)
	return out
}

// acceptsUndefined reports whether a field schema tolerates a missing key.
func acceptsUndefined(s valigo.AnySchema) bool {
	switch s.Kind() {
	case valigo.KindOptional, valigo.KindNullish, valigo.KindUndefined,
		valigo.KindAny, valigo.KindUnknown:
		return true
	}
	return false
}
