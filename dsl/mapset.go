package dsl

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	valigo "github.com/reoring/valigo"
	js "github.com/reoring/valigo/jsonschema"
)

// MapSchema validates keyed collections: every entry's key and value against
// the declared schemas. Any Go map type is accepted except the set idiom
// (struct{} elements).
type MapSchema struct {
	key     valigo.AnySchema
	value   valigo.AnySchema
	msg     string
	actions []valigo.Action[map[any]any]
}

// Map builds a map schema over key and value schemas.
func Map(key, value valigo.AnySchema) *MapSchema {
	return &MapSchema{key: key, value: value}
}

func (m *MapSchema) Message(msg string) *MapSchema {
	c := *m
	c.msg = msg
	return &c
}

// Pipe appends pipeline actions running over the reconstructed map.
func (m *MapSchema) Pipe(actions ...valigo.Action[map[any]any]) *MapSchema {
	c := *m
	c.actions = append(append([]valigo.Action[map[any]any](nil), m.actions...), actions...)
	return &c
}

func (m *MapSchema) Kind() valigo.Kind { return valigo.KindMap }

func (m *MapSchema) Parse(ctx context.Context, v any) (map[any]any, error) {
	ctx, ok := valigo.EnterNesting(ctx)
	if !ok {
		return nil, depthExceeded(v)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || isSetType(rv.Type()) {
		return nil, invalidType(valigo.KindMap, v, m.msg)
	}

	out := make(map[any]any, rv.Len())
	var iss valigo.Issues
	for _, mk := range sortedMapKeys(rv) {
		seg := valigo.Entry(mk.Interface())
		pk, err := m.key.ParseAny(ctx, mk.Interface())
		if err != nil {
			iss = valigo.AppendIssues(iss, childIssues(err, seg)...)
			if valigo.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		pv, err := m.value.ParseAny(ctx, rv.MapIndex(mk).Interface())
		if err != nil {
			iss = valigo.AppendIssues(iss, childIssues(err, seg)...)
			if valigo.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out[pk] = pv
	}
	if len(iss) > 0 {
		return nil, iss
	}

	res, iss := valigo.RunActions(ctx, out, m.actions)
	if len(iss) > 0 {
		return nil, iss
	}
	return res, nil
}

func (m *MapSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return erase(m.Parse(ctx, v))
}

func (m *MapSchema) JSONSchema() *js.Schema {
	return &js.Schema{
		Type:                 "object",
		AdditionalProperties: m.value.JSONSchema(),
		PropertyNames:        m.key.JSONSchema(),
	}
}

// SetSchema validates the Go set idiom map[E]struct{}: every member against
// the declared member schema.
type SetSchema struct {
	member  valigo.AnySchema
	msg     string
	actions []valigo.Action[map[any]struct{}]
}

// Set builds a set schema over the member schema.
func Set(member valigo.AnySchema) *SetSchema {
	return &SetSchema{member: member}
}

func (s *SetSchema) Message(msg string) *SetSchema {
	c := *s
	c.msg = msg
	return &c
}

// Pipe appends pipeline actions running over the reconstructed set.
func (s *SetSchema) Pipe(actions ...valigo.Action[map[any]struct{}]) *SetSchema {
	c := *s
	c.actions = append(append([]valigo.Action[map[any]struct{}](nil), s.actions...), actions...)
	return &c
}

func (s *SetSchema) Kind() valigo.Kind { return valigo.KindSet }

func (s *SetSchema) Parse(ctx context.Context, v any) (map[any]struct{}, error) {
	ctx, ok := valigo.EnterNesting(ctx)
	if !ok {
		return nil, depthExceeded(v)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || !isSetType(rv.Type()) {
		return nil, invalidType(valigo.KindSet, v, s.msg)
	}

	out := make(map[any]struct{}, rv.Len())
	var iss valigo.Issues
	for _, mk := range sortedMapKeys(rv) {
		parsed, err := s.member.ParseAny(ctx, mk.Interface())
		if err != nil {
			iss = valigo.AppendIssues(iss, childIssues(err, valigo.Entry(mk.Interface()))...)
			if valigo.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out[parsed] = struct{}{}
	}
	if len(iss) > 0 {
		return nil, iss
	}

	res, iss := valigo.RunActions(ctx, out, s.actions)
	if len(iss) > 0 {
		return nil, iss
	}
	return res, nil
}

func (s *SetSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return erase(s.Parse(ctx, v))
}

func (s *SetSchema) JSONSchema() *js.Schema {
	return &js.Schema{Type: "array", Items: s.member.JSONSchema(), UniqueItems: true}
}

func isSetType(t reflect.Type) bool {
	return t.Elem() == reflect.TypeOf(struct{}{})
}

// sortedMapKeys orders keys by their printed form so issue order stays
// deterministic across runs.
func sortedMapKeys(rv reflect.Value) []reflect.Value {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	return keys
}
