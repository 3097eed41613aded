package dsl

import (
	"context"
	"sort"

	valigo "github.com/reoring/valigo"
	js "github.com/reoring/valigo/jsonschema"
)

// RecordSchema validates a homogeneous string-keyed map: every own key against
// one shared value schema, optionally with a key schema.
type RecordSchema struct {
	key     valigo.AnySchema // nil when any string key is accepted
	value   valigo.AnySchema
	msg     string
	actions []valigo.Action[map[string]any]
}

// Record builds a record schema over a shared value schema.
func Record(value valigo.AnySchema) *RecordSchema {
	return &RecordSchema{value: value}
}

// RecordWithKeys builds a record schema that also validates each key.
func RecordWithKeys(key, value valigo.AnySchema) *RecordSchema {
	return &RecordSchema{key: key, value: value}
}

func (r *RecordSchema) Message(msg string) *RecordSchema {
	c := *r
	c.msg = msg
	return &c
}

// Pipe appends pipeline actions running over the reconstructed record.
func (r *RecordSchema) Pipe(actions ...valigo.Action[map[string]any]) *RecordSchema {
	c := *r
	c.actions = append(append([]valigo.Action[map[string]any](nil), r.actions...), actions...)
	return &c
}

func (r *RecordSchema) Kind() valigo.Kind { return valigo.KindRecord }

func (r *RecordSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	ctx, ok := valigo.EnterNesting(ctx)
	if !ok {
		return nil, depthExceeded(v)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalidType(valigo.KindRecord, v, r.msg)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(m))
	var iss valigo.Issues
	for _, k := range keys {
		if r.key != nil {
			if _, err := r.key.ParseAny(ctx, k); err != nil {
				iss = valigo.AppendIssues(iss, childIssues(err, valigo.Key(k))...)
				if valigo.IsFailFast(ctx) {
					return nil, iss
				}
				continue
			}
		}
		parsed, err := r.value.ParseAny(ctx, m[k])
		if err != nil {
			iss = valigo.AppendIssues(iss, childIssues(err, valigo.Key(k))...)
			if valigo.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out[k] = parsed
	}
	if len(iss) > 0 {
		return nil, iss
	}

	res, iss := valigo.RunActions(ctx, out, r.actions)
	if len(iss) > 0 {
		return nil, iss
	}
	return res, nil
}

func (r *RecordSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return erase(r.Parse(ctx, v))
}

func (r *RecordSchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "object", AdditionalProperties: r.value.JSONSchema()}
	if r.key != nil {
		out.PropertyNames = r.key.JSONSchema()
	}
	valigo.AnnotateSchema(out, r.actions)
	return out
}
