package dsl

import (
	"context"
	"strconv"

	valigo "github.com/reoring/valigo"
	"github.com/reoring/valigo/i18n"
	js "github.com/reoring/valigo/jsonschema"
)

// TupleSchema validates a fixed-arity sequence, one positional schema per
// element. A wrong length is a structural failure; positions are not
// validated in that case.
type TupleSchema struct {
	items   []valigo.AnySchema
	msg     string
	actions []valigo.Action[[]any]
}

// Tuple builds a tuple schema over the positional schemas.
func Tuple(items ...valigo.AnySchema) *TupleSchema {
	return &TupleSchema{items: items}
}

func (t *TupleSchema) Message(msg string) *TupleSchema {
	c := *t
	c.msg = msg
	return &c
}

// Pipe appends pipeline actions running over the reconstructed tuple.
func (t *TupleSchema) Pipe(actions ...valigo.Action[[]any]) *TupleSchema {
	c := *t
	c.actions = append(append([]valigo.Action[[]any](nil), t.actions...), actions...)
	return &c
}

func (t *TupleSchema) Kind() valigo.Kind { return valigo.KindTuple }

func (t *TupleSchema) Parse(ctx context.Context, v any) ([]any, error) {
	ctx, ok := valigo.EnterNesting(ctx)
	if !ok {
		return nil, depthExceeded(v)
	}
	arr, ok := asSlice(v)
	if !ok {
		return nil, invalidType(valigo.KindTuple, v, t.msg)
	}
	if len(arr) != len(t.items) {
		msg := t.msg
		if msg == "" {
			msg = i18n.T(valigo.CodeArityMismatch, map[string]string{
				"expected": strconv.Itoa(len(t.items)),
				"received": strconv.Itoa(len(arr)),
			})
		}
		return nil, valigo.Issues{{
			Code:     valigo.CodeArityMismatch,
			Message:  msg,
			Input:    v,
			Expected: strconv.Itoa(len(t.items)),
			Received: strconv.Itoa(len(arr)),
			Params:   map[string]any{"expected": len(t.items), "got": len(arr)},
		}}
	}

	out := make([]any, 0, len(arr))
	var iss valigo.Issues
	for i, item := range t.items {
		parsed, err := item.ParseAny(ctx, arr[i])
		if err != nil {
			iss = valigo.AppendIssues(iss, childIssues(err, valigo.Index(i))...)
			if valigo.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out = append(out, parsed)
	}
	if len(iss) > 0 {
		return nil, iss
	}

	res, iss := valigo.RunActions(ctx, out, t.actions)
	if len(iss) > 0 {
		return nil, iss
	}
	return res, nil
}

func (t *TupleSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return erase(t.Parse(ctx, v))
}

func (t *TupleSchema) JSONSchema() *js.Schema {
	n := len(t.items)
	out := &js.Schema{Type: "array", MinItems: &n, MaxItems: &n}
	out.PrefixItems = make([]*js.Schema, n)
	for i, item := range t.items {
		out.PrefixItems[i] = item.JSONSchema()
	}
	valigo.AnnotateSchema(out, t.actions)
	return out
}
