package valigo

import (
	"context"

	"github.com/reoring/valigo/internal/guard"
	js "github.com/reoring/valigo/jsonschema"
)

// AnySchema is the type-erased view every schema implements. Composite
// constructors accept AnySchema so heterogeneous children compose without
// casts.
type AnySchema interface {
	// Kind reports the schema's variant discriminator.
	Kind() Kind
	// ParseAny validates v and returns the (possibly transformed) output as
	// any. The returned error, when non-nil, is always Issues.
	ParseAny(ctx context.Context, v any) (any, error)
	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() *js.Schema
}

// Schema describes an accepted input shape with a typed output. Schemas are
// immutable after construction and safe for concurrent reuse across any
// number of simultaneous Parse calls.
type Schema[T any] interface {
	AnySchema
	// Parse transforms an unknown input into T (structural check, then the
	// attached pipeline). It returns Issues when validation fails.
	Parse(ctx context.Context, v any) (T, error)
}

// Parse validates v against s and returns the typed output. The returned
// error, when non-nil, is always Issues.
func Parse[T any](ctx context.Context, s Schema[T], v any, opts ...ParseOpt) (T, error) {
	ctx = installOpts(ctx, lastOpt(opts))
	out, err := s.Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, toIssues(err)
	}
	return out, nil
}

// SafeParse validates v and returns the outcome as data instead of an error.
func SafeParse[T any](ctx context.Context, s Schema[T], v any, opts ...ParseOpt) Result[T] {
	out, err := Parse(ctx, s, v, opts...)
	if err != nil {
		iss, _ := AsIssues(err)
		return Result[T]{Issues: iss}
	}
	return Result[T]{Output: out}
}

// MustParse is the panicking convenience wrapper; it panics with Issues on
// failure. Reserve it for the outermost call site — everything inside the
// engine is error-returning.
func MustParse[T any](ctx context.Context, s Schema[T], v any, opts ...ParseOpt) T {
	out, err := Parse(ctx, s, v, opts...)
	if err != nil {
		iss, _ := AsIssues(err)
		panic(iss)
	}
	return out
}

// Is reports whether v conforms to the schema.
func Is(ctx context.Context, s AnySchema, v any) bool {
	_, err := s.ParseAny(ctx, v)
	return err == nil
}

// ---- Parse-time context options (exported for subpackages) ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that marks fail-fast parsing behavior.
// Entry points set it from ParseOpt; composite schemas consume it.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}

// WithMaxDepth installs a recursion-depth budget on the context. Exceeding it
// during validation yields a depth_exceeded issue instead of a stack overflow.
func WithMaxDepth(ctx context.Context, max int) context.Context {
	return guard.With(ctx, max)
}

// EnterNesting consumes one level of the recursion budget. Composite and
// modifier schema implementations call it before descending into children.
func EnterNesting(ctx context.Context) (context.Context, bool) {
	return guard.Enter(ctx)
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}

func installOpts(ctx context.Context, opt ParseOpt) context.Context {
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	if opt.MaxDepth > 0 {
		ctx = guard.With(ctx, opt.MaxDepth)
	}
	return ctx
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Message: err.Error()})
}

func singleIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Code: code, Message: msg})
}
