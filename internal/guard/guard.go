// Package guard carries the recursion-depth budget through a parse call.
// Entry points install it; composite and modifier schemas consume one level
// per nesting step so pathological inputs fail with a distinct issue instead
// of exhausting the stack.
package guard

import "context"

type ctxKey struct{}

// With installs a budget of max nesting levels. max <= 0 leaves the context
// unbounded.
func With(ctx context.Context, max int) context.Context {
	if max <= 0 {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, max)
}

// Enter consumes one nesting level. ok is false when the budget is exhausted;
// callers must then stop descending. Without an installed budget Enter is a
// no-op.
func Enter(ctx context.Context) (next context.Context, ok bool) {
	v := ctx.Value(ctxKey{})
	if v == nil {
		return ctx, true
	}
	rem := v.(int)
	if rem <= 0 {
		return ctx, false
	}
	return context.WithValue(ctx, ctxKey{}, rem-1), true
}
