package valigo

// Result is the non-throwing outcome of running a schema. Exactly one side is
// meaningful: when Issues is empty, Output holds the typed value; otherwise
// Output is the zero value and Issues carries every collected failure in
// validation order.
type Result[T any] struct {
	Output T
	Issues Issues
}

// OK reports whether validation succeeded.
func (r Result[T]) OK() bool { return len(r.Issues) == 0 }
