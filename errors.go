package valigo

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType    = "invalid_type"
	CodeUnknownKey     = "unknown_key"
	CodeDuplicateKey   = "duplicate_key"
	CodeTooSmall       = "too_small"
	CodeTooBig         = "too_big"
	CodeTooShort       = "too_short"
	CodeTooLong        = "too_long"
	CodePattern        = "pattern"
	CodeInvalidFormat  = "invalid_format"
	CodeNotMultiple    = "not_multiple"
	CodeNotFinite      = "not_finite"
	CodeNotUnique      = "not_unique"
	CodeCustom         = "custom"
	CodeArityMismatch  = "arity_mismatch"
	CodeInvalidEnum    = "invalid_enum"
	CodeUnionExhausted = "union_exhausted"
	CodeDepthExceeded  = "depth_exceeded"
	CodeOverflow       = "overflow"
	CodeParseError     = "parse_error"
	CodeTooLarge       = "too_large"
)

// Issue represents a single validation failure.
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Path locates the offending value from the root input.
	Path Path `json:"path"`
	// Input is the offending value itself.
	Input any `json:"input,omitempty"`
	// Expected/Received describe the wanted and actual shapes ("string",
	// "number | null", ...).
	Expected string `json:"expected,omitempty"`
	Received string `json:"received,omitempty"`
	// Rule optionally records the pipeline rule name that produced this issue.
	Rule string `json:"rule,omitempty"`
	// Params carries structured parameters (e.g., {"min":1, "max":10})
	// for i18n and observability.
	Params map[string]any `json:"params,omitempty"`
}

// Issues is the ordered collection of validation failures from one parse. It
// implements error and is the only error type the engine produces.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		p := it.Path.String()
		if p == "" {
			p = "/"
		}
		// e.g. invalid_type at /items/2
		fmt.Fprintf(b, "%s at %s", it.Code, p)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Under returns a copy of the issues with seg prepended to every path.
// Composite schemas use it to rebase child failures beneath their own segment.
func (iss Issues) Under(seg Segment) Issues {
	out := make(Issues, len(iss))
	for i, it := range iss {
		p := make(Path, 0, len(it.Path)+1)
		p = append(p, seg)
		p = append(p, it.Path...)
		it.Path = p
		out[i] = it
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
