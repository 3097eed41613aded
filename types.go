package valigo

// UnknownPolicy controls how object schemas handle undeclared keys.
type UnknownPolicy int

const (
	UnknownPassthrough UnknownPolicy = iota // Copy unknown keys to the output (default).
	UnknownStrict                           // Reject unknown keys with an issue per key.
	UnknownStrip                            // Drop unknown keys silently.
)

// NumberMode dictates how decoded numbers are represented.
type NumberMode int

const (
	NumberFloat64 NumberMode = iota // Decode numbers as float64 (default).
	NumberJSON                      // Preserve json.Number.
)

// Severity expresses the enforcement level for token-layer findings.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseOpt bundles parsing options. Entry points take the options variadically
// with last-wins semantics.
type ParseOpt struct {
	// MaxDepth caps nesting depth during both token decoding and schema
	// recursion. Zero means unbounded.
	MaxDepth int
	// MaxBytes caps consumed input bytes for source-based parsing. Zero means
	// unbounded.
	MaxBytes int64
	// FailFast stops collecting at the first issue.
	FailFast bool
	// NumberMode selects the decoded number representation for ParseFrom.
	NumberMode NumberMode
	// OnDuplicateKey selects the reaction to duplicate JSON object keys.
	OnDuplicateKey Severity
}

// DefaultMaxDepth is the budget infrastructure layers (HTTP middleware, CLI)
// install when the caller does not choose one. The library itself imposes no
// cap by default.
const DefaultMaxDepth = 256
