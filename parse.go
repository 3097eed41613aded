package valigo

import (
	"context"
	"errors"

	eng "github.com/reoring/valigo/internal/engine"
)

// ParseFrom decodes the Source into an any value, enforcing byte/depth/
// duplicate-key limits at the token layer, and delegates validation to the
// Schema.
func ParseFrom[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) (T, error) {
	var zero T
	if s == nil {
		return zero, singleIssue(CodeParseError, "nil schema")
	}
	opt := lastOpt(opts)
	ctx = installOpts(ctx, opt)

	v, err := decodeAnyFromSource(src, opt)
	if err != nil {
		return zero, toSourceIssues(err)
	}
	out, err := s.Parse(ctx, v)
	if err != nil {
		return zero, toIssues(err)
	}
	return out, nil
}

// ParseAnyFrom is the type-erased counterpart of ParseFrom, used where the
// schema is assembled at runtime (declarative definitions, middleware, CLI).
func ParseAnyFrom(ctx context.Context, s AnySchema, src Source, opts ...ParseOpt) (any, error) {
	if s == nil {
		return nil, singleIssue(CodeParseError, "nil schema")
	}
	opt := lastOpt(opts)
	ctx = installOpts(ctx, opt)

	v, err := decodeAnyFromSource(src, opt)
	if err != nil {
		return nil, toSourceIssues(err)
	}
	out, err := s.ParseAny(ctx, v)
	if err != nil {
		return nil, toIssues(err)
	}
	return out, nil
}

func decodeAnyFromSource(src Source, opt ParseOpt) (any, error) {
	if es, ok := src.(*engineSource); ok {
		if es.err != nil {
			return nil, es.err
		}
		// Precise up-front check when the total input size is known.
		if opt.MaxBytes > 0 && es.size > opt.MaxBytes {
			return nil, eng.IssueError{SimpleIssue: eng.SimpleIssue{Code: CodeTooLarge, Message: "max bytes exceeded"}}
		}
	}
	enforced := eng.WrapWithEnforcement(engineTokenSource(src), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
	})
	switch opt.NumberMode {
	case NumberJSON:
		return eng.DecodeAny(enforced)
	default:
		return eng.DecodeAnyAsFloat64(enforced)
	}
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

// toSourceIssues maps token-layer errors onto the issue model, converting
// pointer-string locations into structured paths.
func toSourceIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ParsePointer(ie.Path), Message: ie.Message})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Message: err.Error()})
}
