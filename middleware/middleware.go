// Package middleware integrates schema validation into net/http request
// handling: the decoded, validated value lands in the request context,
// failures render the issue payload, and outcomes feed an optional zerolog
// logger and prometheus collector.
package middleware

import (
	"context"
	"io"
	"net/http"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	valigo "github.com/reoring/valigo"
)

type ctxKeyValidated struct{}

// ContextWithValidated attaches the validated value to the context.
func ContextWithValidated(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyValidated{}, v)
}

// ValidatedFromContext retrieves the validated value stored by ValidateJSON.
func ValidatedFromContext(ctx context.Context) (any, bool) {
	v := ctx.Value(ctxKeyValidated{})
	if v == nil {
		return nil, false
	}
	return v, true
}

// Options configures ValidateJSON. The zero value validates with the default
// limits and stays silent.
type Options struct {
	// Logger, when non-nil, records validation failures.
	Logger *zerolog.Logger
	// Metrics, when non-nil, counts outcomes and observes durations.
	Metrics *Collector
	// MaxBytes caps the request body; defaults to 1 MiB.
	MaxBytes int64
	// MaxDepth caps input nesting; defaults to valigo.DefaultMaxDepth.
	MaxDepth int
	// FailFast stops at the first issue.
	FailFast bool
}

// DefaultParseOpt returns the recommended limits for HTTP JSON boundaries:
// duplicate keys are errors and nesting is capped.
func DefaultParseOpt() valigo.ParseOpt {
	return valigo.ParseOpt{
		OnDuplicateKey: valigo.Error,
		MaxDepth:       valigo.DefaultMaxDepth,
		MaxBytes:       1 << 20,
	}
}

// ValidateJSON decodes and validates the request body against s before the
// next handler runs. On success the validated value is available via
// ValidatedFromContext; on failure the middleware responds 400 (or 413 for an
// oversized body) with the issue payload.
func ValidateJSON(s valigo.AnySchema, opt Options) func(http.Handler) http.Handler {
	parseOpt := DefaultParseOpt()
	if opt.MaxBytes > 0 {
		parseOpt.MaxBytes = opt.MaxBytes
	}
	if opt.MaxDepth > 0 {
		parseOpt.MaxDepth = opt.MaxDepth
	}
	parseOpt.FailFast = opt.FailFast

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			// One byte past the cap distinguishes "at the limit" from "over it"
			// so the byte budget check inside ParseAnyFrom stays exact.
			body, err := io.ReadAll(io.LimitReader(r.Body, parseOpt.MaxBytes+1))
			if err != nil {
				writeJSON(w, http.StatusBadRequest, ErrorPayload(valigo.Issues{{
					Code: valigo.CodeParseError, Message: err.Error(),
				}}))
				return
			}
			v, err := valigo.ParseAnyFrom(r.Context(), s, valigo.JSONBytes(body), parseOpt)
			if opt.Metrics != nil {
				opt.Metrics.Observe(err == nil, time.Since(start))
			}
			if err != nil {
				iss, _ := valigo.AsIssues(err)
				if opt.Metrics != nil {
					opt.Metrics.CountIssues(iss)
				}
				if opt.Logger != nil {
					opt.Logger.Warn().
						Str("path", r.URL.Path).
						Str("method", r.Method).
						Int("issues", len(iss)).
						Str("first", iss.Error()).
						Msg("request validation failed")
				}
				status := http.StatusBadRequest
				for _, it := range iss {
					if it.Code == valigo.CodeTooLarge {
						status = http.StatusRequestEntityTooLarge
						break
					}
				}
				writeJSON(w, status, ErrorPayload(iss))
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithValidated(r.Context(), v)))
		})
	}
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues valigo.Issues) map[string]any {
	return map[string]any{"issues": issues}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = gojson.NewEncoder(w).Encode(v)
}
