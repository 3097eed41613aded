// Package pipe ships the stock pipeline actions: string length/format checks
// and transforms, ordered-value bounds, numeric rules, collection rules, and
// cross-field object rules. Every action is a plain valigo.Action and composes
// with hand-written Check/Transform steps.
package pipe

import (
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	valigo "github.com/reoring/valigo"
	js "github.com/reoring/valigo/jsonschema"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	uuidRe  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// MinLength requires at least n runes.
func MinLength(n int) valigo.Action[string] {
	return valigo.Rule[string](valigo.CodeTooShort, "min_length", map[string]any{"min": n}, func(s string) bool {
		return utf8.RuneCountInString(s) >= n
	}).Annotate(func(sch *js.Schema) { sch.MinLength = &n })
}

// MaxLength allows at most n runes.
func MaxLength(n int) valigo.Action[string] {
	return valigo.Rule[string](valigo.CodeTooLong, "max_length", map[string]any{"max": n}, func(s string) bool {
		return utf8.RuneCountInString(s) <= n
	}).Annotate(func(sch *js.Schema) { sch.MaxLength = &n })
}

// Length requires exactly n runes.
func Length(n int) valigo.Action[string] {
	return valigo.Rule[string](valigo.CodeTooShort, "length", map[string]any{"length": n}, func(s string) bool {
		return utf8.RuneCountInString(s) == n
	}).Annotate(func(sch *js.Schema) {
		sch.MinLength = &n
		sch.MaxLength = &n
	})
}

// NonEmpty rejects the empty string.
func NonEmpty() valigo.Action[string] { return MinLength(1) }

// Email requires a plausible email address.
func Email() valigo.Action[string] {
	return valigo.Rule[string](valigo.CodeInvalidFormat, "email", map[string]any{"format": "email"}, emailRe.MatchString).
		Annotate(func(sch *js.Schema) { sch.Format = "email" })
}

// URL requires an absolute URL.
func URL() valigo.Action[string] {
	return valigo.Rule[string](valigo.CodeInvalidFormat, "url", map[string]any{"format": "url"}, func(s string) bool {
		u, err := url.Parse(s)
		return err == nil && u.Scheme != "" && u.Host != ""
	}).Annotate(func(sch *js.Schema) { sch.Format = "uri" })
}

// UUID requires the canonical 8-4-4-4-12 form.
func UUID() valigo.Action[string] {
	return valigo.Rule[string](valigo.CodeInvalidFormat, "uuid", map[string]any{"format": "uuid"}, uuidRe.MatchString).
		Annotate(func(sch *js.Schema) { sch.Format = "uuid" })
}

// Regex requires the value to match re.
func Regex(re *regexp.Regexp) valigo.Action[string] {
	return valigo.Rule[string](valigo.CodePattern, "regex", map[string]any{"pattern": re.String()}, re.MatchString).
		Annotate(func(sch *js.Schema) { sch.Pattern = re.String() })
}

// StartsWith requires the given prefix.
func StartsWith(prefix string) valigo.Action[string] {
	return valigo.Rule[string](valigo.CodeInvalidFormat, "starts_with", map[string]any{"prefix": prefix}, func(s string) bool {
		return strings.HasPrefix(s, prefix)
	})
}

// EndsWith requires the given suffix.
func EndsWith(suffix string) valigo.Action[string] {
	return valigo.Rule[string](valigo.CodeInvalidFormat, "ends_with", map[string]any{"suffix": suffix}, func(s string) bool {
		return strings.HasSuffix(s, suffix)
	})
}

// Includes requires the given substring.
func Includes(sub string) valigo.Action[string] {
	return valigo.Rule[string](valigo.CodeInvalidFormat, "includes", map[string]any{"substring": sub}, func(s string) bool {
		return strings.Contains(s, sub)
	})
}

// ISOTimestamp requires an RFC 3339 timestamp.
func ISOTimestamp() valigo.Action[string] {
	return valigo.Rule[string](valigo.CodeInvalidFormat, "iso_timestamp", map[string]any{"format": "date-time"}, func(s string) bool {
		_, err := time.Parse(time.RFC3339, s)
		return err == nil
	}).Annotate(func(sch *js.Schema) { sch.Format = "date-time" })
}

// Trim removes surrounding whitespace.
func Trim() valigo.Action[string] { return valigo.Transform(strings.TrimSpace) }

// ToLower lowercases the value.
func ToLower() valigo.Action[string] { return valigo.Transform(strings.ToLower) }

// ToUpper uppercases the value.
func ToUpper() valigo.Action[string] { return valigo.Transform(strings.ToUpper) }
