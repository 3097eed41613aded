package valigo

import (
	"io"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/valigo/internal/engine"
)

// tokenKind enumerates input token kinds.
type tokenKind int

const (
	_tokenBeginObject tokenKind = iota
	_tokenEndObject
	_tokenBeginArray
	_tokenEndArray
	_tokenKey
	_tokenString
	_tokenNumber
	_tokenBool
	_tokenNull
)

// Token describes a token in the input stream. Offset records the byte
// position when known (-1 otherwise).
type Token struct {
	Kind   tokenKind
	String string // Stored for key/string tokens.
	Number string // Stored as text; ParseOpt.NumberMode controls interpretation.
	Bool   bool
	Offset int64
}

// Source abstracts over polymorphic input sources for ParseFrom.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// engineSource adapts an internal token source as a Source and remembers the
// total input size when known so byte budgets can be checked up front.
type engineSource struct {
	inner eng.TokenSource
	size  int64
	err   error // deferred construction error (e.g. YAML decode failure)
}

func (s *engineSource) NextToken() (Token, error) {
	if s.err != nil {
		return Token{}, s.err
	}
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: fromEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (s *engineSource) Location() int64 {
	if s.inner == nil {
		return -1
	}
	return s.inner.Location()
}

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source {
	return &engineSource{inner: eng.NewJSONBytes(b), size: int64(len(b))}
}

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source {
	return &engineSource{inner: eng.NewJSONReader(r), size: -1}
}

// YAMLBytes wraps a byte slice as a YAML Source. The document is decoded by
// yaml.v3 and replayed as a token stream so depth enforcement applies
// uniformly; duplicate mapping keys are rejected by the YAML decoder itself.
func YAMLBytes(b []byte) Source {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return &engineSource{size: int64(len(b)), err: err}
	}
	return &engineSource{inner: eng.NewValueSource(v), size: int64(len(b))}
}

// ---- Source <-> engine.TokenSource adapters ----

type tokenSourceAdapter struct{ inner Source }

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{
		Kind:   toEngineKind(t.Kind),
		String: t.String,
		Number: t.Number,
		Bool:   t.Bool,
		Offset: t.Offset,
	}, nil
}

func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }

func engineTokenSource(s Source) eng.TokenSource {
	if es, ok := s.(*engineSource); ok && es.err == nil {
		return es.inner
	}
	return &tokenSourceAdapter{inner: s}
}

func toEngineKind(k tokenKind) eng.Kind {
	switch k {
	case _tokenBeginObject:
		return eng.KindBeginObject
	case _tokenEndObject:
		return eng.KindEndObject
	case _tokenBeginArray:
		return eng.KindBeginArray
	case _tokenEndArray:
		return eng.KindEndArray
	case _tokenKey:
		return eng.KindKey
	case _tokenString:
		return eng.KindString
	case _tokenNumber:
		return eng.KindNumber
	case _tokenBool:
		return eng.KindBool
	default:
		return eng.KindNull
	}
}

func fromEngineKind(k eng.Kind) tokenKind {
	switch k {
	case eng.KindBeginObject:
		return _tokenBeginObject
	case eng.KindEndObject:
		return _tokenEndObject
	case eng.KindBeginArray:
		return _tokenBeginArray
	case eng.KindEndArray:
		return _tokenEndArray
	case eng.KindKey:
		return _tokenKey
	case eng.KindString:
		return _tokenString
	case eng.KindNumber:
		return _tokenNumber
	case eng.KindBool:
		return _tokenBool
	default:
		return _tokenNull
	}
}
