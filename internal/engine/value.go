package engine

import (
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Token source walking an already-materialized value tree. YAML input is
// decoded by yaml.v3 first and replayed through this source so depth
// enforcement applies uniformly.

type valueSource struct {
	queue []Token
	pos   int
}

// NewValueSource replays v as a token stream. Object keys are emitted in
// sorted order for deterministic behavior.
func NewValueSource(v any) TokenSource {
	s := &valueSource{}
	s.push(v)
	return s
}

func (s *valueSource) push(v any) {
	switch t := v.(type) {
	case nil:
		s.queue = append(s.queue, Token{Kind: KindNull, Offset: -1})
	case string:
		s.queue = append(s.queue, Token{Kind: KindString, String: t, Offset: -1})
	case bool:
		s.queue = append(s.queue, Token{Kind: KindBool, Bool: t, Offset: -1})
	case int:
		s.queue = append(s.queue, Token{Kind: KindNumber, Number: strconv.Itoa(t), Offset: -1})
	case int64:
		s.queue = append(s.queue, Token{Kind: KindNumber, Number: strconv.FormatInt(t, 10), Offset: -1})
	case uint64:
		s.queue = append(s.queue, Token{Kind: KindNumber, Number: strconv.FormatUint(t, 10), Offset: -1})
	case float64:
		s.queue = append(s.queue, Token{Kind: KindNumber, Number: strconv.FormatFloat(t, 'g', -1, 64), Offset: -1})
	case map[string]any:
		s.queue = append(s.queue, Token{Kind: KindBeginObject, Offset: -1})
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.queue = append(s.queue, Token{Kind: KindKey, String: k, Offset: -1})
			s.push(t[k])
		}
		s.queue = append(s.queue, Token{Kind: KindEndObject, Offset: -1})
	case []any:
		s.queue = append(s.queue, Token{Kind: KindBeginArray, Offset: -1})
		for _, e := range t {
			s.push(e)
		}
		s.queue = append(s.queue, Token{Kind: KindEndArray, Offset: -1})
	default:
		// Scalar types outside the JSON model (e.g. yaml timestamps) keep
		// their printed form.
		s.queue = append(s.queue, Token{Kind: KindString, String: fmt.Sprint(t), Offset: -1})
	}
}

func (s *valueSource) NextToken() (Token, error) {
	if s.pos >= len(s.queue) {
		return Token{}, io.EOF
	}
	tok := s.queue[s.pos]
	s.pos++
	return tok, nil
}

func (s *valueSource) Location() int64 { return -1 }
