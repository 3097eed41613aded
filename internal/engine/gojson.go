package engine

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"
)

// Token source backed by the go-json streaming decoder. It is the default
// JSON driver for the module.

type jsonFrame struct {
	kind         containerKind
	expectingKey bool
}

type jsonSource struct {
	dec   *j.Decoder
	cr    *countingReader
	stack []jsonFrame
}

// NewJSONReader wraps an io.Reader into a TokenSource for JSON.
func NewJSONReader(r io.Reader) TokenSource {
	cr := &countingReader{r: r}
	dec := j.NewDecoder(cr)
	dec.UseNumber()
	return &jsonSource{dec: dec, cr: cr}
}

// NewJSONBytes wraps a byte slice into a TokenSource for JSON.
func NewJSONBytes(b []byte) TokenSource { return NewJSONReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return Token{}, io.EOF
		}
		return Token{}, err
	}
	off := s.cr.n

	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, jsonFrame{kind: kindObject, expectingKey: true})
			return Token{Kind: KindBeginObject, Offset: off}, nil
		case '}':
			s.pop()
			return Token{Kind: KindEndObject, Offset: off}, nil
		case '[':
			s.stack = append(s.stack, jsonFrame{kind: kindArray})
			return Token{Kind: KindBeginArray, Offset: off}, nil
		default: // ']'
			s.pop()
			return Token{Kind: KindEndArray, Offset: off}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return Token{Kind: KindKey, String: v, Offset: off}, nil
			}
		}
		s.closeValue()
		return Token{Kind: KindString, String: v, Offset: off}, nil
	case j.Number:
		s.closeValue()
		return Token{Kind: KindNumber, Number: v.String(), Offset: off}, nil
	case bool:
		s.closeValue()
		return Token{Kind: KindBool, Bool: v, Offset: off}, nil
	case nil:
		s.closeValue()
		return Token{Kind: KindNull, Offset: off}, nil
	default:
		// float64 appears when UseNumber is bypassed; keep the text form.
		if f, ok := tok.(float64); ok {
			s.closeValue()
			return Token{Kind: KindNumber, Number: strconv.FormatFloat(f, 'g', -1, 64), Offset: off}, nil
		}
		return Token{}, io.ErrUnexpectedEOF
	}
}

func (s *jsonSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.closeValue()
}

func (s *jsonSource) closeValue() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

// Location reports bytes consumed from the underlying reader. Decoder
// buffering makes it approximate but monotone.
func (s *jsonSource) Location() int64 { return s.cr.n }

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
