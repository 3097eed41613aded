// Package engine decodes token streams into any-values and enforces
// token-layer limits (nesting depth, consumed bytes, duplicate keys) before
// schema validation sees the input.
package engine

import (
	"encoding/json"
	"io"
	"strconv"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// DecodeAny builds an any value from the token source, preserving numbers as
// json.Number.
func DecodeAny(src TokenSource) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	return decodeValue(src, tok, false)
}

// DecodeAnyAsFloat64 builds an any value from the token source, materializing
// numbers as float64.
func DecodeAnyAsFloat64(src TokenSource) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	return decodeValue(src, tok, true)
}

func decodeValue(src TokenSource, tok Token, asFloat bool) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src, asFloat)
	case KindBeginArray:
		return decodeArray(src, asFloat)
	case KindString:
		return tok.String, nil
	case KindNumber:
		if asFloat {
			f, err := strconv.ParseFloat(tok.Number, 64)
			if err != nil {
				return nil, err
			}
			return f, nil
		}
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func decodeObject(src TokenSource, asFloat bool) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(src, vt, asFloat)
		if err != nil {
			return nil, err
		}
		m[tok.String] = v
	}
}

func decodeArray(src TokenSource, asFloat bool) (any, error) {
	arr := []any{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok, asFloat)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}
