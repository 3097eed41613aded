package valigo

import (
	"fmt"
	"strconv"
	"strings"
)

// SegmentKind distinguishes the three ways a child value is addressed.
type SegmentKind int

const (
	SegmentKey   SegmentKind = iota // object/record property
	SegmentIndex                    // array/tuple position
	SegmentEntry                    // map entry or set member
)

// Segment identifies one step from a parent value to a child value.
type Segment struct {
	kind  SegmentKind
	key   string
	index int
	entry any
}

// Key addresses an object or record property by name.
func Key(name string) Segment { return Segment{kind: SegmentKey, key: name} }

// Index addresses an array or tuple element by position.
func Index(i int) Segment { return Segment{kind: SegmentIndex, index: i} }

// Entry addresses a map entry (by its key) or a set member (by its value).
func Entry(k any) Segment { return Segment{kind: SegmentEntry, entry: k} }

// Kind reports how this segment addresses its child.
func (s Segment) Kind() SegmentKind { return s.kind }

// Key returns the property name for SegmentKey segments.
func (s Segment) Key() string { return s.key }

// Index returns the position for SegmentIndex segments.
func (s Segment) Index() int { return s.index }

// EntryKey returns the map key or set member for SegmentEntry segments.
func (s Segment) EntryKey() any { return s.entry }

// token renders the segment as a JSON Pointer reference token.
func (s Segment) token() string {
	switch s.kind {
	case SegmentIndex:
		return strconv.Itoa(s.index)
	case SegmentEntry:
		return escapeToken(fmt.Sprint(s.entry))
	default:
		return escapeToken(s.key)
	}
}

func (s Segment) String() string { return s.token() }

// Path is the ordered sequence of segments from the root input to the
// offending value. The zero value addresses the root.
type Path []Segment

// String renders the path as a JSON Pointer (RFC 6901). The root path renders
// as the empty string.
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for _, s := range p {
		b.WriteByte('/')
		b.WriteString(s.token())
	}
	return b.String()
}

// MarshalJSON renders the path as its JSON Pointer string so Issues serialize
// compactly in HTTP payloads and CLI reports.
func (p Path) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}

// Child returns a new path extended by seg. The receiver is not modified.
func (p Path) Child(seg Segment) Path {
	out := make(Path, 0, len(p)+1)
	out = append(out, p...)
	out = append(out, seg)
	return out
}

// escapeToken applies RFC 6901 escaping ("~" -> "~0", "/" -> "~1").
func escapeToken(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

func unescapeToken(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

// ParsePointer converts a JSON Pointer string into a Path. Purely numeric
// reference tokens become index segments; everything else becomes a key
// segment. It is used to surface token-layer enforcement locations and to
// address fields in declarative rule definitions.
func ParsePointer(ptr string) Path {
	if ptr == "" || ptr == "/" {
		return nil
	}
	ptr = strings.TrimPrefix(ptr, "/")
	toks := strings.Split(ptr, "/")
	out := make(Path, 0, len(toks))
	for _, tok := range toks {
		if i, err := strconv.Atoi(tok); err == nil && tok != "" {
			out = append(out, Index(i))
			continue
		}
		out = append(out, Key(unescapeToken(tok)))
	}
	return out
}
