package valigo_test

import (
	"testing"

	valigo "github.com/reoring/valigo"
)

func TestPath_String_Root(t *testing.T) {
	var p valigo.Path
	if got := p.String(); got != "" {
		t.Fatalf("root path should render empty, got %q", got)
	}
}

func TestPath_String_Segments(t *testing.T) {
	p := valigo.Path{valigo.Key("children"), valigo.Index(0), valigo.Key("value")}
	if got := p.String(); got != "/children/0/value" {
		t.Fatalf("unexpected pointer: %q", got)
	}
}

func TestPath_String_Escaping(t *testing.T) {
	p := valigo.Path{valigo.Key("a/b"), valigo.Key("c~d")}
	if got := p.String(); got != "/a~1b/c~0d" {
		t.Fatalf("unexpected pointer: %q", got)
	}
}

func TestPath_Child_DoesNotMutateReceiver(t *testing.T) {
	base := valigo.Path{valigo.Key("a")}
	c1 := base.Child(valigo.Key("b"))
	c2 := base.Child(valigo.Key("c"))
	if c1.String() != "/a/b" || c2.String() != "/a/c" {
		t.Fatalf("children diverged wrong: %q %q", c1, c2)
	}
	if base.String() != "/a" {
		t.Fatalf("base mutated: %q", base)
	}
}

func TestParsePointer_RoundTrip(t *testing.T) {
	cases := []string{"", "/a", "/a/0/b", "/a~1b/c~0d"}
	for _, c := range cases {
		if got := valigo.ParsePointer(c).String(); got != c {
			t.Errorf("round trip %q -> %q", c, got)
		}
	}
}

func TestIssues_Under_PrependsSegment(t *testing.T) {
	iss := valigo.Issues{
		{Code: valigo.CodeInvalidType, Path: valigo.Path{valigo.Key("value")}},
		{Code: valigo.CodeInvalidType},
	}
	out := iss.Under(valigo.Index(2))
	if got := out[0].Path.String(); got != "/2/value" {
		t.Fatalf("unexpected path: %q", got)
	}
	if got := out[1].Path.String(); got != "/2" {
		t.Fatalf("unexpected path: %q", got)
	}
	// original untouched
	if got := iss[0].Path.String(); got != "/value" {
		t.Fatalf("receiver mutated: %q", got)
	}
}
