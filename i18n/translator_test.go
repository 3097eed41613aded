package i18n_test

import (
	"testing"

	"github.com/reoring/valigo/i18n"
)

func TestDefaultMessages(t *testing.T) {
	if got := i18n.T("invalid_type", nil); got != "invalid type" {
		t.Fatalf("got %q", got)
	}
	if got := i18n.T("invalid_type", map[string]string{"expected": "string", "received": "number"}); got != "invalid type: expected string, received number" {
		t.Fatalf("got %q", got)
	}
	// Unknown codes echo back so an issue never loses its message.
	if got := i18n.T("made_up_code", nil); got != "made_up_code" {
		t.Fatalf("got %q", got)
	}
}

func TestSetLanguage(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")

	if got := i18n.T("too_short", nil); got != "短すぎます" {
		t.Fatalf("got %q", got)
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, data map[string]string) string {
	return "E:" + code
}

func TestSetTranslator(t *testing.T) {
	i18n.SetTranslator(upperTranslator{})
	defer i18n.SetTranslator(nil)

	if got := i18n.T("too_big", nil); got != "E:too_big" {
		t.Fatalf("got %q", got)
	}
}
