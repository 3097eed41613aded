package schemadef_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	valigo "github.com/reoring/valigo"
	"github.com/reoring/valigo/schemadef"
)

const userDefYAML = `
kind: object
unknown: strict
fields:
  - name: name
    schema:
      kind: string
      rules:
        - name: min_length
          min: 2
  - name: email
    schema:
      kind: string
      rules:
        - name: email
  - name: age
    schema:
      kind: optional
      of:
        kind: integer
        rules:
          - name: min
            min: 0
  - name: role
    schema:
      kind: optional
      default: user
      of:
        kind: enum
        values: [user, admin]
`

func TestLoadYAMLAndCompile(t *testing.T) {
	def, err := schemadef.LoadYAML([]byte(userDefYAML))
	require.NoError(t, err)
	s, err := schemadef.Compile(def)
	require.NoError(t, err)

	out, err := s.ParseAny(context.Background(), map[string]any{
		"name":  "gopher",
		"email": "gopher@example.com",
		"age":   float64(13),
	})
	require.NoError(t, err)
	m := out.(map[string]any)
	assert.Equal(t, "user", m["role"], "enum default should fill the missing key")

	_, err = s.ParseAny(context.Background(), map[string]any{
		"name":  "g",
		"email": "nope",
		"extra": true,
	})
	iss, ok := valigo.AsIssues(err)
	require.True(t, ok)
	codes := make(map[string]string, len(iss))
	for _, i := range iss {
		codes[i.Path.String()] = i.Code
	}
	assert.Equal(t, valigo.CodeTooShort, codes["/name"])
	assert.Equal(t, valigo.CodeInvalidFormat, codes["/email"])
	assert.Equal(t, valigo.CodeUnknownKey, codes["/extra"])
}

func TestLoadJSON_RuleParamsSurvive(t *testing.T) {
	doc := []byte(`{
		"kind": "array",
		"items": {"kind": "number", "rules": [{"name": "min", "min": 1}]},
		"rules": [{"name": "max_items", "max": 2}]
	}`)
	def, err := schemadef.LoadJSON(doc)
	require.NoError(t, err)
	s, err := schemadef.Compile(def)
	require.NoError(t, err)

	_, err = s.ParseAny(context.Background(), []any{5.0, 6.0})
	assert.NoError(t, err)

	_, err = s.ParseAny(context.Background(), []any{0.5})
	iss, _ := valigo.AsIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, valigo.CodeTooSmall, iss[0].Code)
	assert.Equal(t, "/0", iss[0].Path.String())

	_, err = s.ParseAny(context.Background(), []any{1.0, 2.0, 3.0})
	iss, _ = valigo.AsIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, valigo.CodeTooBig, iss[0].Code)
}

func TestCompile_Union(t *testing.T) {
	def, err := schemadef.LoadYAML([]byte(`
kind: union
options:
  - kind: string
  - kind: number
`))
	require.NoError(t, err)
	s, err := schemadef.Compile(def)
	require.NoError(t, err)

	out, err := s.ParseAny(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, "5", out, "declaration order decides the winning option")

	_, err = s.ParseAny(context.Background(), true)
	iss, _ := valigo.AsIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, valigo.CodeUnionExhausted, iss[0].Code)
}

func TestCompile_EnumNumbersAlignWithDecodedInput(t *testing.T) {
	def, err := schemadef.LoadYAML([]byte("kind: enum\nvalues: [1, 2, 3]\n"))
	require.NoError(t, err)
	s, err := schemadef.Compile(def)
	require.NoError(t, err)

	// Decoded JSON numbers arrive as float64; the definition's integer
	// literals must compare equal.
	_, err = s.ParseAny(context.Background(), float64(2))
	assert.NoError(t, err)
	_, err = s.ParseAny(context.Background(), float64(4))
	assert.Error(t, err)
}

func TestCompile_Tuple(t *testing.T) {
	def, err := schemadef.LoadYAML([]byte(`
kind: tuple
prefix:
  - kind: string
  - kind: number
`))
	require.NoError(t, err)
	s, err := schemadef.Compile(def)
	require.NoError(t, err)

	_, err = s.ParseAny(context.Background(), []any{"x", 1.0})
	assert.NoError(t, err)
	_, err = s.ParseAny(context.Background(), []any{"x"})
	iss, _ := valigo.AsIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, valigo.CodeArityMismatch, iss[0].Code)
}

func TestCompile_UnknownKind(t *testing.T) {
	_, err := schemadef.Compile(&schemadef.Def{Kind: "wibble"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wibble")
}

func TestCompile_UnknownRule(t *testing.T) {
	def, err := schemadef.LoadYAML([]byte("kind: string\nrules:\n  - name: sparkles\n"))
	require.NoError(t, err)
	_, err = schemadef.Compile(def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sparkles")
}

func TestCompile_MissingStructuralChild(t *testing.T) {
	_, err := schemadef.Compile(&schemadef.Def{Kind: "array"})
	require.Error(t, err)

	_, err = schemadef.Compile(&schemadef.Def{Kind: "optional"})
	require.Error(t, err)
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { schemadef.MustCompile(&schemadef.Def{Kind: "wibble"}) })
}
