// Package schemadef loads declarative schema definitions from YAML or JSON
// and compiles them into runtime schemas. It is the data-driven face of the
// dsl package, used by the CLI and anywhere schemas arrive as configuration
// instead of code.
package schemadef

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	valigo "github.com/reoring/valigo"
	"github.com/reoring/valigo/dsl"
)

// Def is one schema node in a definition document. Which fields apply depends
// on Kind; Compile rejects definitions missing their kind's structural
// arguments.
type Def struct {
	Kind    string `yaml:"kind" json:"kind"`
	Message string `yaml:"message,omitempty" json:"message,omitempty"`

	// object
	Fields  []FieldDef `yaml:"fields,omitempty" json:"fields,omitempty"`
	Unknown string     `yaml:"unknown,omitempty" json:"unknown,omitempty"` // strict|strip|passthrough

	// array / tuple
	Items  *Def   `yaml:"items,omitempty" json:"items,omitempty"`
	Prefix []*Def `yaml:"prefix,omitempty" json:"prefix,omitempty"`

	// record / map / set
	Key   *Def `yaml:"key,omitempty" json:"key,omitempty"`
	Value *Def `yaml:"value,omitempty" json:"value,omitempty"`

	// modifiers
	Of      *Def `yaml:"of,omitempty" json:"of,omitempty"`
	Default any  `yaml:"default,omitempty" json:"default,omitempty"`

	// union / enum
	Options []*Def `yaml:"options,omitempty" json:"options,omitempty"`
	Values  []any  `yaml:"values,omitempty" json:"values,omitempty"`

	Rules []RuleDef `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// FieldDef declares one object property.
type FieldDef struct {
	Name   string `yaml:"name" json:"name"`
	Schema *Def   `yaml:"schema" json:"schema"`
}

// RuleDef names a stock pipeline action; remaining keys are its parameters.
type RuleDef struct {
	Name   string         `yaml:"name" json:"name"`
	Params map[string]any `yaml:",inline" mapstructure:",remain"`
}

// LoadYAML parses a YAML definition document.
func LoadYAML(b []byte) (*Def, error) {
	var d Def
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("schemadef: %w", err)
	}
	return &d, nil
}

// LoadJSON parses a JSON definition document. The raw tree is decoded first
// and mapped onto Def via mapstructure so rule parameters survive as the
// remainder of each rule object.
func LoadJSON(b []byte) (*Def, error) {
	var raw map[string]any
	if err := gojson.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("schemadef: %w", err)
	}
	var d Def
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &d,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("schemadef: %w", err)
	}
	return &d, nil
}

// Compile turns a definition into a runtime schema.
func Compile(d *Def) (valigo.AnySchema, error) {
	if d == nil {
		return nil, fmt.Errorf("schemadef: nil definition")
	}
	switch d.Kind {
	case "string":
		actions, err := stringActions(d.Rules)
		if err != nil {
			return nil, err
		}
		s := dsl.String(actions...)
		if d.Message != "" {
			s = s.Message(d.Message)
		}
		return s, nil
	case "number":
		actions, err := numberActions(d.Rules)
		if err != nil {
			return nil, err
		}
		s := dsl.Number(actions...)
		if d.Message != "" {
			s = s.Message(d.Message)
		}
		return s, nil
	case "integer":
		actions, err := integerActions(d.Rules)
		if err != nil {
			return nil, err
		}
		s := dsl.Integer(actions...)
		if d.Message != "" {
			s = s.Message(d.Message)
		}
		return s, nil
	case "boolean":
		s := dsl.Boolean()
		if d.Message != "" {
			s = s.Message(d.Message)
		}
		return s, nil
	case "bigint":
		return dsl.BigInt(), nil
	case "null":
		return dsl.Null(), nil
	case "undefined":
		return dsl.Undefined(), nil
	case "nan":
		return dsl.NaN(), nil
	case "object":
		return compileObject(d)
	case "record":
		return compileRecord(d)
	case "array":
		return compileArray(d)
	case "tuple":
		items := make([]valigo.AnySchema, len(d.Prefix))
		for i, p := range d.Prefix {
			s, err := Compile(p)
			if err != nil {
				return nil, err
			}
			items[i] = s
		}
		t := dsl.Tuple(items...)
		if d.Message != "" {
			t = t.Message(d.Message)
		}
		return t, nil
	case "map":
		key, err := compileChild(d.Key, "map key")
		if err != nil {
			return nil, err
		}
		value, err := compileChild(d.Value, "map value")
		if err != nil {
			return nil, err
		}
		return dsl.Map(key, value), nil
	case "set":
		member, err := compileChild(d.Value, "set member")
		if err != nil {
			return nil, err
		}
		return dsl.Set(member), nil
	case "optional":
		inner, err := compileChild(d.Of, "optional inner")
		if err != nil {
			return nil, err
		}
		o := dsl.Optional(inner)
		if d.Default != nil {
			o = o.Default(normalizeValue(d.Default))
		}
		return o, nil
	case "nullable":
		inner, err := compileChild(d.Of, "nullable inner")
		if err != nil {
			return nil, err
		}
		n := dsl.Nullable(inner)
		if d.Default != nil {
			n = n.Default(normalizeValue(d.Default))
		}
		return n, nil
	case "nullish":
		inner, err := compileChild(d.Of, "nullish inner")
		if err != nil {
			return nil, err
		}
		n := dsl.Nullish(inner)
		if d.Default != nil {
			n = n.Default(normalizeValue(d.Default))
		}
		return n, nil
	case "non_optional":
		inner, err := compileChild(d.Of, "non_optional inner")
		if err != nil {
			return nil, err
		}
		return dsl.NonOptional(inner), nil
	case "non_nullable":
		inner, err := compileChild(d.Of, "non_nullable inner")
		if err != nil {
			return nil, err
		}
		return dsl.NonNullable(inner), nil
	case "non_nullish":
		inner, err := compileChild(d.Of, "non_nullish inner")
		if err != nil {
			return nil, err
		}
		return dsl.NonNullish(inner), nil
	case "union":
		options := make([]valigo.AnySchema, len(d.Options))
		for i, o := range d.Options {
			s, err := Compile(o)
			if err != nil {
				return nil, err
			}
			options[i] = s
		}
		u := dsl.Union(options...)
		if d.Message != "" {
			u = u.Message(d.Message)
		}
		return u, nil
	case "enum":
		values := make([]any, len(d.Values))
		for i, v := range d.Values {
			values[i] = normalizeValue(v)
		}
		e := dsl.Enum(values...)
		if d.Message != "" {
			e = e.Message(d.Message)
		}
		return e, nil
	case "any":
		return dsl.Any(), nil
	case "unknown":
		return dsl.Unknown(), nil
	case "never":
		return dsl.Never(), nil
	default:
		return nil, fmt.Errorf("schemadef: unknown kind %q", d.Kind)
	}
}

// MustCompile is Compile panicking on error, for definitions embedded in the
// binary.
func MustCompile(d *Def) valigo.AnySchema {
	s, err := Compile(d)
	if err != nil {
		panic(err)
	}
	return s
}

func compileChild(d *Def, what string) (valigo.AnySchema, error) {
	if d == nil {
		return nil, fmt.Errorf("schemadef: missing %s definition", what)
	}
	return Compile(d)
}

func compileObject(d *Def) (valigo.AnySchema, error) {
	fields := make([]dsl.ObjectField, len(d.Fields))
	for i, f := range d.Fields {
		s, err := compileChild(f.Schema, "field "+f.Name)
		if err != nil {
			return nil, err
		}
		fields[i] = dsl.Field(f.Name, s)
	}
	o := dsl.Object(fields...)
	switch d.Unknown {
	case "strict":
		o = o.Strict()
	case "strip":
		o = o.Strip()
	case "", "passthrough":
	default:
		return nil, fmt.Errorf("schemadef: unknown policy %q", d.Unknown)
	}
	if d.Message != "" {
		o = o.Message(d.Message)
	}
	actions, err := objectActions(d.Rules)
	if err != nil {
		return nil, err
	}
	if len(actions) > 0 {
		o = o.Pipe(actions...)
	}
	return o, nil
}

func compileRecord(d *Def) (valigo.AnySchema, error) {
	value, err := compileChild(d.Value, "record value")
	if err != nil {
		return nil, err
	}
	var r *dsl.RecordSchema
	if d.Key != nil {
		key, err := Compile(d.Key)
		if err != nil {
			return nil, err
		}
		r = dsl.RecordWithKeys(key, value)
	} else {
		r = dsl.Record(value)
	}
	if d.Message != "" {
		r = r.Message(d.Message)
	}
	return r, nil
}

func compileArray(d *Def) (valigo.AnySchema, error) {
	elem, err := compileChild(d.Items, "array items")
	if err != nil {
		return nil, err
	}
	actions, err := arrayActions(d.Rules)
	if err != nil {
		return nil, err
	}
	a := dsl.Array(elem, actions...)
	if d.Message != "" {
		a = a.Message(d.Message)
	}
	return a, nil
}

// normalizeValue maps YAML/JSON scalars onto the engine's decoded value model
// (numbers as float64) so enum equality and defaults line up with parsed
// input.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	}
	return v
}
