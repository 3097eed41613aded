package schemadef

import (
	"fmt"
	"regexp"

	"github.com/mitchellh/mapstructure"

	valigo "github.com/reoring/valigo"
	"github.com/reoring/valigo/pipe"
)

// Rule compilers: one per schema kind that carries a pipeline. Parameters are
// decoded weakly so YAML ints and JSON floats both satisfy numeric fields.

func decodeParams[T any](params map[string]any) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(params); err != nil {
		return out, fmt.Errorf("schemadef: rule params: %w", err)
	}
	return out, nil
}

func stringActions(rules []RuleDef) ([]valigo.Action[string], error) {
	var out []valigo.Action[string]
	for _, r := range rules {
		a, err := stringAction(r)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func stringAction(r RuleDef) (valigo.Action[string], error) {
	switch r.Name {
	case "min_length":
		p, err := decodeParams[struct{ Min int }](r.Params)
		if err != nil {
			return valigo.Action[string]{}, err
		}
		return pipe.MinLength(p.Min), nil
	case "max_length":
		p, err := decodeParams[struct{ Max int }](r.Params)
		if err != nil {
			return valigo.Action[string]{}, err
		}
		return pipe.MaxLength(p.Max), nil
	case "length":
		p, err := decodeParams[struct{ Length int }](r.Params)
		if err != nil {
			return valigo.Action[string]{}, err
		}
		return pipe.Length(p.Length), nil
	case "non_empty":
		return pipe.NonEmpty(), nil
	case "email":
		return pipe.Email(), nil
	case "url":
		return pipe.URL(), nil
	case "uuid":
		return pipe.UUID(), nil
	case "iso_timestamp":
		return pipe.ISOTimestamp(), nil
	case "pattern":
		p, err := decodeParams[struct{ Pattern string }](r.Params)
		if err != nil {
			return valigo.Action[string]{}, err
		}
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return valigo.Action[string]{}, fmt.Errorf("schemadef: pattern: %w", err)
		}
		return pipe.Regex(re), nil
	case "starts_with":
		p, err := decodeParams[struct{ Prefix string }](r.Params)
		if err != nil {
			return valigo.Action[string]{}, err
		}
		return pipe.StartsWith(p.Prefix), nil
	case "ends_with":
		p, err := decodeParams[struct{ Suffix string }](r.Params)
		if err != nil {
			return valigo.Action[string]{}, err
		}
		return pipe.EndsWith(p.Suffix), nil
	case "includes":
		p, err := decodeParams[struct{ Substring string }](r.Params)
		if err != nil {
			return valigo.Action[string]{}, err
		}
		return pipe.Includes(p.Substring), nil
	case "trim":
		return pipe.Trim(), nil
	case "to_lower":
		return pipe.ToLower(), nil
	case "to_upper":
		return pipe.ToUpper(), nil
	default:
		return valigo.Action[string]{}, fmt.Errorf("schemadef: unknown string rule %q", r.Name)
	}
}

func numberActions(rules []RuleDef) ([]valigo.Action[float64], error) {
	var out []valigo.Action[float64]
	for _, r := range rules {
		switch r.Name {
		case "min":
			p, err := decodeParams[struct{ Min float64 }](r.Params)
			if err != nil {
				return nil, err
			}
			out = append(out, pipe.MinValue(p.Min))
		case "max":
			p, err := decodeParams[struct{ Max float64 }](r.Params)
			if err != nil {
				return nil, err
			}
			out = append(out, pipe.MaxValue(p.Max))
		case "int":
			out = append(out, pipe.Int())
		case "multiple_of":
			p, err := decodeParams[struct{ Divisor float64 }](r.Params)
			if err != nil {
				return nil, err
			}
			out = append(out, pipe.MultipleOf(p.Divisor))
		case "finite":
			out = append(out, pipe.Finite())
		default:
			return nil, fmt.Errorf("schemadef: unknown number rule %q", r.Name)
		}
	}
	return out, nil
}

func integerActions(rules []RuleDef) ([]valigo.Action[int64], error) {
	var out []valigo.Action[int64]
	for _, r := range rules {
		switch r.Name {
		case "min":
			p, err := decodeParams[struct{ Min int64 }](r.Params)
			if err != nil {
				return nil, err
			}
			out = append(out, pipe.MinValue(p.Min))
		case "max":
			p, err := decodeParams[struct{ Max int64 }](r.Params)
			if err != nil {
				return nil, err
			}
			out = append(out, pipe.MaxValue(p.Max))
		default:
			return nil, fmt.Errorf("schemadef: unknown integer rule %q", r.Name)
		}
	}
	return out, nil
}

func arrayActions(rules []RuleDef) ([]valigo.Action[[]any], error) {
	var out []valigo.Action[[]any]
	for _, r := range rules {
		switch r.Name {
		case "min_items":
			p, err := decodeParams[struct{ Min int }](r.Params)
			if err != nil {
				return nil, err
			}
			out = append(out, pipe.MinItems(p.Min))
		case "max_items":
			p, err := decodeParams[struct{ Max int }](r.Params)
			if err != nil {
				return nil, err
			}
			out = append(out, pipe.MaxItems(p.Max))
		case "unique_items":
			out = append(out, pipe.UniqueItems())
		default:
			return nil, fmt.Errorf("schemadef: unknown array rule %q", r.Name)
		}
	}
	return out, nil
}

func objectActions(rules []RuleDef) ([]valigo.Action[map[string]any], error) {
	var out []valigo.Action[map[string]any]
	for _, r := range rules {
		switch r.Name {
		case "at_least_one":
			p, err := decodeParams[struct{ Keys []string }](r.Params)
			if err != nil {
				return nil, err
			}
			out = append(out, pipe.AtLeastOne(p.Keys...))
		case "mutually_exclusive":
			p, err := decodeParams[struct{ Keys []string }](r.Params)
			if err != nil {
				return nil, err
			}
			out = append(out, pipe.MutuallyExclusive(p.Keys...))
		case "require_with":
			p, err := decodeParams[struct {
				Key  string
				Deps []string
			}](r.Params)
			if err != nil {
				return nil, err
			}
			out = append(out, pipe.RequireWith(p.Key, p.Deps...))
		case "min_size":
			p, err := decodeParams[struct{ Min int }](r.Params)
			if err != nil {
				return nil, err
			}
			out = append(out, pipe.MinSize(p.Min))
		case "max_size":
			p, err := decodeParams[struct{ Max int }](r.Params)
			if err != nil {
				return nil, err
			}
			out = append(out, pipe.MaxSize(p.Max))
		default:
			return nil, fmt.Errorf("schemadef: unknown object rule %q", r.Name)
		}
	}
	return out, nil
}
