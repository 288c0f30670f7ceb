package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the Value sum type.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
	KindBool
	KindColor
	KindSelect
)

// Value is a validated property value. Exactly one representation is
// populated according to Kind; values are constructed through ParseValue so
// anything reaching the modifier has already passed boundary validation.
type Value struct {
	Kind ValueKind

	Str  string
	Num  float64
	Bool bool
}

// Raw renders the value as the string written back into source.
func (v Value) Raw() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// IsEmpty reports whether the value signals removal (empty string forms).
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case KindString, KindColor, KindSelect:
		return strings.TrimSpace(v.Str) == ""
	default:
		return false
	}
}

// ParseValue validates a raw string against a property definition and
// returns the typed value. Validation failures are returned as errors; they
// never reach the code modifier.
func ParseValue(prop PropertyDefinition, raw string) (Value, error) {
	switch prop.Type {
	case PropertyNumber, PropertySlider:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return Value{}, fmt.Errorf("property %q requires a numeric value", prop.Name)
		}
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return Value{}, fmt.Errorf("property %q: invalid number %q", prop.Name, raw)
		}
		if prop.Min != nil && n < *prop.Min {
			return Value{}, fmt.Errorf("property %q: %v is below minimum %v", prop.Name, n, *prop.Min)
		}
		if prop.Max != nil && n > *prop.Max {
			return Value{}, fmt.Errorf("property %q: %v is above maximum %v", prop.Name, n, *prop.Max)
		}
		return Value{Kind: KindNumber, Num: n}, nil

	case PropertyBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return Value{}, fmt.Errorf("property %q: invalid boolean %q", prop.Name, raw)
		}
		return Value{Kind: KindBool, Bool: b}, nil

	case PropertySelect:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return Value{Kind: KindSelect}, nil
		}
		for _, opt := range prop.Options {
			if opt == trimmed {
				return Value{Kind: KindSelect, Str: trimmed}, nil
			}
		}
		return Value{}, fmt.Errorf("property %q: %q is not one of %s",
			prop.Name, trimmed, strings.Join(prop.Options, ", "))

	case PropertyColor:
		return Value{Kind: KindColor, Str: strings.TrimSpace(raw)}, nil

	default:
		return Value{Kind: KindString, Str: raw}, nil
	}
}
