package config

import (
	"strconv"

	"github.com/zclconf/go-cty/cty"
)

// Kind classifies the scalar value of a Param.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// KindOf reports which scalar kind v holds. Numbers with an integral value
// are integers. Unknown, null, and non-scalar values are KindInvalid.
func KindOf(v cty.Value) Kind {
	if !v.IsKnown() || v.IsNull() {
		return KindInvalid
	}
	switch v.Type() {
	case cty.Number:
		if v.AsBigFloat().IsInt() {
			return KindInt
		}
		return KindFloat
	case cty.Bool:
		return KindBool
	case cty.String:
		return KindString
	default:
		return KindInvalid
	}
}

// Param is one named hyperparameter or resource-configuration entry.
type Param struct {
	Name  string
	Value cty.Value
}

// Params is an ordered set of entries. Order is the declaration order in the
// source document and is preserved through code generation.
type Params []Param

// Get returns the value of the named entry.
func (p Params) Get(name string) (cty.Value, bool) {
	for _, e := range p {
		if e.Name == name {
			return e.Value, true
		}
	}
	return cty.NilVal, false
}

// Has reports whether the named entry exists.
func (p Params) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Clone returns a copy that can be modified independently.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	copy(out, p)
	return out
}

// Int builds an integer value.
func Int(v int) cty.Value {
	return cty.NumberIntVal(int64(v))
}

// Float builds a floating point value.
func Float(v float64) cty.Value {
	return cty.NumberFloatVal(v)
}

// String builds a string value.
func String(v string) cty.Value {
	return cty.StringVal(v)
}

// Bool builds a boolean value.
func Bool(v bool) cty.Value {
	return cty.BoolVal(v)
}

// FormatValue renders a scalar value the way it would be written in a
// description: numbers bare, strings quoted.
func FormatValue(v cty.Value) string {
	switch KindOf(v) {
	case KindInt:
		return v.AsBigFloat().Text('f', 0)
	case KindFloat:
		f, _ := v.AsBigFloat().Float64()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.True())
	case KindString:
		return strconv.Quote(v.AsString())
	default:
		return "<invalid>"
	}
}
