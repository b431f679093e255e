package builder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/diag"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// tagName is the struct tag binding a params field to a hyperparameter.
const tagName = "kgen"

// Decode populates the struct pointed to by target from the node's
// hyperparameters. Fields are matched by their `kgen:"name"` tag; a field
// tagged `kgen:"name,optional"` may be absent.
func Decode(m *config.Module, target any) error {
	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() || structVal.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode target must be a non-nil pointer to a struct, got %T", target)
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldVal := structVal.Field(i)
		if !fieldVal.CanSet() {
			continue
		}
		name, optional, ok := parseTag(field)
		if !ok {
			continue
		}

		val, present := m.HParams.Get(name)
		if !present {
			if optional {
				continue
			}
			return &diag.NodeError{Err: diag.ErrMissingParameter, Node: m.Name, Type: m.Type, Field: name}
		}
		if err := decodeValue(val, fieldVal.Addr().Interface()); err != nil {
			return &diag.NodeError{Err: diag.ErrSchema, Node: m.Name, Type: m.Type, Field: name, Detail: err.Error()}
		}
	}
	return nil
}

// decodeValue converts val to the cty type implied by the Go target and
// stores it there.
func decodeValue(val cty.Value, goVal any) error {
	impliedType, err := gocty.ImpliedType(reflect.ValueOf(goVal).Elem().Interface())
	if err != nil {
		return gocty.FromCtyValue(val, goVal)
	}
	converted, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s", val.Type().FriendlyName(), impliedType.FriendlyName())
	}
	return gocty.FromCtyValue(converted, goVal)
}

// RequiredFields lists the non-optional tagged fields of a params struct, in
// field order.
func RequiredFields(params any) []string {
	t := reflect.TypeOf(params)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var out []string
	for i := 0; i < t.NumField(); i++ {
		name, optional, ok := parseTag(t.Field(i))
		if ok && !optional {
			out = append(out, name)
		}
	}
	return out
}

func parseTag(field reflect.StructField) (name string, optional bool, ok bool) {
	tag := field.Tag.Get(tagName)
	if tag == "" || tag == "-" {
		return "", false, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	return name, opts == "optional", name != ""
}

// OneOf fails with category unless got is one of allowed.
func OneOf(m *config.Module, category error, field, got string, allowed []string) error {
	if slices.Contains(allowed, got) {
		return nil
	}
	return &diag.NodeError{
		Err:    category,
		Node:   m.Name,
		Type:   m.Type,
		Field:  field,
		Detail: fmt.Sprintf("%q is not one of %s", got, strings.Join(allowed, ", ")),
	}
}

// Dim is a named shape dimension checked by Positive.
type Dim struct {
	Name  string
	Value int
}

// Positive fails with a schema error on the first dimension that is not > 0.
func Positive(m *config.Module, dims ...Dim) error {
	for _, d := range dims {
		if d.Value <= 0 {
			return &diag.NodeError{
				Err:    diag.ErrSchema,
				Node:   m.Name,
				Type:   m.Type,
				Field:  d.Name,
				Detail: fmt.Sprintf("must be a positive integer, got %d", d.Value),
			}
		}
	}
	return nil
}
