package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/diag"
	"github.com/zclconf/go-cty/cty"
)

// translateNetwork converts the `model` object into a config.Network,
// applying defaults for omitted fields. The object itself is required.
func translateNetwork(expr hcl.Expression, path string) (config.Network, error) {
	network := config.Network{Name: config.DefaultNetworkName, DType: config.DefaultDType}
	if isAbsent(expr) {
		return network, diag.Schemaf("%s: missing required attribute \"model\"", path)
	}
	pairs, diags := hcl.ExprMap(expr)
	if diags.HasErrors() {
		return network, diag.Schemaf("%s: \"model\" must be an object", expr.Range())
	}
	for _, pair := range pairs {
		key, err := keyOf(pair)
		if err != nil {
			return network, err
		}
		switch key {
		case "name":
			s, err := stringOf(pair.Value, "model.name")
			if err != nil {
				return network, err
			}
			if !config.IsIdentifier(s) {
				return network, diag.Schemaf("%s: model.name %q is not a valid identifier", pair.Value.Range(), s)
			}
			network.Name = s
		case "dtype":
			s, err := stringOf(pair.Value, "model.dtype")
			if err != nil {
				return network, err
			}
			if !config.IsDType(s) {
				return network, diag.Schemaf("%s: model.dtype %q is not a usable element type", pair.Value.Range(), s)
			}
			network.DType = s
		default:
			return network, diag.Schemaf("%s: unsupported attribute %q in model", pair.Key.Range(), key)
		}
	}
	return network, nil
}

// translateModules converts a list of module objects, recursing into their
// submodules. Declared order is preserved.
func translateModules(expr hcl.Expression) ([]*config.Module, error) {
	if isAbsent(expr) {
		return nil, nil
	}
	items, diags := hcl.ExprList(expr)
	if diags.HasErrors() {
		return nil, diag.Schemaf("%s: modules must be a list", expr.Range())
	}
	modules := make([]*config.Module, 0, len(items))
	for _, item := range items {
		m, err := translateModule(item)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, nil
}

func translateModule(expr hcl.Expression) (*config.Module, error) {
	pairs, diags := hcl.ExprMap(expr)
	if diags.HasErrors() {
		return nil, diag.Schemaf("%s: each module must be an object", expr.Range())
	}

	m := &config.Module{}
	hasType := false
	for _, pair := range pairs {
		key, err := keyOf(pair)
		if err != nil {
			return nil, err
		}
		switch key {
		case "name":
			if m.Name, err = stringOf(pair.Value, "name"); err != nil {
				return nil, err
			}
			if !config.IsIdentifier(m.Name) {
				return nil, diag.Schemaf("%s: module name %q is not a valid identifier", pair.Value.Range(), m.Name)
			}
		case "type":
			if m.Type, err = stringOf(pair.Value, "type"); err != nil {
				return nil, err
			}
			hasType = true
		case "hparams":
			if m.HParams, err = translateParams(pair.Value, "hparams"); err != nil {
				return nil, err
			}
		case "resource_config":
			if m.ResourceConfig, err = translateParams(pair.Value, "resource_config"); err != nil {
				return nil, err
			}
		case "opt_level":
			s, err := stringOf(pair.Value, "opt_level")
			if err != nil {
				return nil, err
			}
			level, err := config.ParseOptLevel(s)
			if err != nil {
				return nil, diag.Schemaf("%s: %v", pair.Value.Range(), err)
			}
			m.OptLevel = &level
		case "submodules":
			if m.Submodules, err = translateModules(pair.Value); err != nil {
				return nil, err
			}
		default:
			return nil, diag.Schemaf("%s: unsupported module attribute %q", pair.Key.Range(), key)
		}
	}
	if !hasType || m.Type == "" {
		return nil, diag.Schemaf("%s: module is missing required attribute \"type\"", expr.Range())
	}
	return m, nil
}

// translateParams converts an object of scalar values into ordered params.
func translateParams(expr hcl.Expression, what string) (config.Params, error) {
	if isAbsent(expr) {
		return nil, nil
	}
	pairs, diags := hcl.ExprMap(expr)
	if diags.HasErrors() {
		return nil, diag.Schemaf("%s: %s must be an object", expr.Range(), what)
	}
	params := make(config.Params, 0, len(pairs))
	for _, pair := range pairs {
		key, err := keyOf(pair)
		if err != nil {
			return nil, err
		}
		if !config.IsIdentifier(key) || config.IsReserved(key) {
			return nil, diag.Schemaf("%s: %s key %q is not a valid C++ member name", pair.Key.Range(), what, key)
		}
		if params.Has(key) {
			return nil, diag.Schemaf("%s: duplicate %s key %q", pair.Key.Range(), what, key)
		}
		v, diags := pair.Value.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: %w", diag.ErrSchema, diags)
		}
		if config.KindOf(v) == config.KindInvalid {
			return nil, diag.Schemaf("%s: %s.%s must be a number, bool or string", pair.Value.Range(), what, key)
		}
		params = append(params, config.Param{Name: key, Value: v})
	}
	return params, nil
}

func keyOf(pair hcl.KeyValuePair) (string, error) {
	k, diags := pair.Key.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("%w: %w", diag.ErrSchema, diags)
	}
	if k.IsNull() || !k.IsKnown() || k.Type() != cty.String {
		return "", diag.Schemaf("%s: object keys must be strings", pair.Key.Range())
	}
	return k.AsString(), nil
}

func stringOf(expr hcl.Expression, what string) (string, error) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("%w: %w", diag.ErrSchema, diags)
	}
	if v.IsNull() || !v.IsKnown() || v.Type() != cty.String {
		return "", diag.Schemaf("%s: %s must be a string", expr.Range(), what)
	}
	return v.AsString(), nil
}
