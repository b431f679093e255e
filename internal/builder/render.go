package builder

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/diag"
	"github.com/zclconf/go-cty/cty"
)

// NoConfig is the configuration argument of an alias whose node emits no
// configuration artifact.
const NoConfig = "void"

// HParamsName returns the identifier of a node's hyperparameter struct.
func HParamsName(node string) string { return node + "_hparams" }

// ConfigName returns the identifier of a node's configuration struct.
func ConfigName(node string) string { return node + "_config" }

// AliasName returns the identifier of a node's kernel type alias.
func AliasName(node string) string { return node + "_t" }

// TierName returns the kernel library constant for a tier.
func TierName(level config.OptLevel) string { return "OptLevel::" + level.String() }

// RefName returns the member a composite's hyperparameters use to refer to
// the child playing role. The suffix keeps it apart from hyperparameters,
// which may share the role's name (FFN's `act`).
func RefName(role string) string { return role + "_t" }

// Ref binds a role inside a composite's hyperparameters to a child alias.
type Ref struct {
	Role  string
	Alias string
}

// CheckMembers fails with a schema error unless every member of a rendered
// struct has a distinct name that is usable as a C++ identifier.
func CheckMembers(m *config.Module, params config.Params, refs []Ref) error {
	seen := make(map[string]string, len(params)+len(refs))
	for _, p := range params {
		if !config.IsIdentifier(p.Name) || config.IsReserved(p.Name) {
			return &diag.NodeError{Err: diag.ErrSchema, Node: m.Name, Type: m.Type, Field: p.Name, Detail: "not a valid C++ member name"}
		}
		if _, dup := seen[p.Name]; dup {
			return &diag.NodeError{Err: diag.ErrSchema, Node: m.Name, Type: m.Type, Field: p.Name, Detail: "declared more than once"}
		}
		seen[p.Name] = "parameter"
	}
	for _, r := range refs {
		name := RefName(r.Role)
		if _, dup := seen[name]; dup {
			return &diag.NodeError{
				Err:    diag.ErrSchema,
				Node:   m.Name,
				Type:   m.Type,
				Field:  name,
				Detail: fmt.Sprintf("clashes with the reference to the %q child", r.Role),
			}
		}
		seen[name] = r.Role
	}
	return nil
}

// RenderStruct renders a struct of static constexpr members, followed by
// `using` declarations for refs. Members named in enums are emitted as
// scoped enumerators of that enum type.
func RenderStruct(m *config.Module, structName string, params config.Params, enums map[string]string, refs []Ref) (string, error) {
	if err := CheckMembers(m, params, refs); err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "struct %s {\n", structName)
	for _, p := range params {
		decl, err := renderMember(p, enums[p.Name])
		if err != nil {
			return "", &diag.NodeError{Err: diag.ErrSchema, Node: m.Name, Type: m.Type, Field: p.Name, Detail: err.Error()}
		}
		fmt.Fprintf(&b, "    %s\n", decl)
	}
	for _, r := range refs {
		fmt.Fprintf(&b, "    using %s = %s;\n", RefName(r.Role), r.Alias)
	}
	b.WriteString("};\n")
	return b.String(), nil
}

func renderMember(p config.Param, enum string) (string, error) {
	switch config.KindOf(p.Value) {
	case config.KindInt:
		i, acc := p.Value.AsBigFloat().Int64()
		if acc != 0 {
			return "", fmt.Errorf("integer %s out of range", p.Value.AsBigFloat().String())
		}
		ctype := "int"
		if i > math.MaxInt32 || i < math.MinInt32 {
			ctype = "long long"
		}
		return fmt.Sprintf("static constexpr %s %s = %d;", ctype, p.Name, i), nil
	case config.KindFloat:
		f, _ := p.Value.AsBigFloat().Float64()
		return fmt.Sprintf("static constexpr double %s = %s;", p.Name, strconv.FormatFloat(f, 'g', -1, 64)), nil
	case config.KindBool:
		return fmt.Sprintf("static constexpr bool %s = %t;", p.Name, p.Value.True()), nil
	case config.KindString:
		s := p.Value.AsString()
		if enum != "" {
			return fmt.Sprintf("static constexpr %s %s = %s::%s;", enum, p.Name, enum, s), nil
		}
		return fmt.Sprintf("static constexpr const char* %s = %s;", p.Name, strconv.Quote(s)), nil
	default:
		return "", fmt.Errorf("unsupported value of type %s", friendlyType(p.Value))
	}
}

func friendlyType(v cty.Value) string {
	if v.IsNull() {
		return "null"
	}
	return v.Type().FriendlyName()
}

// RenderAlias renders the type alias of a node.
func RenderAlias(node, kernel, dtype, configName string, level config.OptLevel) string {
	return fmt.Sprintf("using %s = %s<%s, %s, %s, %s>;\n",
		AliasName(node), kernel, dtype, HParamsName(node), configName, TierName(level))
}
