package config

import (
	"fmt"
	"strings"
)

// Defaults applied when the description omits them.
const (
	DefaultNetworkName = "network"
	DefaultDType       = "float"
)

// Description is the unified representation of one input document.
type Description struct {
	Network Network
	Modules []*Module
}

// Network holds the `model` block of a description.
type Network struct {
	Name  string
	DType string
}

// Module is a single declared (or synthesized) node of the model graph.
type Module struct {
	Name           string
	Type           string
	HParams        Params
	ResourceConfig Params
	OptLevel       *OptLevel
	Submodules     []*Module

	// Synthesized marks nodes created by composite expansion rather than
	// declared in the input.
	Synthesized bool
}

// CountModules returns the depth-first count of the given nodes and all of
// their submodules.
func CountModules(mods []*Module) int {
	n := 0
	for _, m := range mods {
		n += 1 + CountModules(m.Submodules)
	}
	return n
}

// OptLevel is an optimization tier requested for, or resolved for, a node.
type OptLevel int

const (
	OptNone OptLevel = iota
	OptLatency
	OptThroughput
)

var optLevelNames = [...]string{"NONE", "LATENCY", "THROUGHPUT"}

// String returns the canonical upper-case tier name.
func (o OptLevel) String() string {
	if o < 0 || int(o) >= len(optLevelNames) {
		return fmt.Sprintf("OptLevel(%d)", int(o))
	}
	return optLevelNames[o]
}

// ParseOptLevel converts a tier name, in any letter case, into an OptLevel.
func ParseOptLevel(s string) (OptLevel, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range optLevelNames {
		if upper == name {
			return OptLevel(i), nil
		}
	}
	return OptNone, fmt.Errorf("invalid opt_level %q: must be one of %s", s, strings.Join(optLevelNames[:], ", "))
}

// Ptr returns a pointer to a copy of o, for building Module literals.
func (o OptLevel) Ptr() *OptLevel {
	return &o
}

// IsIdentifier reports whether s can be used verbatim as a C identifier,
// which every generated artifact name is derived from.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// reserved holds the C++ keywords and alternative tokens that cannot name a
// generated member or type.
var reserved = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		alignas alignof and and_eq asm auto bitand bitor bool break case catch
		char char8_t char16_t char32_t class compl concept const consteval
		constexpr constinit const_cast continue co_await co_return co_yield
		decltype default delete do double dynamic_cast else enum explicit export
		extern false float for friend goto if inline int long mutable namespace
		new noexcept not not_eq nullptr operator or or_eq private protected
		public register reinterpret_cast requires return short signed sizeof
		static static_assert static_cast struct switch template this
		thread_local throw true try typedef typeid typename union unsigned using
		virtual void volatile wchar_t while xor xor_eq`) {
		reserved[w] = struct{}{}
	}
}

// IsReserved reports whether s is a C++ keyword.
func IsReserved(s string) bool {
	_, ok := reserved[s]
	return ok
}

// builtinDTypes are the keyword element types accepted as a network dtype.
var builtinDTypes = map[string]struct{}{
	"float": {}, "double": {}, "int": {}, "short": {}, "long": {}, "char": {}, "bool": {},
}

// IsDType reports whether s can be emitted as the network element type:
// either a builtin arithmetic keyword or a non-keyword identifier such as
// half or int8_t.
func IsDType(s string) bool {
	if _, ok := builtinDTypes[s]; ok {
		return true
	}
	return IsIdentifier(s) && !IsReserved(s)
}
