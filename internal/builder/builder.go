package builder

import (
	"strings"

	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/policy"
)

// Builder generates the header artifacts for one module type.
type Builder interface {
	// Kernel returns the kernel library template the alias instantiates.
	Kernel() string

	// Required lists the hyperparameters a node of this type must declare.
	Required() []string

	// Validate checks required hyperparameters and their value domains.
	Validate(m *config.Module) error

	// Expand returns the canonical primitive children of a composite node,
	// in emission order. Primitive builders return nil.
	Expand(m *config.Module) ([]*config.Module, error)

	// GenerateHParams renders the hyperparameter declaration.
	GenerateHParams(m *config.Module) (string, error)

	// GenerateConfig renders the resource-configuration declaration, or
	// returns an empty string when the resolved tier emits none.
	GenerateConfig(m *config.Module, res policy.Resolution) (string, error)

	// GenerateTypeAlias renders the alias binding dtype, hparams, config and
	// tier to the kernel template.
	GenerateTypeAlias(m *config.Module, dtype string, res policy.Resolution) (string, error)

	// HasSubmodules reports whether the node declares submodules that must be
	// emitted before it.
	HasSubmodules(m *config.Module) bool
}

// Child builds a synthesized child of a composite node. The child is named
// after its parent and role and inherits the parent's resource_config and
// opt_level so the whole expansion resolves to one tier.
func Child(parent *config.Module, role, typ string, hparams config.Params) *config.Module {
	child := &config.Module{
		Name:           parent.Name + "_" + role,
		Type:           typ,
		HParams:        hparams,
		ResourceConfig: parent.ResourceConfig.Clone(),
		Synthesized:    true,
	}
	if parent.OptLevel != nil {
		child.OptLevel = parent.OptLevel.Ptr()
	}
	return child
}

// Role returns the role suffix a composite gave to one of its children.
func Role(parent, child *config.Module) string {
	if role, ok := strings.CutPrefix(child.Name, parent.Name+"_"); ok && role != "" {
		return role
	}
	return child.Name
}
