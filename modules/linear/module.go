// Package linear provides the dense projection kernel.
package linear

import (
	"github.com/vk/modelgen/internal/builder"
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/kernels"
	"github.com/vk/modelgen/internal/registry"
)

// Type is the module type name used in descriptions.
const Type = "Linear"

// Params are the hyperparameters of a Linear node.
type Params struct {
	InFeatures  int `kgen:"in_features"`
	OutFeatures int `kgen:"out_features"`
}

// Builder generates Linear artifacts. Tiers replicate over output features.
var Builder = &builder.Op[Params]{
	Name:   Type,
	Family: kernels.FamilyLinear,
	Check: func(m *config.Module, p *Params) error {
		return builder.Positive(m,
			builder.Dim{Name: "in_features", Value: p.InFeatures},
			builder.Dim{Name: "out_features", Value: p.OutFeatures},
		)
	},
	ParallelDim: func(p *Params) int { return p.OutFeatures },
}

// HParams returns the hyperparameters of a synthesized in -> out projection.
func HParams(in, out int) config.Params {
	return config.Params{
		{Name: "in_features", Value: config.Int(in)},
		{Name: "out_features", Value: config.Int(out)},
	}
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the Linear builder.
func (m *Module) Register(r *registry.Registry) error {
	return r.Register(Type, Builder)
}
