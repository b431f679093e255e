// Package layernorm provides the layer normalization kernel.
package layernorm

import (
	"github.com/vk/modelgen/internal/builder"
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/kernels"
	"github.com/vk/modelgen/internal/registry"
)

// Type is the module type name used in descriptions.
const Type = "LayerNorm"

// Params are the hyperparameters of a LayerNorm node.
type Params struct {
	HiddenDim int `kgen:"hidden_dim"`
}

// Builder generates LayerNorm artifacts.
var Builder = &builder.Op[Params]{
	Name:   Type,
	Family: kernels.FamilyLayerNorm,
	Check: func(m *config.Module, p *Params) error {
		return builder.Positive(m, builder.Dim{Name: "hidden_dim", Value: p.HiddenDim})
	},
	ParallelDim: func(p *Params) int { return p.HiddenDim },
}

// HParams returns the hyperparameters of a synthesized LayerNorm.
func HParams(hiddenDim int) config.Params {
	return config.Params{{Name: "hidden_dim", Value: config.Int(hiddenDim)}}
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the LayerNorm builder.
func (m *Module) Register(r *registry.Registry) error {
	return r.Register(Type, Builder)
}
