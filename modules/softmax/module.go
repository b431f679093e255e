// Package softmax provides the softmax kernel used by attention.
package softmax

import (
	"github.com/vk/modelgen/internal/builder"
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/kernels"
	"github.com/vk/modelgen/internal/registry"
)

// Type is the module type name used in descriptions.
const Type = "Softmax"

// Params are the hyperparameters of a Softmax node.
type Params struct {
	N int `kgen:"n"`
}

// Builder generates Softmax artifacts.
var Builder = &builder.Op[Params]{
	Name:   Type,
	Family: kernels.FamilySoftmax,
	Check: func(m *config.Module, p *Params) error {
		return builder.Positive(m, builder.Dim{Name: "n", Value: p.N})
	},
	ParallelDim: func(p *Params) int { return p.N },
}

// HParams returns the hyperparameters of a synthesized softmax over n values.
func HParams(n int) config.Params {
	return config.Params{{Name: "n", Value: config.Int(n)}}
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the Softmax builder.
func (m *Module) Register(r *registry.Registry) error {
	return r.Register(Type, Builder)
}
