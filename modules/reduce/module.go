// Package reduce provides the reduction kernel.
package reduce

import (
	"github.com/vk/modelgen/internal/builder"
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/diag"
	"github.com/vk/modelgen/internal/kernels"
	"github.com/vk/modelgen/internal/registry"
)

// Type is the module type name used in descriptions.
const Type = "Reduce"

// Params are the hyperparameters of a Reduce node.
type Params struct {
	N  int    `kgen:"n"`
	Op string `kgen:"op"`
}

// Builder generates Reduce artifacts.
var Builder = &builder.Op[Params]{
	Name:   Type,
	Family: kernels.FamilyReduce,
	Enums:  map[string]string{"op": "ReduceOp"},
	Check: func(m *config.Module, p *Params) error {
		if err := builder.Positive(m, builder.Dim{Name: "n", Value: p.N}); err != nil {
			return err
		}
		return builder.OneOf(m, diag.ErrUnsupportedOperation, "op", p.Op, kernels.ReduceOps)
	},
	ParallelDim: func(p *Params) int { return p.N },
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the Reduce builder.
func (m *Module) Register(r *registry.Registry) error {
	return r.Register(Type, Builder)
}
