// Package elementwise provides the activation kernel.
package elementwise

import (
	"github.com/vk/modelgen/internal/builder"
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/diag"
	"github.com/vk/modelgen/internal/kernels"
	"github.com/vk/modelgen/internal/registry"
)

// Type is the module type name used in descriptions.
const Type = "Elementwise"

// OpEnum is the kernel library enum activation operators are emitted as.
const OpEnum = "ElementwiseOp"

// Params are the hyperparameters of an Elementwise node.
type Params struct {
	N  int    `kgen:"n"`
	Op string `kgen:"op"`
}

// CheckOp fails with diag.ErrUnsupportedOperation unless op is a supported
// activation. Composites taking an activation share it.
func CheckOp(m *config.Module, field, op string) error {
	return builder.OneOf(m, diag.ErrUnsupportedOperation, field, op, kernels.ActivationOps)
}

// Builder generates Elementwise artifacts.
var Builder = &builder.Op[Params]{
	Name:   Type,
	Family: kernels.FamilyElementwise,
	Enums:  map[string]string{"op": OpEnum},
	Check: func(m *config.Module, p *Params) error {
		if err := builder.Positive(m, builder.Dim{Name: "n", Value: p.N}); err != nil {
			return err
		}
		return CheckOp(m, "op", p.Op)
	},
	ParallelDim: func(p *Params) int { return p.N },
}

// HParams returns the hyperparameters of a synthesized activation.
func HParams(op string, n int) config.Params {
	return config.Params{
		{Name: "n", Value: config.Int(n)},
		{Name: "op", Value: config.String(op)},
	}
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the Elementwise builder.
func (m *Module) Register(r *registry.Registry) error {
	return r.Register(Type, Builder)
}
