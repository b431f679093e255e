// Package addnorm provides the residual add + normalization composite.
package addnorm

import (
	"github.com/vk/modelgen/internal/builder"
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/diag"
	"github.com/vk/modelgen/internal/registry"
	"github.com/vk/modelgen/modules/layernorm"
)

// Type is the module type name used in descriptions.
const Type = "AddNorm"

// NormEnum is the kernel library enum norm placements are emitted as.
const NormEnum = "NormType"

// NormTypes lists the supported norm placements.
var NormTypes = []string{"pre", "post"}

// Params are the hyperparameters of an AddNorm node.
type Params struct {
	DModel   int    `kgen:"d_model"`
	NormType string `kgen:"norm_type"`
}

// CheckNormType fails with a schema error unless normType is supported.
func CheckNormType(m *config.Module, normType string) error {
	return builder.OneOf(m, diag.ErrSchema, "norm_type", normType, NormTypes)
}

// Builder generates AddNorm artifacts.
var Builder = &builder.Op[Params]{
	Name:  Type,
	Enums: map[string]string{"norm_type": NormEnum},
	Check: func(m *config.Module, p *Params) error {
		if err := builder.Positive(m, builder.Dim{Name: "d_model", Value: p.DModel}); err != nil {
			return err
		}
		return CheckNormType(m, p.NormType)
	},
	ParallelDim: func(p *Params) int { return p.DModel },
	Synthesize: func(m *config.Module, p *Params) []*config.Module {
		return []*config.Module{
			builder.Child(m, "ln", layernorm.Type, layernorm.HParams(p.DModel)),
		}
	},
}

// HParams returns the hyperparameters of a synthesized AddNorm.
func HParams(dModel int, normType string) config.Params {
	return config.Params{
		{Name: "d_model", Value: config.Int(dModel)},
		{Name: "norm_type", Value: config.String(normType)},
	}
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers AddNorm along with the LayerNorm it expands into.
func (m *Module) Register(r *registry.Registry) error {
	if err := r.RegisterAll(&layernorm.Module{}); err != nil {
		return err
	}
	return r.Register(Type, Builder)
}
