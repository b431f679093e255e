// Package mha provides the multi-head attention composite.
//
// A MulHeadAttn node expands into three primitive kernels, in order:
//
//	wqkv     Linear(d_model -> 3*d_model)  fused query/key/value projection
//	softmax  Softmax(n = max_seq_len)      attention weights
//	wo       Linear(d_model -> d_model)    output projection
package mha

import (
	"fmt"

	"github.com/vk/modelgen/internal/builder"
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/diag"
	"github.com/vk/modelgen/internal/registry"
	"github.com/vk/modelgen/modules/linear"
	"github.com/vk/modelgen/modules/softmax"
)

// Type is the module type name used in descriptions.
const Type = "MulHeadAttn"

// Params are the hyperparameters of a MulHeadAttn node.
type Params struct {
	DModel    int `kgen:"d_model"`
	NumHeads  int `kgen:"num_heads"`
	MaxSeqLen int `kgen:"max_seq_len"`
}

// CheckHeads fails unless dModel splits evenly across numHeads.
func CheckHeads(m *config.Module, dModel, numHeads int) error {
	if err := builder.Positive(m,
		builder.Dim{Name: "d_model", Value: dModel},
		builder.Dim{Name: "num_heads", Value: numHeads},
	); err != nil {
		return err
	}
	if dModel%numHeads != 0 {
		return &diag.NodeError{
			Err:    diag.ErrSchema,
			Node:   m.Name,
			Type:   m.Type,
			Field:  "num_heads",
			Detail: fmt.Sprintf("d_model %d is not divisible by %d heads", dModel, numHeads),
		}
	}
	return nil
}

// Builder generates MulHeadAttn artifacts.
var Builder = &builder.Op[Params]{
	Name: Type,
	Check: func(m *config.Module, p *Params) error {
		if err := CheckHeads(m, p.DModel, p.NumHeads); err != nil {
			return err
		}
		return builder.Positive(m, builder.Dim{Name: "max_seq_len", Value: p.MaxSeqLen})
	},
	ParallelDim: func(p *Params) int { return p.NumHeads },
	Synthesize: func(m *config.Module, p *Params) []*config.Module {
		return []*config.Module{
			builder.Child(m, "wqkv", linear.Type, linear.HParams(p.DModel, 3*p.DModel)),
			builder.Child(m, "softmax", softmax.Type, softmax.HParams(p.MaxSeqLen)),
			builder.Child(m, "wo", linear.Type, linear.HParams(p.DModel, p.DModel)),
		}
	},
}

// HParams returns the hyperparameters of a synthesized attention block.
func HParams(dModel, numHeads, maxSeqLen int) config.Params {
	return config.Params{
		{Name: "d_model", Value: config.Int(dModel)},
		{Name: "num_heads", Value: config.Int(numHeads)},
		{Name: "max_seq_len", Value: config.Int(maxSeqLen)},
	}
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers MulHeadAttn along with the primitives it expands into.
func (m *Module) Register(r *registry.Registry) error {
	if err := r.RegisterAll(&linear.Module{}, &softmax.Module{}); err != nil {
		return err
	}
	return r.Register(Type, Builder)
}
