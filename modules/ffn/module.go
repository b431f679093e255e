// Package ffn provides the position-wise feed-forward composite.
//
// An FFN node expands into fc1 Linear(d_model -> d_ff), act
// Elementwise(op = act, n = d_ff) and fc2 Linear(d_ff -> d_model).
package ffn

import (
	"github.com/vk/modelgen/internal/builder"
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/registry"
	"github.com/vk/modelgen/modules/elementwise"
	"github.com/vk/modelgen/modules/linear"
)

// Type is the module type name used in descriptions.
const Type = "FFN"

// Params are the hyperparameters of an FFN node.
type Params struct {
	DModel    int    `kgen:"d_model"`
	DFF       int    `kgen:"d_ff"`
	Act       string `kgen:"act"`
	MaxSeqLen int    `kgen:"max_seq_len"`
}

// Builder generates FFN artifacts.
var Builder = &builder.Op[Params]{
	Name:  Type,
	Enums: map[string]string{"act": elementwise.OpEnum},
	Check: func(m *config.Module, p *Params) error {
		if err := builder.Positive(m,
			builder.Dim{Name: "d_model", Value: p.DModel},
			builder.Dim{Name: "d_ff", Value: p.DFF},
			builder.Dim{Name: "max_seq_len", Value: p.MaxSeqLen},
		); err != nil {
			return err
		}
		return elementwise.CheckOp(m, "act", p.Act)
	},
	ParallelDim: func(p *Params) int { return p.DFF },
	Synthesize: func(m *config.Module, p *Params) []*config.Module {
		return []*config.Module{
			builder.Child(m, "fc1", linear.Type, linear.HParams(p.DModel, p.DFF)),
			builder.Child(m, "act", elementwise.Type, elementwise.HParams(p.Act, p.DFF)),
			builder.Child(m, "fc2", linear.Type, linear.HParams(p.DFF, p.DModel)),
		}
	},
}

// HParams returns the hyperparameters of a synthesized feed-forward block.
func HParams(dModel, dFF int, act string, maxSeqLen int) config.Params {
	return config.Params{
		{Name: "d_model", Value: config.Int(dModel)},
		{Name: "d_ff", Value: config.Int(dFF)},
		{Name: "act", Value: config.String(act)},
		{Name: "max_seq_len", Value: config.Int(maxSeqLen)},
	}
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers FFN along with the primitives it expands into.
func (m *Module) Register(r *registry.Registry) error {
	if err := r.RegisterAll(&linear.Module{}, &elementwise.Module{}); err != nil {
		return err
	}
	return r.Register(Type, Builder)
}
