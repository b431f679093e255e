// Package encoder provides the transformer encoder block composite.
//
// An EncoderBlock expands into mha (MulHeadAttn), addnorm1 (AddNorm), ffn
// (FFN) and addnorm2 (AddNorm). Each of those is itself a composite, so a
// single block emits twelve artifacts before its own.
package encoder

import (
	"github.com/vk/modelgen/internal/builder"
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/registry"
	"github.com/vk/modelgen/modules/addnorm"
	"github.com/vk/modelgen/modules/elementwise"
	"github.com/vk/modelgen/modules/ffn"
	"github.com/vk/modelgen/modules/mha"
)

// Type is the module type name used in descriptions.
const Type = "EncoderBlock"

// Params are the hyperparameters of an EncoderBlock node.
type Params struct {
	DModel    int    `kgen:"d_model"`
	NumHeads  int    `kgen:"num_heads"`
	DFF       int    `kgen:"d_ff"`
	MaxSeqLen int    `kgen:"max_seq_len"`
	NormType  string `kgen:"norm_type"`
	Act       string `kgen:"act"`
}

// Builder generates EncoderBlock artifacts.
var Builder = &builder.Op[Params]{
	Name: Type,
	Enums: map[string]string{
		"act":       elementwise.OpEnum,
		"norm_type": addnorm.NormEnum,
	},
	Check: func(m *config.Module, p *Params) error {
		if err := mha.CheckHeads(m, p.DModel, p.NumHeads); err != nil {
			return err
		}
		if err := builder.Positive(m,
			builder.Dim{Name: "d_ff", Value: p.DFF},
			builder.Dim{Name: "max_seq_len", Value: p.MaxSeqLen},
		); err != nil {
			return err
		}
		if err := addnorm.CheckNormType(m, p.NormType); err != nil {
			return err
		}
		return elementwise.CheckOp(m, "act", p.Act)
	},
	ParallelDim: func(p *Params) int { return p.DModel },
	Synthesize: func(m *config.Module, p *Params) []*config.Module {
		return []*config.Module{
			builder.Child(m, "mha", mha.Type, mha.HParams(p.DModel, p.NumHeads, p.MaxSeqLen)),
			builder.Child(m, "addnorm1", addnorm.Type, addnorm.HParams(p.DModel, p.NormType)),
			builder.Child(m, "ffn", ffn.Type, ffn.HParams(p.DModel, p.DFF, p.Act, p.MaxSeqLen)),
			builder.Child(m, "addnorm2", addnorm.Type, addnorm.HParams(p.DModel, p.NormType)),
		}
	},
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers EncoderBlock along with every composite it expands into.
func (m *Module) Register(r *registry.Registry) error {
	if err := r.RegisterAll(&mha.Module{}, &addnorm.Module{}, &ffn.Module{}); err != nil {
		return err
	}
	return r.Register(Type, Builder)
}
