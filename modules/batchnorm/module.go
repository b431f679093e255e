// Package batchnorm provides the 1d and 2d batch normalization kernels.
package batchnorm

import (
	"github.com/vk/modelgen/internal/builder"
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/kernels"
	"github.com/vk/modelgen/internal/registry"
)

// Module type names used in descriptions.
const (
	Type1d = "BatchNorm1d"
	Type2d = "BatchNorm2d"
)

// Params1d are the hyperparameters of a BatchNorm1d node.
type Params1d struct {
	Channels int `kgen:"channels"`
}

// Params2d are the hyperparameters of a BatchNorm2d node.
type Params2d struct {
	Channels int `kgen:"channels"`
	Width    int `kgen:"width"`
	Height   int `kgen:"height"`
}

// Builder1d generates BatchNorm1d artifacts.
var Builder1d = &builder.Op[Params1d]{
	Name:   Type1d,
	Family: kernels.FamilyBatchNorm,
	Check: func(m *config.Module, p *Params1d) error {
		return builder.Positive(m, builder.Dim{Name: "channels", Value: p.Channels})
	},
	ParallelDim: func(p *Params1d) int { return p.Channels },
}

// Builder2d generates BatchNorm2d artifacts.
var Builder2d = &builder.Op[Params2d]{
	Name:   Type2d,
	Family: kernels.FamilyBatchNorm,
	Check: func(m *config.Module, p *Params2d) error {
		return builder.Positive(m,
			builder.Dim{Name: "channels", Value: p.Channels},
			builder.Dim{Name: "width", Value: p.Width},
			builder.Dim{Name: "height", Value: p.Height},
		)
	},
	ParallelDim: func(p *Params2d) int { return p.Channels },
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers both batch normalization builders.
func (m *Module) Register(r *registry.Registry) error {
	if err := r.Register(Type1d, Builder1d); err != nil {
		return err
	}
	return r.Register(Type2d, Builder2d)
}
