package app

import (
	"github.com/vk/modelgen/internal/registry"
	"github.com/vk/modelgen/modules/addnorm"
	"github.com/vk/modelgen/modules/batchnorm"
	"github.com/vk/modelgen/modules/elementwise"
	"github.com/vk/modelgen/modules/encoder"
	"github.com/vk/modelgen/modules/ffn"
	"github.com/vk/modelgen/modules/layernorm"
	"github.com/vk/modelgen/modules/linear"
	"github.com/vk/modelgen/modules/mha"
	"github.com/vk/modelgen/modules/reduce"
	"github.com/vk/modelgen/modules/softmax"
)

// coreModules is the definitive list of all kernel modules that are
// compiled into the modelgen binary.
var coreModules = []registry.Module{
	&linear.Module{},
	&layernorm.Module{},
	&softmax.Module{},
	&elementwise.Module{},
	&reduce.Module{},
	&batchnorm.Module{},
	&mha.Module{},
	&ffn.Module{},
	&addnorm.Module{},
	&encoder.Module{},
}
