package compiler

import (
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/policy"
)

// Artifact is the generated text for one node.
type Artifact struct {
	Node        string
	Type        string
	Level       config.OptLevel
	Synthesized bool

	HParams string
	// Config is empty when the node's tier emits no configuration.
	Config string
	Alias  string
}

// NetworkMetadata summarizes the compiled network.
type NetworkMetadata struct {
	Name  string
	DType string
	// ModuleCount counts declared nodes, nested submodules included.
	// Composite expansions are not counted.
	ModuleCount int
	// Modules lists the top-level module names in declared order.
	Modules []string
}

// Result is the output of a successful compilation.
type Result struct {
	Artifacts []Artifact
	Meta      NetworkMetadata
}

// Node describes one node visited by Walk.
type Node struct {
	Name        string
	Type        string
	Kernel      string
	Depth       int
	Resolution  policy.Resolution
	Synthesized bool
	// HParams are the node's hyperparameters in declared order.
	HParams config.Params
}
