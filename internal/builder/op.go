package builder

import (
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/kernels"
	"github.com/vk/modelgen/internal/policy"
)

// Op is a Builder for a kernel whose hyperparameters decode into P.
//
// P must be a struct type whose fields carry `kgen` tags. Op values are
// stateless after construction and are registered by pointer, so the same
// *Op may be registered more than once under its own type name.
type Op[P any] struct {
	// Name is the kernel library template.
	Name string
	// Family selects the THROUGHPUT replication factor; empty means the
	// kernel library default.
	Family string
	// Enums maps hyperparameter names to the enum type they are emitted as.
	Enums map[string]string
	// Check validates decoded params beyond presence. Optional.
	Check func(m *config.Module, p *P) error
	// ParallelDim returns the size of the dimension tiers replicate over.
	ParallelDim func(p *P) int
	// Synthesize builds the children of a composite. Nil for primitives.
	Synthesize func(m *config.Module, p *P) []*config.Module
}

var _ Builder = (*Op[struct{}])(nil)

func (o *Op[P]) decode(m *config.Module) (*P, error) {
	p := new(P)
	if err := Decode(m, p); err != nil {
		return nil, err
	}
	if o.Check != nil {
		if err := o.Check(m, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Kernel implements Builder.
func (o *Op[P]) Kernel() string {
	return o.Name
}

// Required implements Builder.
func (o *Op[P]) Required() []string {
	return RequiredFields(new(P))
}

// Validate implements Builder. Composites also check that no declared
// hyperparameter collides with a child reference.
func (o *Op[P]) Validate(m *config.Module) error {
	p, err := o.decode(m)
	if err != nil {
		return err
	}
	if o.Synthesize == nil {
		return nil
	}
	return CheckMembers(m, m.HParams, refs(m, o.Synthesize(m, p)))
}

func refs(m *config.Module, children []*config.Module) []Ref {
	out := make([]Ref, 0, len(children))
	for _, c := range children {
		out = append(out, Ref{Role: Role(m, c), Alias: AliasName(c.Name)})
	}
	return out
}

// Expand implements Builder.
func (o *Op[P]) Expand(m *config.Module) ([]*config.Module, error) {
	if o.Synthesize == nil {
		return nil, nil
	}
	p, err := o.decode(m)
	if err != nil {
		return nil, err
	}
	return o.Synthesize(m, p), nil
}

// GenerateHParams implements Builder. Declared hyperparameters are emitted in
// declared order; composites append one `using` per synthesized child.
func (o *Op[P]) GenerateHParams(m *config.Module) (string, error) {
	children, err := o.Expand(m)
	if err != nil {
		return "", err
	}
	if children == nil {
		if _, err := o.decode(m); err != nil {
			return "", err
		}
	}
	return RenderStruct(m, HParamsName(m.Name), m.HParams, o.Enums, refs(m, children))
}

// GenerateConfig implements Builder.
func (o *Op[P]) GenerateConfig(m *config.Module, res policy.Resolution) (string, error) {
	if !res.EmitsConfig() {
		return "", nil
	}
	p, err := o.decode(m)
	if err != nil {
		return "", err
	}
	dim := 0
	if o.ParallelDim != nil {
		dim = o.ParallelDim(p)
	}
	replication := kernels.DefaultReplication
	if o.Family != "" {
		replication = kernels.Replication(o.Family)
	}
	entries := policy.ConfigEntries(res, dim, replication, m.ResourceConfig)
	return RenderStruct(m, ConfigName(m.Name), entries, nil, nil)
}

// GenerateTypeAlias implements Builder.
func (o *Op[P]) GenerateTypeAlias(m *config.Module, dtype string, res policy.Resolution) (string, error) {
	cfg := NoConfig
	if res.EmitsConfig() {
		cfg = ConfigName(m.Name)
	}
	return RenderAlias(m.Name, o.Name, dtype, cfg, res.Level), nil
}

// HasSubmodules implements Builder.
func (o *Op[P]) HasSubmodules(m *config.Module) bool {
	return len(m.Submodules) > 0
}
