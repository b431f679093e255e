package compiler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/modelgen/internal/builder"
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/ctxlog"
	"github.com/vk/modelgen/internal/diag"
	"github.com/vk/modelgen/internal/policy"
)

// planNode is a validated node ready for generation.
type planNode struct {
	module   *config.Module
	builder  builder.Builder
	res      policy.Resolution
	depth    int
	children []*planNode // declared submodules
	expanded []*planNode // composite expansion
}

// planner runs the validation pass. It keeps going after a failing node so
// that one run reports every problem, but never descends into a node that
// failed.
type planner struct {
	c *Compiler
	// owners maps every generated identifier prefix to the node using it.
	owners map[string]*config.Module
	errs   []error
}

func (c *Compiler) plan(ctx context.Context, desc *config.Description) ([]*planNode, error) {
	p := &planner{c: c, owners: make(map[string]*config.Module)}
	if dt := desc.Network.DType; dt != "" && !config.IsDType(dt) {
		p.errs = append(p.errs, diag.Schemaf("network dtype %q is not a usable element type", dt))
	}
	roots := p.modules(ctx, desc.Modules, "", 0)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(p.errs) > 0 {
		return nil, errors.Join(p.errs...)
	}
	return roots, nil
}

// modules plans a list of declared siblings.
func (p *planner) modules(ctx context.Context, mods []*config.Module, parent string, depth int) []*planNode {
	siblings := make(map[string]struct{}, len(mods))
	nodes := make([]*planNode, 0, len(mods))
	for i, m := range mods {
		if ctx.Err() != nil {
			return nil
		}
		resolved := *m
		if resolved.Name == "" {
			resolved.Name = fallbackName(parent, i)
		}
		if _, dup := siblings[resolved.Name]; dup {
			p.errs = append(p.errs, &diag.NodeError{
				Err:    diag.ErrDuplicateName,
				Node:   resolved.Name,
				Type:   resolved.Type,
				Detail: fmt.Sprintf("name is declared more than once under %s", parentLabel(parent)),
			})
			continue
		}
		siblings[resolved.Name] = struct{}{}
		if n := p.node(ctx, &resolved, depth); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// node validates one node and plans everything below it.
func (p *planner) node(ctx context.Context, m *config.Module, depth int) *planNode {
	if !config.IsIdentifier(m.Name) {
		p.errs = append(p.errs, &diag.NodeError{
			Err:    diag.ErrSchema,
			Node:   m.Name,
			Type:   m.Type,
			Field:  "name",
			Detail: "must be a valid C identifier",
		})
		return nil
	}
	if owner, taken := p.owners[m.Name]; taken {
		p.errs = append(p.errs, &diag.NodeError{
			Err:    diag.ErrDuplicateName,
			Node:   m.Name,
			Type:   m.Type,
			Detail: fmt.Sprintf("generated identifiers collide with module %q (type %q)", owner.Name, owner.Type),
		})
		return nil
	}
	p.owners[m.Name] = m

	b, ok := p.c.registry.Get(m.Type)
	if !ok {
		p.errs = append(p.errs, &diag.NodeError{
			Err:    diag.ErrUnknownModuleType,
			Node:   m.Name,
			Type:   m.Type,
			Detail: "known types: " + strings.Join(p.c.registry.Types(), ", "),
		})
		return nil
	}
	if err := b.Validate(m); err != nil {
		p.errs = append(p.errs, err)
		return nil
	}

	n := &planNode{module: m, builder: b, res: policy.Resolve(m), depth: depth}
	ctxlog.FromContext(ctx).Debug("Planned module.",
		"module", m.Name,
		"type", m.Type,
		"tier", n.res.Level.String(),
		"tier_source", n.res.Source.String(),
		"synthesized", m.Synthesized,
	)

	if b.HasSubmodules(m) {
		n.children = p.modules(ctx, m.Submodules, m.Name, depth+1)
	}

	synthesized, err := b.Expand(m)
	if err != nil {
		p.errs = append(p.errs, err)
		return nil
	}
	for _, child := range synthesized {
		if c := p.node(ctx, child, depth+1); c != nil {
			n.expanded = append(n.expanded, c)
		}
	}
	return n
}

// fallbackName names an unnamed node after its position.
func fallbackName(parent string, index int) string {
	if parent == "" {
		return fmt.Sprintf("module%d", index)
	}
	return fmt.Sprintf("%s_sub%d", parent, index)
}

func parentLabel(parent string) string {
	if parent == "" {
		return "the network"
	}
	return fmt.Sprintf("module %q", parent)
}
