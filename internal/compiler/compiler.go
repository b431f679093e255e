package compiler

import (
	"context"
	"fmt"

	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/ctxlog"
	"github.com/vk/modelgen/internal/registry"
)

// Compiler compiles descriptions against a populated registry. The registry
// must not be modified while a Compiler uses it.
type Compiler struct {
	registry *registry.Registry
}

// New creates a Compiler bound to reg.
func New(reg *registry.Registry) *Compiler {
	return &Compiler{registry: reg}
}

// Compile validates desc as a whole and, if it is valid, generates its
// artifacts in emission order. On error no artifact is returned.
func (c *Compiler) Compile(ctx context.Context, desc *config.Description) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	meta := metadata(desc)
	logger.Debug("Compiling network.", "network", meta.Name, "dtype", meta.DType, "modules", meta.ModuleCount)

	roots, err := c.plan(ctx, desc)
	if err != nil {
		return nil, err
	}

	res := &Result{Meta: meta}
	for _, n := range roots {
		if err := c.emit(ctx, n, meta.DType, res); err != nil {
			return nil, err
		}
	}
	logger.Debug("Compilation complete.", "artifacts", len(res.Artifacts))
	return res, nil
}

// emit appends the artifacts of n and everything below it.
func (c *Compiler) emit(ctx context.Context, n *planNode, dtype string, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, child := range n.children {
		if err := c.emit(ctx, child, dtype, res); err != nil {
			return err
		}
	}
	for _, child := range n.expanded {
		if err := c.emit(ctx, child, dtype, res); err != nil {
			return err
		}
	}

	m := n.module
	hparams, err := n.builder.GenerateHParams(m)
	if err != nil {
		return err
	}
	cfg, err := n.builder.GenerateConfig(m, n.res)
	if err != nil {
		return err
	}
	alias, err := n.builder.GenerateTypeAlias(m, dtype, n.res)
	if err != nil {
		return err
	}
	res.Artifacts = append(res.Artifacts, Artifact{
		Node:        m.Name,
		Type:        m.Type,
		Level:       n.res.Level,
		Synthesized: m.Synthesized,
		HParams:     hparams,
		Config:      cfg,
		Alias:       alias,
	})
	ctxlog.FromContext(ctx).Debug("Generated module.", "module", m.Name, "kernel", n.builder.Kernel(), "config", cfg != "")
	return nil
}

// Walk validates desc and calls fn for every node of the plan in pre-order:
// a node, then its declared submodules, then its synthesized children.
func (c *Compiler) Walk(ctx context.Context, desc *config.Description, fn func(Node) error) error {
	roots, err := c.plan(ctx, desc)
	if err != nil {
		return err
	}
	for _, n := range roots {
		if err := walk(n, fn); err != nil {
			return err
		}
	}
	return nil
}

func walk(n *planNode, fn func(Node) error) error {
	err := fn(Node{
		Name:        n.module.Name,
		Type:        n.module.Type,
		Kernel:      n.builder.Kernel(),
		Depth:       n.depth,
		Resolution:  n.res,
		Synthesized: n.module.Synthesized,
		HParams:     n.module.HParams,
	})
	if err != nil {
		return fmt.Errorf("visiting %q: %w", n.module.Name, err)
	}
	for _, child := range n.children {
		if err := walk(child, fn); err != nil {
			return err
		}
	}
	for _, child := range n.expanded {
		if err := walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

func metadata(desc *config.Description) NetworkMetadata {
	meta := NetworkMetadata{
		Name:        desc.Network.Name,
		DType:       desc.Network.DType,
		ModuleCount: config.CountModules(desc.Modules),
		Modules:     make([]string, 0, len(desc.Modules)),
	}
	if meta.Name == "" {
		meta.Name = config.DefaultNetworkName
	}
	if meta.DType == "" {
		meta.DType = config.DefaultDType
	}
	for i, m := range desc.Modules {
		name := m.Name
		if name == "" {
			name = fallbackName("", i)
		}
		meta.Modules = append(meta.Modules, name)
	}
	return meta
}
