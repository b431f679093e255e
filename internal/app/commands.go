package app

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/vk/modelgen/internal/compiler"
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/ctxlog"
	"github.com/vk/modelgen/internal/emitter"
	"github.com/vk/modelgen/internal/policy"
)

// Generate compiles the description at descPath and writes the header to
// outPath. Nothing is written unless compilation succeeds.
func (a *App) Generate(ctx context.Context, descPath, outPath string) error {
	logger := ctxlog.FromContext(ctx)

	desc, err := a.loader.Load(ctx, descPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", descPath, err)
	}
	res, err := a.compiler.Compile(ctx, desc)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", descPath, err)
	}

	data := emitter.Render(res)
	if outPath == StdoutPath {
		return emitter.Write(a.outW, data)
	}
	if err := emitter.WriteFile(outPath, data); err != nil {
		return err
	}
	logger.Info("Header written.", "path", outPath, "artifacts", len(res.Artifacts), "bytes", len(data))
	return nil
}

// Inspect prints the resolved module tree, synthesized children included,
// without generating anything.
func (a *App) Inspect(ctx context.Context, descPath string) error {
	desc, err := a.loader.Load(ctx, descPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", descPath, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "network %s (dtype %s)\n", desc.Network.Name, desc.Network.DType)
	err = a.compiler.Walk(ctx, desc, func(n compiler.Node) error {
		indent := strings.Repeat("  ", n.Depth+1)
		fmt.Fprintf(&b, "%s%s %s tier=%s", indent, n.Name, n.Type, n.Resolution.Level)
		if n.Resolution.Source != policy.SourceDefault {
			fmt.Fprintf(&b, " (%s)", n.Resolution.Source)
		}
		if n.Synthesized {
			b.WriteString(" [expanded]")
		}
		b.WriteString("\n")
		for _, p := range n.HParams {
			fmt.Fprintf(&b, "%s    %s = %s\n", indent, p.Name, config.FormatValue(p.Value))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("compiling %s: %w", descPath, err)
	}
	_, err = fmt.Fprint(a.outW, b.String())
	return err
}

// Validate checks only the top-level shape of the description.
func (a *App) Validate(ctx context.Context, descPath string) error {
	if err := a.loader.CheckSchema(ctx, descPath); err != nil {
		return fmt.Errorf("validating %s: %w", descPath, err)
	}
	_, err := fmt.Fprintf(a.outW, "%s: ok\n", descPath)
	return err
}

// Types lists every registered module type with its required hparams.
func (a *App) Types(ctx context.Context) error {
	ctxlog.FromContext(ctx).Debug("Listing module types.")
	tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	for _, name := range a.registry.Types() {
		b, _ := a.registry.Get(name)
		fmt.Fprintf(tw, "%s\t%s\n", name, strings.Join(b.Required(), ", "))
	}
	return tw.Flush()
}
