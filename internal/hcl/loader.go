package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/ctxlog"
	"github.com/vk/modelgen/internal/diag"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new description loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot holds the top-level attributes of a description document.
type fileRoot struct {
	Model   hcl.Expression `hcl:"model,optional"`
	Modules hcl.Expression `hcl:"modules"`
}

// Load parses the description at path and translates it into the typed model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Description, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Description loader started.", "path", path)

	root, err := l.parse(path)
	if err != nil {
		return nil, err
	}

	network, err := translateNetwork(root.Model, path)
	if err != nil {
		return nil, err
	}
	modules, err := translateModules(root.Modules)
	if err != nil {
		return nil, err
	}

	desc := &config.Description{Network: network, Modules: modules}
	logger.Debug("Description loaded.",
		"network", network.Name,
		"dtype", network.DType,
		"modules", config.CountModules(modules),
	)
	return desc, nil
}

// CheckSchema verifies that the document parses and carries a well-formed
// `model` object and `modules` list. Module contents are not inspected.
func (l *Loader) CheckSchema(ctx context.Context, path string) error {
	ctxlog.FromContext(ctx).Debug("Checking description schema.", "path", path)

	root, err := l.parse(path)
	if err != nil {
		return err
	}
	if _, err := translateNetwork(root.Model, path); err != nil {
		return err
	}
	items, diags := hcl.ExprList(root.Modules)
	if diags.HasErrors() {
		return diag.Schemaf("%s: \"modules\" must be a list", root.Modules.Range())
	}
	for _, item := range items {
		if _, diags := hcl.ExprMap(item); diags.HasErrors() {
			return diag.Schemaf("%s: each module must be an object", item.Range())
		}
	}
	return nil
}

// parse reads path and decodes its top-level attributes. Files ending in
// .json use the JSON syntax; everything else is read as HCL native syntax.
func (l *Loader) parse(path string) (*fileRoot, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading description: %w", diag.ErrIO, err)
	}

	parser := hclparse.NewParser()
	var file *hcl.File
	var diags hcl.Diagnostics
	if strings.EqualFold(filepath.Ext(path), ".json") {
		file, diags = parser.ParseJSON(src, path)
	} else {
		file, diags = parser.ParseHCL(src, path)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", diag.ErrParse, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", diag.ErrSchema, diags)
	}
	return &root, nil
}

// isAbsent reports whether an optional attribute was left out. gohcl fills
// missing expression fields with a synthetic null expression.
func isAbsent(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	v, diags := expr.Value(nil)
	return !diags.HasErrors() && v.IsNull()
}
