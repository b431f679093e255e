// Package emitter renders a compilation result as a C++ header and commits
// it to its destination.
package emitter

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vk/modelgen/internal/compiler"
	"github.com/vk/modelgen/internal/diag"
	"github.com/vk/modelgen/internal/fsutil"
)

// Banner is the first line of every generated header.
const Banner = "// Code generated by modelgen. DO NOT EDIT."

// KernelHeader is the kernel library header the generated code includes.
const KernelHeader = "modelgen/kernels.hpp"

// Render returns the full header text for res.
func Render(res *compiler.Result) []byte {
	var b bytes.Buffer
	b.WriteString(Banner + "\n\n")
	b.WriteString("#pragma once\n\n")
	fmt.Fprintf(&b, "#include %s\n", strconv.Quote(KernelHeader))

	for _, a := range res.Artifacts {
		b.WriteString("\n")
		b.WriteString(a.HParams)
		if a.Config != "" {
			b.WriteString(a.Config)
		}
		b.WriteString(a.Alias)
	}

	b.WriteString("\n")
	b.WriteString(renderMetadata(res.Meta))
	return b.Bytes()
}

func renderMetadata(meta compiler.NetworkMetadata) string {
	var b strings.Builder
	b.WriteString("struct network_metadata {\n")
	fmt.Fprintf(&b, "    static constexpr const char* name = %s;\n", strconv.Quote(meta.Name))
	fmt.Fprintf(&b, "    using dtype = %s;\n", meta.DType)
	fmt.Fprintf(&b, "    static constexpr const char* dtype_tag = %s;\n", strconv.Quote(meta.DType))
	fmt.Fprintf(&b, "    static constexpr int module_count = %d;\n", meta.ModuleCount)
	if len(meta.Modules) > 0 {
		quoted := make([]string, len(meta.Modules))
		for i, name := range meta.Modules {
			quoted[i] = strconv.Quote(name)
		}
		fmt.Fprintf(&b, "    static constexpr const char* modules[] = {%s};\n", strings.Join(quoted, ", "))
	}
	b.WriteString("};\n")
	return b.String()
}

// WriteFile atomically replaces path with data. On failure the previous
// contents of path, if any, are left unchanged.
func WriteFile(path string, data []byte) error {
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", diag.ErrIO, err)
	}
	return nil
}

// Write copies data to w, for destinations that are streams rather than
// files.
func Write(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: writing output: %w", diag.ErrIO, err)
	}
	return nil
}
