// Package hcl provides the concrete implementation of config.Loader for
// model descriptions written in HCL native syntax or in JSON. Both syntaxes
// are parsed by hashicorp/hcl and walked expression by expression, so the
// declared order of modules and of their parameters survives translation.
package hcl
