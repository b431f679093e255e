package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories. Every failure returned by the loader, registry, compiler
// or emitter wraps exactly one of these.
var (
	ErrParse                = errors.New("parse error")
	ErrSchema               = errors.New("schema error")
	ErrUnknownModuleType    = errors.New("unknown module type")
	ErrMissingParameter     = errors.New("missing parameter")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrDuplicateType        = errors.New("duplicate type")
	ErrDuplicateName        = errors.New("duplicate module name")
	ErrIO                   = errors.New("io error")
)

// NodeError reports a failure attributable to a single module node.
type NodeError struct {
	Err    error
	Node   string
	Type   string
	Field  string
	Detail string
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.Field != "" {
		fmt.Fprintf(&b, " %q", e.Field)
	}
	if e.Node != "" || e.Type != "" {
		fmt.Fprintf(&b, " in module %q", e.Node)
		if e.Type != "" {
			fmt.Fprintf(&b, " (type %q)", e.Type)
		}
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Unwrap returns the error category.
func (e *NodeError) Unwrap() error {
	return e.Err
}

// Schemaf builds a schema error that is not tied to a particular node.
func Schemaf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSchema, fmt.Sprintf(format, args...))
}
