// Package config defines the format-agnostic description model consumed by
// the compiler, along with the Loader interface implemented by concrete
// description formats.
//
// A Description is strongly typed at this boundary: every hyperparameter and
// resource-configuration entry is a scalar cty.Value (integer, float, bool or
// string) kept in declared order, so nothing downstream needs ad hoc field
// presence checks on a loosely-typed document. Concrete loaders, such as the
// one for HCL and JSON, live in separate packages.
package config
