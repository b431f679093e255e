// Package registry maps module type names, as written in descriptions, to the
// Builders that generate code for them.
//
// A Registry is constructed explicitly at startup, populated once by the
// Register method of every kernel Module, and only read afterwards. It is
// passed by reference into the compiler instead of living in a package-level
// variable, so tests can build registries holding any subset of modules.
package registry
