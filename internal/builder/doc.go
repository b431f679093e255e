// Package builder defines the code-generation contract implemented by every
// registered module type, together with the shared machinery those
// implementations are assembled from.
//
// A Builder turns one module node into three pieces of header text: a
// hyperparameter struct, an optional resource-configuration struct, and a
// type alias binding both to a kernel template. Most kernels need nothing
// beyond Op, a generic Builder parameterized by a typed params struct whose
// fields are decoded from the node's hyperparameters by their `kgen` tags.
// Composite kernels add an Expand function that synthesizes canonical child
// nodes; the compiler dispatches those children through the registry like
// any declared node.
package builder
