// Package compiler turns a model description into the ordered stream of
// kernel artifacts the emitter writes out.
//
// Compilation runs in two passes over the module tree. The first pass
// resolves names, looks every node up in the registry, validates it, resolves
// its optimization tier and expands composites into their primitive children,
// producing a plan. Nothing is generated unless the whole plan is valid. The
// second pass walks the plan depth-first and asks each node's builder for its
// hparams, config and alias text. A node's declared submodules come first,
// then its synthesized children, then the node itself, so every alias a
// composite refers to is already defined when the composite is emitted.
package compiler
