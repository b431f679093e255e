// Package diag defines the error taxonomy shared by every stage of a
// compilation run. Callers match categories with errors.Is against the
// sentinel values; node-scoped failures additionally carry the offending
// node's name, type and field through NodeError.
package diag
