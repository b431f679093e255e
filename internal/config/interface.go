package config

import "context"

// Loader is the interface for a format-specific description loader.
type Loader interface {
	// Load reads the description at path and translates it into the typed
	// model. Malformed documents fail with diag.ErrParse, structurally
	// invalid ones with diag.ErrSchema.
	Load(ctx context.Context, path string) (*Description, error)

	// CheckSchema verifies only the top-level shape of the document: a
	// `model` object and a `modules` list must both be present.
	CheckSchema(ctx context.Context, path string) error
}
