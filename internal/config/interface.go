package config

import "context"

// Loader is the interface for a format-specific architecture loader.
type Loader interface {
	// Load reads every definition found under paths and merges them into a
	// single format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
