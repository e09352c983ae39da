package index

import "errors"

var (
	// ErrIndexRequired is returned when a semantic index is not provided.
	ErrIndexRequired = errors.New("semantic index required")

	// ErrProviderRequired is returned when an embedding provider is not provided.
	ErrProviderRequired = errors.New("embedding provider required")
)
