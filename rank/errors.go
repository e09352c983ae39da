package rank

import "errors"

var (
	// ErrIndexRequired is returned when a semantic index is not provided.
	ErrIndexRequired = errors.New("semantic index required")

	// ErrIndexerRequired is returned when an indexer is not provided.
	ErrIndexerRequired = errors.New("indexer required")

	// ErrProviderRequired is returned when an embedding provider is not provided.
	ErrProviderRequired = errors.New("embedding provider required")

	// ErrInvalidThreshold is returned when the minimum semantic score is
	// outside [0,1].
	ErrInvalidThreshold = errors.New("minimum semantic score must be in [0,1]")

	// ErrEntryMissing indicates the index had no entry for a section that
	// was just indexed without error.
	ErrEntryMissing = errors.New("index entry missing after indexing")
)
