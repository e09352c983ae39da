package storage

import (
	"context"

	"github.com/docsift/docsift/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// SectionRepository persists the documentation corpus handed over by the
// acquisition collaborator. Sections are immutable per indexing pass; a
// re-scrape supersedes the stored value rather than mutating it.
type SectionRepository interface {
	Repository

	// PutSections stores one or more sections, superseding any prior value
	// for the same id. Sections without an assigned id get a content-derived
	// one.
	PutSections(ctx context.Context, sections ...*core.Section) error

	// GetSection retrieves a single section by id.
	// Returns ErrNotFound if the section doesn't exist.
	GetSection(ctx context.Context, id core.ID) (*core.Section, error)

	// GetSections retrieves multiple sections by their ids.
	// Returns only the sections that exist (no error for missing sections).
	GetSections(ctx context.Context, ids ...core.ID) ([]*core.Section, error)

	// ListSections retrieves every stored section.
	ListSections(ctx context.Context) ([]*core.Section, error)

	// ListSectionsByPlatform retrieves sections for one platform via the
	// platform index.
	ListSectionsByPlatform(ctx context.Context, platform core.Platform) ([]*core.Section, error)

	// DeleteSections removes sections by their ids, including index entries.
	// Returns ErrNotFound if any section doesn't exist.
	DeleteSections(ctx context.Context, ids ...core.ID) error

	// CountSections returns the number of stored sections.
	CountSections(ctx context.Context) (int, error)
}
