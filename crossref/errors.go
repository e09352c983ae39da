package crossref

import "errors"

var (
	// ErrInvalidTable is returned when a mapping table fails to parse.
	ErrInvalidTable = errors.New("invalid mapping table")

	// ErrTableRequired is returned when a nil table is supplied.
	ErrTableRequired = errors.New("mapping table required")
)
