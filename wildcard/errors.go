package wildcard

import "errors"

// ErrEmptyPattern is returned when a pattern is empty or all whitespace.
var ErrEmptyPattern = errors.New("pattern must not be empty")
