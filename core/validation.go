// Copyright 2025 Docsift Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxQueryLength is the longest accepted query, in runes.
const MaxQueryLength = 512

// ValidateQuery rejects queries that cannot be analyzed.
//
// Validation rules:
//   - must not be empty or whitespace-only
//   - must not exceed MaxQueryLength runes
//
// Validation failures are rejected synchronously, never degraded into an
// empty analysis.
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: query is empty", ErrInvalidQuery)
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return fmt.Errorf("%w: query exceeds %d characters", ErrInvalidQuery, MaxQueryLength)
	}
	return nil
}

// ValidateFilters checks that any set filter names a known platform/category.
// The zero value of each field means "no filter" and is always valid.
func ValidateFilters(filters Filters) error {
	if filters.Platform != PlatformUnknown && filters.Platform.String() == "" {
		return fmt.Errorf("%w: unknown platform %d", ErrInvalidFilter, filters.Platform)
	}
	if filters.Category != CategoryUnknown && filters.Category.String() == "" {
		return fmt.Errorf("%w: unknown category %d", ErrInvalidFilter, filters.Category)
	}
	return nil
}

// ValidateSection validates a Section according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Content must not be empty
//   - Platform must be a known value (unknown is allowed for ungraded pages)
//   - LastUpdated must not be in the future
//
// NOT validated (populated by collaborators):
//   - Structured (nil is valid for unstructured pages)
//   - Quality (nil is valid until the grader has run)
//   - Id (0 is replaced by IDFromContent on indexing)
func ValidateSection(section *Section) error {
	if section == nil {
		return fmt.Errorf("%w: section is nil", ErrInvalidSection)
	}

	if section.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSection, ErrEmptyTitle)
	}

	if section.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSection, ErrEmptyContent)
	}

	if section.Platform != PlatformUnknown && section.Platform.String() == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSection, ErrInvalidPlatform)
	}

	if !IsValidTimestamp(section.LastUpdated) {
		return fmt.Errorf("%w: %w", ErrInvalidSection, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
