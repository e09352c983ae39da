package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr error
	}{
		{
			name:    "valid query",
			query:   "how to add a button",
			wantErr: nil,
		},
		{
			name:    "empty query",
			query:   "",
			wantErr: ErrInvalidQuery,
		},
		{
			name:    "whitespace only",
			query:   "   \t\n",
			wantErr: ErrInvalidQuery,
		},
		{
			name:    "at length limit",
			query:   strings.Repeat("a", MaxQueryLength),
			wantErr: nil,
		},
		{
			name:    "over length limit",
			query:   strings.Repeat("a", MaxQueryLength+1),
			wantErr: ErrInvalidQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.query)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateQuery() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateQuery() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		wantErr error
	}{
		{
			name:    "no filters",
			filters: Filters{},
			wantErr: nil,
		},
		{
			name:    "platform filter",
			filters: Filters{Platform: PlatformIOS},
			wantErr: nil,
		},
		{
			name:    "both filters",
			filters: Filters{Platform: PlatformMacOS, Category: CategoryLayout},
			wantErr: nil,
		},
		{
			name:    "out of range platform",
			filters: Filters{Platform: Platform(99)},
			wantErr: ErrInvalidFilter,
		},
		{
			name:    "out of range category",
			filters: Filters{Category: Category(99)},
			wantErr: ErrInvalidFilter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilters(tt.filters)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateFilters() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFilters() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSection(t *testing.T) {
	validTime := time.Now().Add(-24 * time.Hour)
	futureTime := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name    string
		section *Section
		wantErr error
	}{
		{
			name: "valid section",
			section: &Section{
				Title:       "Buttons",
				Content:     "Buttons initiate app-specific actions.",
				Platform:    PlatformIOS,
				LastUpdated: validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid with no structure or quality",
			section: &Section{
				Title:       "Sliders",
				Content:     "A slider is a horizontal track.",
				Platform:    PlatformUniversal,
				LastUpdated: validTime,
			},
			wantErr: nil,
		},
		{
			name:    "nil section",
			section: nil,
			wantErr: ErrInvalidSection,
		},
		{
			name: "empty title",
			section: &Section{
				Content:     "some content",
				LastUpdated: validTime,
			},
			wantErr: ErrEmptyTitle,
		},
		{
			name: "empty content",
			section: &Section{
				Title:       "Buttons",
				LastUpdated: validTime,
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "out of range platform",
			section: &Section{
				Title:       "Buttons",
				Content:     "content",
				Platform:    Platform(99),
				LastUpdated: validTime,
			},
			wantErr: ErrInvalidPlatform,
		},
		{
			name: "future timestamp",
			section: &Section{
				Title:       "Buttons",
				Content:     "content",
				Platform:    PlatformIOS,
				LastUpdated: futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSection(tt.section)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateSection() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSection() = %v, want error %v", err, tt.wantErr)
			}
		})
	}
}
