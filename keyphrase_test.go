package moodscope

import (
	"reflect"
	"testing"
)

func TestExtractKeyPhrases(t *testing.T) {
	tests := []struct {
		name     string
		filtered []string
		limit    int
		expected []string
	}{
		{
			name:     "First occurrence order",
			filtered: []string{"happy", "grateful", "today"},
			limit:    5,
			expected: []string{"happy", "grateful", "today"},
		},
		{
			name:     "Duplicates collapsed",
			filtered: []string{"rain", "cold", "rain", "wind", "cold"},
			limit:    5,
			expected: []string{"rain", "cold", "wind"},
		},
		{
			name:     "Limit applies after dedup",
			filtered: []string{"alpha", "alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf"},
			limit:    5,
			expected: []string{"alpha", "bravo", "charlie", "delta", "echo"},
		},
		{
			name:     "Empty input",
			filtered: nil,
			limit:    5,
			expected: []string{},
		},
		{
			name:     "Zero limit",
			filtered: []string{"alpha"},
			limit:    0,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeyPhrases(tt.filtered, tt.limit)
			if got == nil {
				t.Fatal("Key phrases should never be nil")
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
