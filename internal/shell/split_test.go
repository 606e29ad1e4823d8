package shell

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "blank line",
			input:    "   \t ",
			expected: nil,
		},
		{
			name:     "command with arg",
			input:    "mint alice",
			expected: []string{"mint", "alice"},
		},
		{
			name:     "extra whitespace",
			input:    "  uri\t  0  ",
			expected: []string{"uri", "0"},
		},
		{
			name:     "double quoted owner",
			input:    `mint "alice smith"`,
			expected: []string{"mint", "alice smith"},
		},
		{
			name:     "single quotes are literal",
			input:    `mint 'a\b "c"'`,
			expected: []string{"mint", `a\b "c"`},
		},
		{
			name:     "escapes inside double quotes",
			input:    `mint "say \"hi\" \\ \n"`,
			expected: []string{"mint", `say "hi" \ \n`},
		},
		{
			name:     "escaped space",
			input:    `mint alice\ smith`,
			expected: []string{"mint", "alice smith"},
		},
		{
			name:     "empty quoted word",
			input:    `mint ""`,
			expected: []string{"mint", ""},
		},
		{
			name:     "adjacent quoted parts",
			input:    `mint al"ic"'e'`,
			expected: []string{"mint", "alice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Split(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Split(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSplitErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"unclosed double", `mint "alice`, ErrUnclosedQuote},
		{"unclosed single", `mint 'alice`, ErrUnclosedQuote},
		{"trailing escape", `mint alice\`, ErrTrailingEscape},
		{"trailing escape in quotes", `mint "alice\`, ErrTrailingEscape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("Split(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}
