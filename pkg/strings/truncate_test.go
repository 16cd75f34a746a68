package strings

import (
	"testing"
	"unicode/utf8"
)

func TestSingleLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{
			name:     "short string unchanged",
			input:    "hello",
			maxLen:   10,
			expected: "hello",
		},
		{
			name:     "exact length unchanged",
			input:    "hello",
			maxLen:   5,
			expected: "hello",
		},
		{
			name:     "long string truncated",
			input:    "hello world this is a long string",
			maxLen:   15,
			expected: "hello world ...",
		},
		{
			name:     "html error body flattened",
			input:    "<html>\n  <body>\n    Bad Gateway\n  </body>\n</html>",
			maxLen:   80,
			expected: "<html> <body> Bad Gateway </body> </html>",
		},
		{
			name:     "carriage returns and tabs collapsed",
			input:    "hello\r\n\tworld",
			maxLen:   20,
			expected: "hello world",
		},
		{
			name:     "whitespace only becomes empty",
			input:    "   \n\t  ",
			maxLen:   10,
			expected: "",
		},
		{
			name:     "maxLen below minimum is clamped",
			input:    "hello",
			maxLen:   0,
			expected: "h...",
		},
		{
			name:     "short string with small maxLen unchanged",
			input:    "hi",
			maxLen:   3,
			expected: "hi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SingleLine(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("SingleLine(%q, %d) = %q, want %q",
					tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}

func TestSingleLine_RuneLength(t *testing.T) {
	input := "Übermäßig café résumé déjà vu"
	result := SingleLine(input, 12)

	if !utf8.ValidString(result) {
		t.Fatalf("result %q is not valid UTF-8", result)
	}
	if n := utf8.RuneCountInString(result); n != 12 {
		t.Errorf("expected 12 runes, got %d (%q)", n, result)
	}
}
