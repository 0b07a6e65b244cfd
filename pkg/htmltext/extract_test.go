package htmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "two paragraphs become a blank line",
			input:    "<p>A</p><p>B</p>",
			expected: "A\n\nB",
		},
		{
			name:     "explicit line break becomes a single newline",
			input:    "<p>A<br/>B</p>",
			expected: "A\nB",
		},
		{
			name:     "br spelling variants",
			input:    "<p>A<br>B<br />C</p>",
			expected: "A\nB\nC",
		},
		{
			name:     "headings break paragraphs",
			input:    "<h1>Title</h1><p>Body text.</p>",
			expected: "Title\n\nBody text.",
		},
		{
			name:     "inline markup is flattened",
			input:    "<p>Some <em>emphasized</em> and <strong>bold</strong> text.</p>",
			expected: "Some emphasized and bold text.",
		},
		{
			name:     "script and style are stripped",
			input:    "<p>Visible</p><script>alert('x')</script><style>p { color: red; }</style>",
			expected: "Visible",
		},
		{
			name:     "source newlines render as spaces",
			input:    "<p>one\ntwo\nthree</p>",
			expected: "one two three",
		},
		{
			name:     "horizontal whitespace runs collapse",
			input:    "<p>a \t  b</p>",
			expected: "a b",
		},
		{
			name:     "empty block elements do not stack blank lines",
			input:    "<div><p>A</p><p></p><p>B</p></div>",
			expected: "A\n\nB",
		},
		{
			name:     "list items break lines",
			input:    "<ul><li>first</li><li>second</li></ul>",
			expected: "first\n\nsecond",
		},
		{
			name:     "full document with head and body",
			input:    "<html><head><title>T</title></head><body><p>Chapter text.</p></body></html>",
			expected: "Chapter text.",
		},
		{
			name:     "entities are decoded",
			input:    "<p>Tom &amp; Jerry&nbsp;forever &mdash; always</p>",
			expected: "Tom & Jerry forever — always",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Extract(tt.input))
		})
	}
}
