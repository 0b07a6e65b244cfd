package chapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioworks/folio/pkg/archive"
	"github.com/folioworks/folio/pkg/errcodes"
)

func TestFromArchive(t *testing.T) {
	t.Parallel()

	arc := archive.NewMemory(nil)
	arc.Put("02_the_long_road.txt", []byte("Second chapter."))
	arc.Put("01_dawn.txt", []byte("First chapter."))
	arc.Put("notes.md", []byte("ignored"))

	chs, diags := FromArchive(context.Background(), arc)
	require.Empty(t, diags)
	require.Len(t, chs, 2)
	assert.Equal(t, "Dawn", chs[0].Title)
	assert.Equal(t, "First chapter.", chs[0].Text)
	assert.Equal(t, "The Long Road", chs[1].Title)
	assert.Equal(t, "Second chapter.", chs[1].Text)
}

func TestFromArchive_Latin1Fallback(t *testing.T) {
	t.Parallel()

	arc := archive.NewMemory(nil)
	arc.Put("01_cafe.txt", []byte{'c', 'a', 'f', 0xE9})

	chs, diags := FromArchive(context.Background(), arc)
	require.Len(t, chs, 1)
	assert.Equal(t, "café", chs[0].Text)
	require.Len(t, diags, 1)
	assert.Equal(t, errcodes.CodeDecodeDegraded, diags[0].Code)
}

func TestTitleFromFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected string
	}{
		{"01_dawn.txt", "Dawn"},
		{"12_the_long_road.txt", "The Long Road"},
		{"003_chapter.txt", "Chapter"},
		{"untitled.txt", "Untitled"},
		{"07_.txt", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, TitleFromFileName(tt.name), tt.name)
	}
}
