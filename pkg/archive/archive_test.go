package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_LeadingSlashStripped(t *testing.T) {
	t.Parallel()

	m := NewMemory(nil)
	m.Put("/OEBPS/ch1.xhtml", []byte("one"))

	b, err := m.Get("OEBPS/ch1.xhtml")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), b)

	b, err = m.Get("/OEBPS/ch1.xhtml")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), b)

	assert.Equal(t, []string{"OEBPS/ch1.xhtml"}, m.List())
}

func TestMemory_NotFound(t *testing.T) {
	t.Parallel()

	m := NewMemory(map[string][]byte{"a.txt": []byte("a")})
	_, err := m.Get("missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestZipArchive(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("dir/entry.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("content"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	a, err := OpenZip(path)
	require.NoError(t, err)
	defer a.Close()

	b, err := a.Get("dir/entry.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), b)

	_, err = a.Get("dir/other.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{"dir/entry.txt"}, a.List())
}
