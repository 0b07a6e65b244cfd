package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioworks/folio/internal/testgen"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "an explicitly named missing file is an error")

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, 0, cfg.TrimLeadingLines)
}

func TestLoad_File(t *testing.T) {
	path := testgen.WriteFile(t, t.TempDir(), "folio.yaml", []byte("format: epub\ntrim_leading_lines: 3\n"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "epub", cfg.Format)
	assert.Equal(t, 3, cfg.TrimLeadingLines)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := testgen.WriteFile(t, t.TempDir(), "folio.yaml", []byte("format: epub\n"))

	t.Setenv("FOLIO_FORMAT", "backup")
	t.Setenv("FOLIO_TITLE", "Override Title")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "backup", cfg.Format)
	assert.Equal(t, "Override Title", cfg.Title)
}
