package archive

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Get when no entry exists at the given path.
var ErrNotFound = errors.New("archive: entry not found")

// Archive is an opaque path-to-bytes store with enumeration. Paths are
// case-sensitive and forward-slash separated; a leading slash is stripped at
// the boundary so "OEBPS/ch1.xhtml" and "/OEBPS/ch1.xhtml" name the same
// entry.
type Archive interface {
	// Get returns the byte content at path, or ErrNotFound.
	Get(path string) ([]byte, error)
	// List returns every entry path in archive order.
	List() []string
}

// NormalizePath applies the boundary rules for archive-internal paths.
func NormalizePath(path string) string {
	return strings.TrimPrefix(path, "/")
}
