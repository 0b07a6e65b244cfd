// Package testgen generates EPUB fixture files with configurable tables of
// contents for testing the resolution and extraction pipeline.
package testgen

import (
	"os"
	"path/filepath"
	"testing"
)

// TocStyle picks how the generated EPUB declares its table of contents.
type TocStyle string

const (
	// TocNav produces an EPUB 3 XHTML navigation document flagged with
	// properties="nav".
	TocNav TocStyle = "nav"
	// TocNCX produces an EPUB 2 NCX referenced by the spine's toc attribute.
	TocNCX TocStyle = "ncx"
	// TocNone omits the table of contents entirely.
	TocNone TocStyle = "none"
)

// EPUBChapter is one chapter of a generated EPUB fixture.
type EPUBChapter struct {
	Title string
	Body  string // plain text; paragraphs are separated by blank lines
}

// EPUBOptions configures the generated EPUB file.
type EPUBOptions struct {
	Title    string
	Chapters []EPUBChapter
	TocStyle TocStyle // defaults to TocNav
	// ExtraTocEntry adds a ToC entry pointing at a file that is not in the
	// archive, for exercising missing-chapter diagnostics.
	ExtraTocEntry string
}

// WriteFile creates a file with the given content in the specified directory
// and returns its full path.
func WriteFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}
