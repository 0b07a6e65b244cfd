package chapters

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9_]+`)
	underscoreRuns      = regexp.MustCompile(`_{2,}`)
)

// FileName builds the output file name for the n-th included chapter
// (1-based) out of total. Numbering is left-zero-padded to at least two
// digits and widens with the chapter count.
func FileName(n, total int, title string) string {
	width := len(fmt.Sprint(total))
	if width < 2 {
		width = 2
	}

	slug := strcase.ToSnake(strings.TrimSpace(title))
	slug = unsafeFilenameChars.ReplaceAllString(slug, "_")
	slug = underscoreRuns.ReplaceAllString(slug, "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "chapter"
	}

	return fmt.Sprintf("%0*d_%s.txt", width, n, slug)
}
