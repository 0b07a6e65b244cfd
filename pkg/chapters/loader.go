package chapters

import (
	"context"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/robinjoseph08/golib/logger"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/folioworks/folio/pkg/archive"
	"github.com/folioworks/folio/pkg/errcodes"
)

var fileNumberPrefix = regexp.MustCompile(`^[0-9]+_?`)

// FromArchive reads a flat archive of numbered plain-text chapter files back
// into chapters, in file-name order. Entries that are not .txt files are
// ignored. Unreadable entries are skipped and reported as diagnostics.
func FromArchive(ctx context.Context, arc archive.Archive) ([]Chapter, []Diagnostic) {
	log := logger.FromContext(ctx)

	names := make([]string, 0)
	for _, name := range arc.List() {
		if strings.EqualFold(path.Ext(name), ".txt") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	chs := make([]Chapter, 0, len(names))
	var diags []Diagnostic
	for _, name := range names {
		raw, err := arc.Get(name)
		if err != nil {
			log.Warn("skipping unreadable chapter file", logger.Data{"path": name})
			diags = append(diags, Diagnostic{Path: name, Code: errcodes.CodeChapterUnreadable, Err: errcodes.ChapterUnreadable(name)})
			continue
		}
		text, degraded := decode(raw)
		if degraded {
			log.Warn("chapter file is not valid UTF-8; using Latin-1 fallback", logger.Data{"path": name})
			diags = append(diags, Diagnostic{Path: name, Code: errcodes.CodeDecodeDegraded, Err: errcodes.DecodeDegraded(name)})
		}
		chs = append(chs, Chapter{Title: TitleFromFileName(name), Text: strings.TrimRight(text, "\n")})
	}
	return chs, diags
}

// TitleFromFileName recovers a display title from a numbered chapter file
// name, e.g. "03_the_long_road.txt" becomes "The Long Road".
func TitleFromFileName(name string) string {
	stem := strings.TrimSuffix(path.Base(name), path.Ext(name))
	stem = fileNumberPrefix.ReplaceAllString(stem, "")
	stem = strings.TrimSpace(strings.ReplaceAll(stem, "_", " "))
	if stem == "" {
		return ""
	}
	return cases.Title(language.English).String(stem)
}
