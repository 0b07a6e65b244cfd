package chapters

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/robinjoseph08/golib/logger"
	"golang.org/x/text/encoding/charmap"

	"github.com/folioworks/folio/pkg/archive"
	"github.com/folioworks/folio/pkg/epub"
	"github.com/folioworks/folio/pkg/errcodes"
	"github.com/folioworks/folio/pkg/htmltext"
)

// Chapter is one extracted chapter: its table-of-contents title and its
// normalized plain text.
type Chapter struct {
	Title string
	Text  string
}

// Diagnostic records a non-fatal per-chapter problem encountered during
// extraction.
type Diagnostic struct {
	Path string
	Code string
	Err  error
}

// Options controls the extraction pipeline.
type Options struct {
	// TrimLeadingLines drops the first N lines of every chapter. A chapter
	// with at most N lines becomes empty and is excluded from the output.
	TrimLeadingLines int
}

// Extract walks the resolved chapter list, fetches each chapter's markup
// from the archive, converts it to plain text, and applies optional
// leading-line trimming. A missing chapter file or a degraded decode is
// recorded as a diagnostic and does not abort the batch. Chapters that end
// up empty are excluded from the result.
func Extract(ctx context.Context, arc archive.Archive, refs []epub.ChapterRef, opts Options) ([]Chapter, []Diagnostic) {
	log := logger.FromContext(ctx)

	extracted := make([]Chapter, 0, len(refs))
	var diagnostics []Diagnostic

	for _, ref := range refs {
		raw, err := arc.Get(ref.Path)
		if err != nil {
			log.Warn("chapter file missing from archive", logger.Data{"path": ref.Path})
			diagnostics = append(diagnostics, Diagnostic{
				Path: ref.Path,
				Code: errcodes.CodeChapterUnreadable,
				Err:  errcodes.ChapterUnreadable(ref.Path),
			})
			continue
		}

		markup, degraded := decode(raw)
		if degraded {
			log.Warn("chapter is not valid UTF-8; using Latin-1 fallback", logger.Data{"path": ref.Path})
			diagnostics = append(diagnostics, Diagnostic{
				Path: ref.Path,
				Code: errcodes.CodeDecodeDegraded,
				Err:  errcodes.DecodeDegraded(ref.Path),
			})
		}

		text := htmltext.Extract(markup)
		if opts.TrimLeadingLines > 0 {
			text = trimLeadingLines(text, opts.TrimLeadingLines)
		}
		if text == "" {
			continue
		}

		extracted = append(extracted, Chapter{Title: ref.Title, Text: text})
	}

	return extracted, diagnostics
}

// decode interprets raw bytes as UTF-8, falling back to a byte-preserving
// ISO-8859-1 decode. The fallback cannot fail, so a corrupt encoding
// degrades to best-effort text instead of aborting the batch.
func decode(raw []byte) (string, bool) {
	if utf8.Valid(raw) {
		return string(raw), false
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		// ISO-8859-1 maps every byte; this branch is unreachable in
		// practice but degrades safely anyway.
		return string(raw), true
	}
	return string(decoded), true
}

// trimLeadingLines drops the first n lines, clamped to the line count.
func trimLeadingLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if n >= len(lines) {
		return ""
	}
	return strings.TrimSpace(strings.Join(lines[n:], "\n"))
}
