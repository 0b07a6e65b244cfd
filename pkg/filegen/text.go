package filegen

import (
	"archive/zip"
	"context"
	"io"

	"github.com/folioworks/folio/pkg/chapters"
)

// TextGenerator writes chapters as a zip archive of numbered plain-text
// files.
type TextGenerator struct{}

// Format returns the output format this generator produces.
func (g *TextGenerator) Format() Format {
	return FormatText
}

// Generate writes one NN_title.txt entry per chapter, numbered over the
// included chapter count.
func (g *TextGenerator) Generate(ctx context.Context, w io.Writer, _ string, chs []chapters.Chapter) error {
	zw := zip.NewWriter(w)

	for i, ch := range chs {
		select {
		case <-ctx.Done():
			return NewGenerationError(FormatText, ctx.Err(), "generation cancelled")
		default:
		}

		entry, err := zw.Create(chapters.FileName(i+1, len(chs), ch.Title))
		if err != nil {
			return NewGenerationError(FormatText, err, "creating archive entry")
		}
		if _, err := io.WriteString(entry, ch.Text+"\n"); err != nil {
			return NewGenerationError(FormatText, err, "writing chapter text")
		}
	}

	if err := zw.Close(); err != nil {
		return NewGenerationError(FormatText, err, "finalizing archive")
	}
	return nil
}
