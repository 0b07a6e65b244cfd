package filegen

import (
	"context"
	"io"
	"time"

	"github.com/folioworks/folio/pkg/backup"
	"github.com/folioworks/folio/pkg/chapters"
)

// BackupGenerator writes chapters as a scaffolded version-4 project backup
// record.
type BackupGenerator struct {
	// Now overrides the scaffold timestamp source; nil means time.Now.
	Now func() time.Time
}

// Format returns the output format this generator produces.
func (g *BackupGenerator) Format() Format {
	return FormatBackup
}

// Generate scaffolds one scene per chapter and writes the record as JSON.
func (g *BackupGenerator) Generate(ctx context.Context, w io.Writer, title string, chs []chapters.Chapter) error {
	select {
	case <-ctx.Done():
		return NewGenerationError(FormatBackup, ctx.Err(), "generation cancelled")
	default:
	}

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	drafts := make([]backup.SceneDraft, 0, len(chs))
	for _, ch := range chs {
		drafts = append(drafts, backup.SceneDraft{Title: ch.Title, Text: ch.Text})
	}

	record, err := backup.NewRecord(title, drafts, now())
	if err != nil {
		return NewGenerationError(FormatBackup, err, "scaffolding record")
	}

	data, err := record.Save()
	if err != nil {
		return NewGenerationError(FormatBackup, err, "serializing record")
	}
	if _, err := w.Write(data); err != nil {
		return NewGenerationError(FormatBackup, err, "writing record")
	}
	return nil
}
