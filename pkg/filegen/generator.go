package filegen

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/folioworks/folio/pkg/chapters"
)

// Format names an output representation.
type Format string

const (
	// FormatText is a zip archive of numbered plain-text chapter files.
	FormatText Format = "text"
	// FormatEPUB is an EPUB 3 package with an NCX for older readers.
	FormatEPUB Format = "epub"
	// FormatBackup is a version-4 project backup record.
	FormatBackup Format = "backup"
)

// Generator writes one output representation of an extracted chapter list.
type Generator interface {
	// Generate writes the output for the given manuscript title and
	// chapters.
	Generate(ctx context.Context, w io.Writer, title string, chs []chapters.Chapter) error

	// Format returns the output format this generator produces.
	Format() Format
}

// GenerationError represents an error that occurred during output
// generation.
type GenerationError struct {
	Format  Format
	Err     error
	Message string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate %s output: %s", e.Format, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(format Format, err error, message string) *GenerationError {
	return &GenerationError{
		Format:  format,
		Err:     err,
		Message: message,
	}
}

// GetGenerator returns the generator for an output format.
func GetGenerator(format Format) (Generator, error) {
	switch format {
	case FormatText:
		return &TextGenerator{}, nil
	case FormatEPUB:
		return &EPUBGenerator{}, nil
	case FormatBackup:
		return &BackupGenerator{}, nil
	default:
		return nil, errors.Errorf("unsupported output format: %s", format)
	}
}
