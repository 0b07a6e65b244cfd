package archive

import (
	"archive/zip"
	"io"
	"os"

	"github.com/pkg/errors"
)

// ZipArchive reads entries out of a zip container, such as an EPUB package.
type ZipArchive struct {
	reader *zip.Reader
	closer io.Closer
}

// OpenZip opens the zip file at path.
func OpenZip(path string) (*ZipArchive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	stats, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.WithStack(err)
	}

	zr, err := zip.NewReader(f, stats.Size())
	if err != nil {
		f.Close()
		return nil, errors.WithStack(err)
	}

	return &ZipArchive{reader: zr, closer: f}, nil
}

// NewZipArchive wraps an already-open zip reader.
func NewZipArchive(zr *zip.Reader) *ZipArchive {
	return &ZipArchive{reader: zr}
}

func (a *ZipArchive) Get(path string) ([]byte, error) {
	path = NormalizePath(path)
	for _, file := range a.reader.File {
		if file.Name != path {
			continue
		}
		r, err := file.Open()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		defer r.Close()
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return b, nil
	}
	return nil, ErrNotFound
}

func (a *ZipArchive) List() []string {
	paths := make([]string, 0, len(a.reader.File))
	for _, file := range a.reader.File {
		paths = append(paths, file.Name)
	}
	return paths
}

// Close releases the underlying file, if the archive owns one.
func (a *ZipArchive) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}
