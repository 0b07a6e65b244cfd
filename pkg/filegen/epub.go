package filegen

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/folioworks/folio/pkg/chapters"
	"github.com/folioworks/folio/pkg/epub"
)

// EPUBGenerator writes chapters as an EPUB 3 package. Both a navigation
// document and an NCX are emitted so the package resolves under either
// table-of-contents strategy.
type EPUBGenerator struct{}

// Format returns the output format this generator produces.
func (g *EPUBGenerator) Format() Format {
	return FormatEPUB
}

// Generate writes the complete package. The mimetype entry is written first
// and uncompressed, as the container format requires.
func (g *EPUBGenerator) Generate(ctx context.Context, w io.Writer, title string, chs []chapters.Chapter) error {
	zw := zip.NewWriter(w)

	mimetypeHeader := &zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	}
	entry, err := zw.CreateHeader(mimetypeHeader)
	if err != nil {
		return NewGenerationError(FormatEPUB, err, "creating mimetype entry")
	}
	if _, err := entry.Write([]byte("application/epub+zip")); err != nil {
		return NewGenerationError(FormatEPUB, err, "writing mimetype")
	}

	containerXML := `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`
	if err := writeZipFile(zw, epub.ContainerPath, []byte(containerXML)); err != nil {
		return err
	}

	bookID := uuid.NewString()
	if err := writeZipFile(zw, "OEBPS/content.opf", generateOPF(title, bookID, chs)); err != nil {
		return err
	}
	if err := writeZipFile(zw, "OEBPS/nav.xhtml", generateNav(chs)); err != nil {
		return err
	}
	if err := writeZipFile(zw, "OEBPS/toc.ncx", generateNCX(title, bookID, chs)); err != nil {
		return err
	}

	for i, ch := range chs {
		select {
		case <-ctx.Done():
			return NewGenerationError(FormatEPUB, ctx.Err(), "generation cancelled")
		default:
		}
		content := ChapterXHTML(ch.Title, ch.Text)
		if err := writeZipFile(zw, "OEBPS/"+chapterHref(i), []byte(content)); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return NewGenerationError(FormatEPUB, err, "finalizing package")
	}
	return nil
}

func chapterHref(i int) string {
	return fmt.Sprintf("text/chapter%03d.xhtml", i+1)
}

func chapterLabel(ch chapters.Chapter, i int) string {
	if ch.Title != "" {
		return ch.Title
	}
	return fmt.Sprintf("Chapter %d", i+1)
}

func generateOPF(title, bookID string, chs []chapters.Chapter) []byte {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<package version="3.0" xmlns="http://www.idpf.org/2007/opf" unique-identifier="bookid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
`)
	fmt.Fprintf(&buf, "    <dc:identifier id=\"bookid\">urn:uuid:%s</dc:identifier>\n", bookID)
	fmt.Fprintf(&buf, "    <dc:title>%s</dc:title>\n", escapeXML(title))
	buf.WriteString("    <dc:language>en</dc:language>\n")
	buf.WriteString("  </metadata>\n")

	buf.WriteString("  <manifest>\n")
	buf.WriteString("    <item id=\"nav\" href=\"nav.xhtml\" media-type=\"application/xhtml+xml\" properties=\"nav\"/>\n")
	buf.WriteString("    <item id=\"ncx\" href=\"toc.ncx\" media-type=\"application/x-dtbncx+xml\"/>\n")
	for i := range chs {
		fmt.Fprintf(&buf, "    <item id=\"chapter%d\" href=\"%s\" media-type=\"application/xhtml+xml\"/>\n", i+1, chapterHref(i))
	}
	buf.WriteString("  </manifest>\n")

	buf.WriteString("  <spine toc=\"ncx\">\n")
	for i := range chs {
		fmt.Fprintf(&buf, "    <itemref idref=\"chapter%d\"/>\n", i+1)
	}
	buf.WriteString("  </spine>\n")
	buf.WriteString("</package>\n")

	return buf.Bytes()
}

func generateNav(chs []chapters.Chapter) []byte {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head>
  <title>Contents</title>
</head>
<body>
<nav epub:type="toc" id="toc">
  <ol>
`)
	for i, ch := range chs {
		fmt.Fprintf(&buf, "    <li><a href=\"%s\">%s</a></li>\n", chapterHref(i), escapeXML(chapterLabel(ch, i)))
	}
	buf.WriteString(`  </ol>
</nav>
</body>
</html>
`)

	return buf.Bytes()
}

func generateNCX(title, bookID string, chs []chapters.Chapter) []byte {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
  <head>
`)
	fmt.Fprintf(&buf, "    <meta name=\"dtb:uid\" content=\"urn:uuid:%s\"/>\n", bookID)
	buf.WriteString("  </head>\n")
	fmt.Fprintf(&buf, "  <docTitle><text>%s</text></docTitle>\n", escapeXML(title))
	buf.WriteString("  <navMap>\n")
	for i, ch := range chs {
		fmt.Fprintf(&buf, "    <navPoint id=\"navpoint-%d\" playOrder=\"%d\">\n", i+1, i+1)
		fmt.Fprintf(&buf, "      <navLabel><text>%s</text></navLabel>\n", escapeXML(chapterLabel(ch, i)))
		fmt.Fprintf(&buf, "      <content src=\"%s\"/>\n", chapterHref(i))
		buf.WriteString("    </navPoint>\n")
	}
	buf.WriteString("  </navMap>\n</ncx>\n")

	return buf.Bytes()
}

func writeZipFile(zw *zip.Writer, name string, content []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return NewGenerationError(FormatEPUB, err, "creating "+name)
	}
	if _, err := w.Write(content); err != nil {
		return NewGenerationError(FormatEPUB, err, "writing "+name)
	}
	return nil
}
