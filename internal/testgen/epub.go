package testgen

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// GenerateEPUB creates a valid EPUB file at the specified path with the given
// options. The generated EPUB contains mimetype, container.xml, content.opf,
// one XHTML file per chapter, and a table of contents in the requested style.
func GenerateEPUB(t *testing.T, dir, filename string, opts EPUBOptions) string {
	t.Helper()

	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create EPUB file: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	defer zw.Close()

	// mimetype must be first and uncompressed
	w, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		t.Fatalf("failed to create mimetype entry: %v", err)
	}
	if _, err := w.Write([]byte("application/epub+zip")); err != nil {
		t.Fatalf("failed to write mimetype: %v", err)
	}

	containerXML := `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`
	writeEntry(t, zw, "META-INF/container.xml", containerXML)

	style := opts.TocStyle
	if style == "" {
		style = TocNav
	}

	writeEntry(t, zw, "OEBPS/content.opf", generateOPF(opts, style))
	for i, ch := range opts.Chapters {
		writeEntry(t, zw, "OEBPS/"+chapterFile(i), chapterXHTML(ch))
	}

	switch style {
	case TocNav:
		writeEntry(t, zw, "OEBPS/nav.xhtml", generateNav(opts))
	case TocNCX:
		writeEntry(t, zw, "OEBPS/toc.ncx", generateNCX(opts))
	}

	return path
}

func chapterFile(i int) string {
	return fmt.Sprintf("chapter%d.xhtml", i+1)
}

func generateOPF(opts EPUBOptions, style TocStyle) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<package version="3.0" xmlns="http://www.idpf.org/2007/opf" unique-identifier="bookid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
`)
	if opts.Title != "" {
		fmt.Fprintf(&buf, "    <dc:title id=\"title\">%s</dc:title>\n", escapeXML(opts.Title))
	}
	buf.WriteString("    <dc:identifier id=\"bookid\">urn:uuid:test-book-id</dc:identifier>\n")
	buf.WriteString("    <dc:language>en</dc:language>\n")
	buf.WriteString("  </metadata>\n")

	buf.WriteString("  <manifest>\n")
	for i := range opts.Chapters {
		fmt.Fprintf(&buf, "    <item id=\"chapter%d\" href=\"%s\" media-type=\"application/xhtml+xml\"/>\n", i+1, chapterFile(i))
	}
	switch style {
	case TocNav:
		buf.WriteString("    <item id=\"nav\" href=\"nav.xhtml\" media-type=\"application/xhtml+xml\" properties=\"nav\"/>\n")
	case TocNCX:
		buf.WriteString("    <item id=\"ncx\" href=\"toc.ncx\" media-type=\"application/x-dtbncx+xml\"/>\n")
	}
	buf.WriteString("  </manifest>\n")

	if style == TocNCX {
		buf.WriteString("  <spine toc=\"ncx\">\n")
	} else {
		buf.WriteString("  <spine>\n")
	}
	for i := range opts.Chapters {
		fmt.Fprintf(&buf, "    <itemref idref=\"chapter%d\"/>\n", i+1)
	}
	buf.WriteString("  </spine>\n")
	buf.WriteString("</package>")

	return buf.String()
}

func generateNav(opts EPUBOptions) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head><title>Contents</title></head>
<body>
  <nav epub:type="toc">
    <ol>
`)
	for i, ch := range opts.Chapters {
		fmt.Fprintf(&buf, "      <li><a href=\"%s\">%s</a></li>\n", chapterFile(i), escapeXML(ch.Title))
	}
	if opts.ExtraTocEntry != "" {
		fmt.Fprintf(&buf, "      <li><a href=\"%s\">Missing</a></li>\n", opts.ExtraTocEntry)
	}
	buf.WriteString(`    </ol>
  </nav>
</body>
</html>`)

	return buf.String()
}

func generateNCX(opts EPUBOptions) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
  <navMap>
`)
	order := 1
	for i, ch := range opts.Chapters {
		fmt.Fprintf(&buf, `    <navPoint id="np%d" playOrder="%d">
      <navLabel><text>%s</text></navLabel>
      <content src="%s"/>
    </navPoint>
`, order, order, escapeXML(ch.Title), chapterFile(i))
		order++
	}
	if opts.ExtraTocEntry != "" {
		fmt.Fprintf(&buf, `    <navPoint id="np%d" playOrder="%d">
      <navLabel><text>Missing</text></navLabel>
      <content src="%s"/>
    </navPoint>
`, order, order, opts.ExtraTocEntry)
	}
	buf.WriteString(`  </navMap>
</ncx>`)

	return buf.String()
}

func chapterXHTML(ch EPUBChapter) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>` + escapeXML(ch.Title) + `</title></head>
<body>
`)
	fmt.Fprintf(&buf, "  <h1>%s</h1>\n", escapeXML(ch.Title))
	for _, para := range strings.Split(ch.Body, "\n\n") {
		if para == "" {
			continue
		}
		fmt.Fprintf(&buf, "  <p>%s</p>\n", escapeXML(para))
	}
	buf.WriteString(`</body>
</html>`)

	return buf.String()
}

func writeEntry(t *testing.T, zw *zip.Writer, name, data string) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("failed to create zip entry %s: %v", name, err)
	}
	if _, err := w.Write([]byte(data)); err != nil {
		t.Fatalf("failed to write zip entry %s: %v", name, err)
	}
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;")
	return r.Replace(s)
}
