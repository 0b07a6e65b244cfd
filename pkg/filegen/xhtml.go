package filegen

import (
	"fmt"
	"strings"
)

// ChapterXHTML serializes plain chapter text into an XHTML content document.
// Blank-line-separated runs become paragraphs and remaining single newlines
// become explicit line breaks.
func ChapterXHTML(title, text string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <title>`)
	sb.WriteString(escapeXML(title))
	sb.WriteString("</title>\n</head>\n<body>\n")

	if title != "" {
		fmt.Fprintf(&sb, "  <h1>%s</h1>\n", escapeXML(title))
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		lines := strings.Split(para, "\n")
		for i, line := range lines {
			lines[i] = escapeXML(line)
		}
		fmt.Fprintf(&sb, "  <p>%s</p>\n", strings.Join(lines, "<br/>"))
	}

	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
