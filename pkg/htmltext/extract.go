package htmltext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Private markers injected into the markup before parsing so that block
// boundaries survive the flattening into text content. U+0001/U+0002 never
// appear in real chapter text.
const (
	paragraphMark = ""
	lineMark      = ""
)

// blockClosePattern matches the closing tag of block-level elements that
// produce a paragraph break when rendered.
var blockClosePattern = regexp.MustCompile(`(?i)</(?:p|h[1-6]|div|li|blockquote|pre|section|article|aside|header|footer|figure|figcaption|table|tr|td|th)\s*>`)

// breakPattern matches explicit line-break tags in all their spellings.
var breakPattern = regexp.MustCompile(`(?i)<br\s*/?\s*>`)

var (
	horizontalSpacePattern = regexp.MustCompile(`[ \t\x{00a0}]+`)
	spaceAroundNewline     = regexp.MustCompile(` *\n *`)
	newlineRunPattern      = regexp.MustCompile(`\n{3,}`)
)

// Extract converts an XHTML/HTML fragment into normalized plain text,
// preserving paragraph breaks as blank lines and explicit line breaks as
// single newlines. A fragment that cannot be parsed yields an empty string.
func Extract(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	marked := blockClosePattern.ReplaceAllStringFunc(markup, func(tag string) string {
		return tag + paragraphMark
	})
	marked = breakPattern.ReplaceAllString(marked, lineMark)

	doc, err := html.Parse(strings.NewReader(marked))
	if err != nil {
		return ""
	}

	root := findElement(doc, "body")
	if root == nil {
		root = doc
	}

	var sb strings.Builder
	collectText(root, &sb)

	return normalize(sb.String())
}

// collectText appends the rendered text of n and its children, skipping
// script and style subtrees.
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tagName); found != nil {
			return found
		}
	}
	return nil
}

// normalize turns marker characters into line structure and cleans up the
// whitespace that markup formatting leaves behind.
func normalize(text string) string {
	// Source newlines are formatting, not content; they render as spaces.
	text = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(text)

	text = strings.ReplaceAll(text, paragraphMark, "\n\n")
	text = strings.ReplaceAll(text, lineMark, "\n")

	text = horizontalSpacePattern.ReplaceAllString(text, " ")
	text = spaceAroundNewline.ReplaceAllString(text, "\n")
	text = newlineRunPattern.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
