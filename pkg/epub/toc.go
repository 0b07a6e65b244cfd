package epub

import (
	"encoding/xml"
	"strings"

	"github.com/pkg/errors"
)

// TocKind identifies which table-of-contents schema a package uses. It is
// decided once per document and dispatched through tocParser.
type TocKind int

const (
	// TocModern is the EPUB 3 navigation document (XHTML nested list).
	TocModern TocKind = iota
	// TocLegacy is the EPUB 2 NCX schema (navMap/navPoint).
	TocLegacy
)

func (k TocKind) String() string {
	if k == TocLegacy {
		return "legacy"
	}
	return "modern"
}

// tocEntry is a raw (label, href) pair in table-of-contents document order.
// The href is still relative to the ToC document.
type tocEntry struct {
	Label string
	Href  string
}

// tocParser extracts ordered entries from a ToC document of one schema.
type tocParser interface {
	Parse(data []byte) ([]tocEntry, error)
}

func parserFor(kind TocKind) tocParser {
	if kind == TocLegacy {
		return ncxParser{}
	}
	return navParser{}
}

// ncxParser handles the legacy NCX schema. Navigation points are flattened
// in document order, which matches their playOrder in well-formed files.
type ncxParser struct{}

func (ncxParser) Parse(data []byte) ([]tocEntry, error) {
	var ncx NCX
	if err := xml.Unmarshal(data, &ncx); err != nil {
		return nil, errors.WithStack(err)
	}
	return flattenNavPoints(ncx.NavMap.NavPoints, nil), nil
}

func flattenNavPoints(navPoints []NCXNavPoint, entries []tocEntry) []tocEntry {
	for _, np := range navPoints {
		if np.Content.Src != "" {
			entries = append(entries, tocEntry{
				Label: strings.TrimSpace(np.NavLabel.Text),
				Href:  np.Content.Src,
			})
		}
		entries = flattenNavPoints(np.Children, entries)
	}
	return entries
}

// navParser handles the modern navigation document. Only the toc landmark's
// top-level list items are read, and only their directly nested anchors, so
// anchors belonging to sub-lists of other landmarks are never picked up.
type navParser struct{}

func (navParser) Parse(data []byte) ([]tocEntry, error) {
	var nav NavHTML
	if err := xml.Unmarshal(data, &nav); err != nil {
		return nil, errors.WithStack(err)
	}

	ol := findTocList(nav.Body.Nav)
	if ol == nil {
		return nil, nil
	}

	entries := make([]tocEntry, 0, len(ol.Items))
	for _, li := range ol.Items {
		if li.A == nil || li.A.Href == "" {
			continue
		}
		entries = append(entries, tocEntry{
			Label: strings.TrimSpace(li.A.Text),
			Href:  li.A.Href,
		})
	}
	return entries, nil
}

// findTocList locates the toc landmark's list. The epub:type attribute is
// authoritative; id/class spellings of "toc" cover documents authored by
// less careful tools. A single untyped nav is accepted as a last resort.
func findTocList(navs []NavElement) *NavOL {
	for _, n := range navs {
		if strings.Contains(n.Type, "toc") && n.OL != nil {
			return n.OL
		}
	}
	for _, n := range navs {
		if (n.ID == "toc" || strings.Contains(n.Class, "toc")) && n.OL != nil {
			return n.OL
		}
	}
	if len(navs) == 1 && navs[0].OL != nil {
		return navs[0].OL
	}
	return nil
}
