package epub

import "encoding/xml"

// ContainerPath is the fixed location of the container descriptor inside an
// EPUB archive.
const ContainerPath = "META-INF/container.xml"

// Container represents META-INF/container.xml.
type Container struct {
	XMLName   xml.Name `xml:"container"`
	Rootfiles struct {
		Rootfile []struct {
			FullPath  string `xml:"full-path,attr"`
			MediaType string `xml:"media-type,attr"`
		} `xml:"rootfile"`
	} `xml:"rootfiles"`
}

// Package represents the OPF package descriptor: metadata, manifest, and
// spine.
type Package struct {
	XMLName  xml.Name `xml:"package"`
	Version  string   `xml:"version,attr"`
	Metadata struct {
		Title    []string `xml:"title"`
		Creator  []string `xml:"creator"`
		Language string   `xml:"language"`
	} `xml:"metadata"`
	Manifest struct {
		Item []ManifestItem `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		Toc     string `xml:"toc,attr"`
		Itemref []struct {
			Idref string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

// ManifestItem is a single manifest entry.
type ManifestItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr"`
}

// NCX represents the EPUB 2 table-of-contents schema.
type NCX struct {
	XMLName xml.Name `xml:"ncx"`
	NavMap  struct {
		NavPoints []NCXNavPoint `xml:"navPoint"`
	} `xml:"navMap"`
}

// NCXNavPoint is a navigation point in an NCX document.
type NCXNavPoint struct {
	ID        string `xml:"id,attr"`
	PlayOrder string `xml:"playOrder,attr"`
	NavLabel  struct {
		Text string `xml:"text"`
	} `xml:"navLabel"`
	Content struct {
		Src string `xml:"src,attr"`
	} `xml:"content"`
	Children []NCXNavPoint `xml:"navPoint"`
}

// NavHTML represents the EPUB 3 navigation document structure.
type NavHTML struct {
	XMLName xml.Name `xml:"html"`
	Body    struct {
		Nav []NavElement `xml:"nav"`
	} `xml:"body"`
}

// NavElement is a nav landmark in the navigation document.
type NavElement struct {
	Type  string `xml:"type,attr"`
	ID    string `xml:"id,attr"`
	Class string `xml:"class,attr"`
	OL    *NavOL `xml:"ol"`
}

// NavOL is an ordered list in the navigation document.
type NavOL struct {
	Items []NavLI `xml:"li"`
}

// NavLI is a list item in the navigation document.
type NavLI struct {
	A        *NavLink `xml:"a"`
	Children *NavOL   `xml:"ol"`
}

// NavLink is an anchor element.
type NavLink struct {
	Href string `xml:"href,attr"`
	Text string `xml:",chardata"`
}
