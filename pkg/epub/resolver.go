package epub

import (
	"encoding/xml"
	"net/url"
	"path"
	"strings"

	"github.com/folioworks/folio/pkg/archive"
	"github.com/folioworks/folio/pkg/errcodes"
)

// ChapterRef is a single resolved table-of-contents entry. Path is an
// archive-internal location with no relative segments and no fragment
// identifier. Within one resolved list, Path is unique.
type ChapterRef struct {
	Title string
	Path  string
}

// ResolveChapters locates and parses the package's table of contents and
// returns the ordered, deduplicated chapter list. It fails with
// StructureNotFound when the container or package descriptor is missing or
// unparsable, and with TocNotFound when no recognizable table of contents
// exists. An empty chapter list is not itself an error; callers decide
// whether that is fatal.
func ResolveChapters(arc archive.Archive) ([]ChapterRef, error) {
	pkg, opfPath, err := loadPackage(arc)
	if err != nil {
		return nil, err
	}
	baseDir := dirOf(opfPath)

	kind, tocHref, ok := locateToc(pkg)
	if !ok {
		return nil, errcodes.TocNotFound()
	}

	tocPath := resolveRef(baseDir, stripFragment(tocHref))
	tocData, err := arc.Get(tocPath)
	if err != nil {
		return nil, errcodes.TocNotFound()
	}

	entries, err := parserFor(kind).Parse(tocData)
	if err != nil {
		return nil, errcodes.TocNotFound()
	}

	tocDir := dirOf(tocPath)
	seen := map[string]bool{}
	refs := make([]ChapterRef, 0, len(entries))
	for _, entry := range entries {
		href := stripFragment(entry.Href)
		if href == "" {
			continue
		}
		resolved := resolveRef(tocDir, href)
		if seen[resolved] {
			continue
		}
		seen[resolved] = true
		refs = append(refs, ChapterRef{Title: entry.Label, Path: resolved})
	}

	return refs, nil
}

// ResolveTitle returns the package's declared title, or an empty string when
// the package has none or cannot be read.
func ResolveTitle(arc archive.Archive) string {
	pkg, _, err := loadPackage(arc)
	if err != nil {
		return ""
	}
	for _, title := range pkg.Metadata.Title {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// loadPackage reads the container descriptor and the package descriptor it
// points at, returning the parsed package and its archive path.
func loadPackage(arc archive.Archive) (*Package, string, error) {
	containerData, err := arc.Get(ContainerPath)
	if err != nil {
		return nil, "", errcodes.StructureNotFound("container descriptor missing")
	}

	var container Container
	if err := xml.Unmarshal(containerData, &container); err != nil {
		return nil, "", errcodes.StructureNotFound("container descriptor unparsable")
	}
	if len(container.Rootfiles.Rootfile) == 0 || container.Rootfiles.Rootfile[0].FullPath == "" {
		return nil, "", errcodes.StructureNotFound("container declares no rootfile")
	}

	opfPath := archive.NormalizePath(container.Rootfiles.Rootfile[0].FullPath)
	opfData, err := arc.Get(opfPath)
	if err != nil {
		return nil, "", errcodes.StructureNotFound("package descriptor missing")
	}

	var pkg Package
	if err := xml.Unmarshal(opfData, &pkg); err != nil {
		return nil, "", errcodes.StructureNotFound("package descriptor unparsable")
	}

	return &pkg, opfPath, nil
}

// locateToc tries the two supported strategies in order: a manifest item
// flagged with the nav property (modern), then the spine toc attribute
// naming a manifest item id (legacy).
func locateToc(pkg *Package) (TocKind, string, bool) {
	for _, item := range pkg.Manifest.Item {
		for _, prop := range strings.Fields(item.Properties) {
			if prop == "nav" && item.Href != "" {
				return TocModern, item.Href, true
			}
		}
	}

	if pkg.Spine.Toc != "" {
		for _, item := range pkg.Manifest.Item {
			if item.ID == pkg.Spine.Toc && item.Href != "" {
				return TocLegacy, item.Href, true
			}
		}
	}

	return 0, "", false
}

// resolveRef resolves ref against baseDir. A rooted ref is used as-is; a
// relative ref is joined to baseDir and normalized, collapsing any . and ..
// segments.
func resolveRef(baseDir, ref string) string {
	if decoded, err := url.PathUnescape(ref); err == nil {
		ref = decoded
	}

	if strings.HasPrefix(ref, "/") {
		return archive.NormalizePath(path.Clean(ref))
	}
	if baseDir == "" {
		return path.Clean(ref)
	}
	return path.Join(baseDir, ref)
}

func stripFragment(href string) string {
	if idx := strings.IndexByte(href, '#'); idx >= 0 {
		return href[:idx]
	}
	return href
}

// dirOf is path.Dir with "." mapped to the empty archive root.
func dirOf(p string) string {
	dir := path.Dir(p)
	if dir == "." {
		return ""
	}
	return dir
}
