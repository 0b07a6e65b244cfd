package epub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavParser(t *testing.T) {
	t.Parallel()
	navXML := `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<body>
<nav epub:type="toc">
  <ol>
    <li><a href="chapter1.xhtml">Chapter 1</a></li>
    <li><a href="chapter2.xhtml#start">Chapter 2</a></li>
    <li><span>Unlinked heading</span></li>
  </ol>
</nav>
<nav epub:type="landmarks">
  <ol>
    <li><a href="cover.xhtml">Cover</a></li>
  </ol>
</nav>
</body>
</html>`

	entries, err := navParser{}.Parse([]byte(navXML))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Chapter 1", entries[0].Label)
	assert.Equal(t, "chapter1.xhtml", entries[0].Href)
	assert.Equal(t, "Chapter 2", entries[1].Label)
	assert.Equal(t, "chapter2.xhtml#start", entries[1].Href)
}

func TestNavParser_TocByID(t *testing.T) {
	t.Parallel()
	navXML := `<html xmlns="http://www.w3.org/1999/xhtml">
<body>
<nav id="toc">
  <ol>
    <li><a href="one.xhtml">One</a></li>
  </ol>
</nav>
</body>
</html>`

	entries, err := navParser{}.Parse([]byte(navXML))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "One", entries[0].Label)
}

func TestNavParser_NestedAnchorsOfOtherListsExcluded(t *testing.T) {
	t.Parallel()
	navXML := `<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<body>
<nav epub:type="toc">
  <ol>
    <li>
      <a href="part1.xhtml">Part 1</a>
      <ol>
        <li><a href="sub1.xhtml">Sub 1</a></li>
      </ol>
    </li>
  </ol>
</nav>
</body>
</html>`

	entries, err := navParser{}.Parse([]byte(navXML))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "part1.xhtml", entries[0].Href)
}

func TestNCXParser(t *testing.T) {
	t.Parallel()
	ncxXML := `<?xml version="1.0" encoding="UTF-8"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
<navMap>
  <navPoint id="ch1" playOrder="1">
    <navLabel><text>Chapter 1</text></navLabel>
    <content src="chapter1.xhtml"/>
    <navPoint id="ch1-1" playOrder="2">
      <navLabel><text>Section 1.1</text></navLabel>
      <content src="chapter1.xhtml#s1"/>
    </navPoint>
  </navPoint>
  <navPoint id="ch2" playOrder="3">
    <navLabel><text>Chapter 2</text></navLabel>
    <content src="chapter2.xhtml"/>
  </navPoint>
</navMap>
</ncx>`

	entries, err := ncxParser{}.Parse([]byte(ncxXML))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Chapter 1", entries[0].Label)
	assert.Equal(t, "chapter1.xhtml", entries[0].Href)
	assert.Equal(t, "Section 1.1", entries[1].Label)
	assert.Equal(t, "chapter1.xhtml#s1", entries[1].Href)
	assert.Equal(t, "Chapter 2", entries[2].Label)
}

func TestNCXParser_Invalid(t *testing.T) {
	t.Parallel()
	_, err := ncxParser{}.Parse([]byte("not xml at all <"))
	assert.Error(t, err)
}
