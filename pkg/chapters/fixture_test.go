package chapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioworks/folio/internal/testgen"
	"github.com/folioworks/folio/pkg/archive"
	"github.com/folioworks/folio/pkg/chapters"
	"github.com/folioworks/folio/pkg/epub"
	"github.com/folioworks/folio/pkg/errcodes"
)

func TestExtract_GeneratedFixtures(t *testing.T) {
	t.Parallel()

	opts := testgen.EPUBOptions{
		Title: "Fixture Book",
		Chapters: []testgen.EPUBChapter{
			{Title: "One", Body: "First paragraph.\n\nSecond paragraph."},
			{Title: "Two", Body: "Only paragraph."},
		},
	}

	for _, style := range []testgen.TocStyle{testgen.TocNav, testgen.TocNCX} {
		style := style
		t.Run(string(style), func(t *testing.T) {
			t.Parallel()

			opts := opts
			opts.TocStyle = style
			path := testgen.GenerateEPUB(t, t.TempDir(), "fixture.epub", opts)

			arc, err := archive.OpenZip(path)
			require.NoError(t, err)
			defer arc.Close()

			assert.Equal(t, "Fixture Book", epub.ResolveTitle(arc))

			refs, err := epub.ResolveChapters(arc)
			require.NoError(t, err)
			require.Len(t, refs, 2)
			assert.Equal(t, "One", refs[0].Title)
			assert.Equal(t, "OEBPS/chapter1.xhtml", refs[0].Path)
			assert.Equal(t, "Two", refs[1].Title)

			extracted, diagnostics := chapters.Extract(context.Background(), arc, refs, chapters.Options{})
			require.Empty(t, diagnostics)
			require.Len(t, extracted, 2)
			assert.Equal(t, "One\n\nFirst paragraph.\n\nSecond paragraph.", extracted[0].Text)
			assert.Equal(t, "Two\n\nOnly paragraph.", extracted[1].Text)
		})
	}
}

func TestExtract_GeneratedFixtureMissingChapter(t *testing.T) {
	t.Parallel()

	path := testgen.GenerateEPUB(t, t.TempDir(), "fixture.epub", testgen.EPUBOptions{
		Title:         "Fixture Book",
		Chapters:      []testgen.EPUBChapter{{Title: "One", Body: "Text."}},
		ExtraTocEntry: "ghost.xhtml",
	})

	arc, err := archive.OpenZip(path)
	require.NoError(t, err)
	defer arc.Close()

	refs, err := epub.ResolveChapters(arc)
	require.NoError(t, err)
	require.Len(t, refs, 2)

	extracted, diagnostics := chapters.Extract(context.Background(), arc, refs, chapters.Options{})
	require.Len(t, extracted, 1)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, errcodes.CodeChapterUnreadable, diagnostics[0].Code)
	assert.Equal(t, "OEBPS/ghost.xhtml", diagnostics[0].Path)
}

func TestExtract_GeneratedFixtureNoToc(t *testing.T) {
	t.Parallel()

	path := testgen.GenerateEPUB(t, t.TempDir(), "fixture.epub", testgen.EPUBOptions{
		Title:    "Fixture Book",
		Chapters: []testgen.EPUBChapter{{Title: "One", Body: "Text."}},
		TocStyle: testgen.TocNone,
	})

	arc, err := archive.OpenZip(path)
	require.NoError(t, err)
	defer arc.Close()

	_, err = epub.ResolveChapters(arc)
	require.Error(t, err)
	assert.True(t, errcodes.HasCode(err, errcodes.CodeTocNotFound))
}
