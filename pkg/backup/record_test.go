package backup

import (
	"testing"
	"time"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioworks/folio/pkg/errcodes"
)

func minimalRecordJSON() []byte {
	return []byte(`{
		"version": 4,
		"code": "abc",
		"title": "My Book",
		"description": "",
		"show_table_of_contents": true,
		"apply_automatic_indentation": false,
		"last_update_date": 1700000000000,
		"last_backup_date": 1700000000000,
		"revisions": [{
			"number": 1,
			"date": 1700000000000,
			"book_progresses": [],
			"statuses": [],
			"scenes": [{
				"code": "s1",
				"title": "Scene One",
				"text": "{\"blocks\":[{\"type\":\"text\",\"align\":\"left\",\"text\":\"Hello world\"}]}",
				"ranking": 1,
				"status": "todo"
			}],
			"sections": []
		}]
	}`)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	record, err := Load(minimalRecordJSON())
	require.NoError(t, err)

	assert.Equal(t, 4, record.Version)
	assert.Equal(t, "My Book", record.Title)
	require.Len(t, record.Revisions, 1)
	require.Len(t, record.Revisions[0].Scenes, 1)
	assert.Equal(t, "Scene One", record.Revisions[0].Scenes[0].Title)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "nope"},
		{name: "no revisions", data: `{"version":4,"revisions":[]}`},
		{name: "no scenes", data: `{"version":4,"revisions":[{"number":1}]}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errcodes.HasCode(err, errcodes.CodeRecordStructureInvalid))
		})
	}
}

func TestRoundTrip_FieldNamesPreserved(t *testing.T) {
	t.Parallel()

	record, err := Load(minimalRecordJSON())
	require.NoError(t, err)

	data, err := record.Save()
	require.NoError(t, err)

	var original, saved map[string]interface{}
	require.NoError(t, json.Unmarshal(minimalRecordJSON(), &original))
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, original, saved)
}

func TestBlocks_RoundTrip(t *testing.T) {
	t.Parallel()

	text := `{"blocks":[{"type":"text","align":"left","text":"Hello"},{"type":"image","src":"cover.png","caption":"x"}]}`
	list, err := ParseBlocks(text)
	require.NoError(t, err)
	require.Len(t, list.Blocks, 2)

	assert.True(t, list.Blocks[0].IsText())
	assert.Equal(t, "Hello", list.Blocks[0].Text)
	assert.False(t, list.Blocks[1].IsText())
	assert.Equal(t, "image", list.Blocks[1].Type)

	out, err := list.Serialize()
	require.NoError(t, err)

	// The unknown image block must survive byte-for-byte in structure.
	var original, roundTripped map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &original))
	require.NoError(t, json.Unmarshal([]byte(out), &roundTripped))
	assert.Equal(t, original, roundTripped)
}

func TestParseBlocks_Empty(t *testing.T) {
	t.Parallel()

	_, err := ParseBlocks("")
	assert.Error(t, err)
	_, err = ParseBlocks("{not json")
	assert.Error(t, err)
}

func TestNewRecord(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	record, err := NewRecord("My Book", []SceneDraft{
		{Title: "One", Text: "First scene."},
		{Title: "Two", Text: "Second scene."},
	}, now)
	require.NoError(t, err)

	assert.Equal(t, Version, record.Version)
	assert.NotEmpty(t, record.Code)
	assert.Equal(t, now.UnixMilli(), record.LastUpdateDate)

	require.Len(t, record.Revisions, 1)
	rev := record.Revisions[0]
	require.Len(t, rev.Scenes, 2)
	require.Len(t, rev.Sections, 2)

	assert.Equal(t, 1, rev.Scenes[0].Ranking)
	assert.Equal(t, 2, rev.Scenes[1].Ranking)
	assert.Equal(t, []string{rev.Scenes[0].Code}, rev.Sections[0].SceneCodes)

	list, err := ParseBlocks(rev.Scenes[0].Text)
	require.NoError(t, err)
	require.Len(t, list.Blocks, 1)
	assert.Equal(t, "First scene.", list.Blocks[0].Text)
	assert.Equal(t, "left", list.Blocks[0].Align)
}

func TestClone_Independent(t *testing.T) {
	t.Parallel()

	record, err := Load(minimalRecordJSON())
	require.NoError(t, err)

	clone, err := record.Clone()
	require.NoError(t, err)

	clone.Revisions[0].Scenes[0].Text = "changed"
	assert.NotEqual(t, clone.Revisions[0].Scenes[0].Text, record.Revisions[0].Scenes[0].Text)
}
