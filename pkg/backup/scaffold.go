package backup

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// SceneDraft is the input for scaffolding one scene: a title and its plain
// text.
type SceneDraft struct {
	Title string
	Text  string
}

// Default workflow statuses stamped into new records.
var defaultStatuses = []Status{
	{Code: "todo", Title: "Todo", Color: "#F44336", Ranking: 1},
	{Code: "draft", Title: "Draft", Color: "#FFC107", Ranking: 2},
	{Code: "done", Title: "Done", Color: "#4CAF50", Ranking: 3},
}

// NewRecord scaffolds a version-4 backup record holding one revision with
// one scene per draft and one section per scene. Codes are freshly generated
// and timestamps are taken from now.
func NewRecord(title string, drafts []SceneDraft, now time.Time) (*Record, error) {
	ms := now.UnixMilli()

	scenes := make([]Scene, 0, len(drafts))
	sections := make([]Section, 0, len(drafts))
	for i, draft := range drafts {
		list := &BlockList{Blocks: []Block{NewTextBlock(draft.Text)}}
		text, err := list.Serialize()
		if err != nil {
			return nil, errors.Wrap(err, "serializing scene text")
		}

		sceneCode := uuid.NewString()
		scenes = append(scenes, Scene{
			Code:    sceneCode,
			Title:   draft.Title,
			Text:    text,
			Ranking: i + 1,
			Status:  defaultStatuses[0].Code,
		})
		sections = append(sections, Section{
			Code:       uuid.NewString(),
			Title:      draft.Title,
			SceneCodes: []string{sceneCode},
			Ranking:    i + 1,
		})
	}

	statuses := make([]Status, len(defaultStatuses))
	copy(statuses, defaultStatuses)

	return &Record{
		Version:             Version,
		Code:                uuid.NewString(),
		Title:               title,
		ShowTableOfContents: true,
		LastUpdateDate:      ms,
		LastBackupDate:      ms,
		Revisions: []Revision{{
			Number:         1,
			Date:           ms,
			BookProgresses: []BookProgress{},
			Statuses:       statuses,
			Scenes:         scenes,
			Sections:       sections,
		}},
	}, nil
}
