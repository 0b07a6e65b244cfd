package backup

import (
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"

	"github.com/folioworks/folio/pkg/errcodes"
)

// Version is the backup record layout version this package produces.
const Version = 4

// Record is the persisted project backup document. Field names and nesting
// are a compatibility contract with the consuming application and must
// round-trip unchanged.
type Record struct {
	Version                   int        `json:"version"`
	Code                      string     `json:"code"`
	Title                     string     `json:"title"`
	Description               string     `json:"description"`
	ShowTableOfContents       bool       `json:"show_table_of_contents"`
	ApplyAutomaticIndentation bool       `json:"apply_automatic_indentation"`
	LastUpdateDate            int64      `json:"last_update_date"`
	LastBackupDate            int64      `json:"last_backup_date"`
	Revisions                 []Revision `json:"revisions"`
}

// Revision is one revision of the manuscript. Only Revisions[0] is read or
// written by this tool.
type Revision struct {
	Number         int            `json:"number"`
	Date           int64          `json:"date"`
	BookProgresses []BookProgress `json:"book_progresses"`
	Statuses       []Status       `json:"statuses"`
	Scenes         []Scene        `json:"scenes"`
	Sections       []Section      `json:"sections"`
}

// BookProgress is a per-day word count sample.
type BookProgress struct {
	Year      int `json:"year"`
	Month     int `json:"month"`
	Day       int `json:"day"`
	WordCount int `json:"word_count"`
}

// Status is a scene workflow status.
type Status struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Color   string `json:"color"`
	Ranking int    `json:"ranking"`
}

// Scene is the atomic chapter-equivalent unit. Text holds a serialized
// block list (see ParseBlocks / BlockList.Serialize).
type Scene struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Text    string `json:"text"`
	Ranking int    `json:"ranking"`
	Status  string `json:"status"`
}

// Section groups scene references for table-of-contents structure.
type Section struct {
	Code       string   `json:"code"`
	Title      string   `json:"title"`
	SceneCodes []string `json:"scene_codes"`
	Ranking    int      `json:"ranking"`
}

// Load parses a backup record and validates that it holds the structure the
// rest of the tool depends on.
func Load(data []byte) (*Record, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errcodes.RecordStructureInvalid("not valid JSON")
	}
	if len(record.Revisions) == 0 {
		return nil, errcodes.RecordStructureInvalid("no revisions")
	}
	if record.Revisions[0].Scenes == nil {
		return nil, errcodes.RecordStructureInvalid("revisions[0] has no scenes list")
	}
	return &record, nil
}

// Save serializes the record.
func (r *Record) Save() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return data, nil
}

// Clone deep-copies the record through a serialization round-trip, which
// also preserves opaque block payloads exactly.
func (r *Record) Clone() (*Record, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var clone Record
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, errors.WithStack(err)
	}
	return &clone, nil
}

// MarkUpdated stamps the modification timestamps with t.
func (r *Record) MarkUpdated(t time.Time) {
	ms := t.UnixMilli()
	r.LastUpdateDate = ms
	r.LastBackupDate = ms
}
