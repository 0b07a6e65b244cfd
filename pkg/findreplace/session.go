package findreplace

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"

	"github.com/folioworks/folio/pkg/backup"
	"github.com/folioworks/folio/pkg/errcodes"
)

// Cursor marks the current search position as a (scene, block, character
// offset) triple over a revision's scenes list. The zero value is the unset
// origin.
type Cursor struct {
	SceneIndex int
	BlockIndex int
	Offset     int
}

// Match describes one located pattern occurrence.
type Match struct {
	SceneIndex   int
	BlockIndex   int
	MatchIndex   int
	MatchLength  int
	ChapterTitle string
	MatchLine    string
}

// Session owns the find/replace state for one loaded backup record. The
// record itself stays owned by the caller; mutations hand back a fresh deep
// copy and rebind the session to it. Sessions assume single-writer,
// single-reader use.
type Session struct {
	record    *backup.Record
	cursor    Cursor
	lastMatch *Match
	// positioned distinguishes a cursor placed by a search or replace from
	// the unset origin, which shares the zero Cursor value.
	positioned bool

	log logger.Logger
	now func() time.Time
}

// NewSession binds a session to a loaded record with the cursor at the
// origin.
func NewSession(record *backup.Record) *Session {
	return &Session{
		record: record,
		log:    logger.New(),
		now:    time.Now,
	}
}

// Load rebinds the session to a new record and resets all search state.
func (s *Session) Load(record *backup.Record) {
	s.record = record
	s.cursor = Cursor{}
	s.lastMatch = nil
	s.positioned = false
}

// Record returns the record the session is currently bound to.
func (s *Session) Record() *backup.Record {
	return s.record
}

// Cursor returns the current search position.
func (s *Session) Cursor() Cursor {
	return s.cursor
}

func (s *Session) scenes() []backup.Scene {
	if s.record == nil || len(s.record.Revisions) == 0 {
		return nil
	}
	return s.record.Revisions[0].Scenes
}

// FindNext scans forward from the cursor for the next occurrence of pattern
// and positions the cursor just past it. It returns nil with no error when
// the document is exhausted. An invalid regex is a PatternError and leaves
// the cursor and the last match untouched.
func (s *Session) FindNext(pattern string, isRegex bool) (*Match, error) {
	m, err := newMatcher(pattern, isRegex)
	if err != nil {
		return nil, err
	}

	scenes := s.scenes()
	for si := s.cursor.SceneIndex; si < len(scenes); si++ {
		scene := scenes[si]
		list, err := backup.ParseBlocks(scene.Text)
		if err != nil {
			continue
		}

		startBlock := 0
		if si == s.cursor.SceneIndex {
			startBlock = s.cursor.BlockIndex
		}

		for bi := startBlock; bi < len(list.Blocks); bi++ {
			block := list.Blocks[bi]
			if !block.IsText() {
				continue
			}

			offset := 0
			if si == s.cursor.SceneIndex && bi == s.cursor.BlockIndex {
				offset = s.cursor.Offset
			}

			idx, length, ok := m.NextMatchFrom(block.Text, offset)
			if !ok {
				continue
			}

			advance := length
			if advance < 1 {
				advance = 1
			}
			match := &Match{
				SceneIndex:   si,
				BlockIndex:   bi,
				MatchIndex:   idx,
				MatchLength:  length,
				ChapterTitle: sceneTitle(scene, si),
				MatchLine:    lineOf(block.Text, idx),
			}
			s.cursor = Cursor{SceneIndex: si, BlockIndex: bi, Offset: idx + advance}
			s.lastMatch = match
			s.positioned = true
			return match, nil
		}
	}

	// Exhausted: leave the cursor consumed so repeated calls stay no-match.
	s.cursor = Cursor{SceneIndex: len(scenes)}
	s.lastMatch = nil
	s.positioned = false
	return nil, nil
}

// FindPrevious scans backward from the cursor. When the cursor is unset or
// out of range, the scan starts from the end of the last scene. On a match
// the cursor moves to the match start so the following call continues
// strictly before it.
func (s *Session) FindPrevious(pattern string, isRegex bool) (*Match, error) {
	m, err := newMatcher(pattern, isRegex)
	if err != nil {
		return nil, err
	}

	scenes := s.scenes()
	if len(scenes) == 0 {
		return nil, nil
	}

	startScene := s.cursor.SceneIndex
	useCursor := s.positioned && s.cursor.SceneIndex < len(scenes)
	if !useCursor {
		startScene = len(scenes) - 1
	}

	for si := startScene; si >= 0; si-- {
		scene := scenes[si]
		list, err := backup.ParseBlocks(scene.Text)
		if err != nil {
			continue
		}
		if len(list.Blocks) == 0 {
			continue
		}

		startBlock := len(list.Blocks) - 1
		cursorBlock := -1
		if useCursor && si == startScene && s.cursor.BlockIndex < len(list.Blocks) {
			startBlock = s.cursor.BlockIndex
			cursorBlock = s.cursor.BlockIndex
		}

		for bi := startBlock; bi >= 0; bi-- {
			block := list.Blocks[bi]
			if !block.IsText() {
				continue
			}

			boundary := len(block.Text) + 1
			if bi == cursorBlock {
				boundary = s.cursor.Offset
			}

			// A backward single step cannot know the previous match
			// directly, so enumerate every match in the block and take the
			// last one before the boundary.
			var found *[2]int
			for _, loc := range m.AllMatches(block.Text) {
				if loc[0] >= boundary {
					break
				}
				loc := loc
				found = &loc
			}
			if found == nil {
				continue
			}

			match := &Match{
				SceneIndex:   si,
				BlockIndex:   bi,
				MatchIndex:   found[0],
				MatchLength:  found[1],
				ChapterTitle: sceneTitle(scene, si),
				MatchLine:    lineOf(block.Text, found[0]),
			}
			s.cursor = Cursor{SceneIndex: si, BlockIndex: bi, Offset: found[0]}
			s.lastMatch = match
			s.positioned = true
			return match, nil
		}
	}

	s.cursor = Cursor{}
	s.lastMatch = nil
	s.positioned = false
	return nil, nil
}

// ReplaceOne substitutes the span of the last match with replacement and
// returns the mutated record (a deep copy; the session rebinds to it). It
// requires a positioned match from a prior search.
func (s *Session) ReplaceOne(replacement string) (*backup.Record, error) {
	if s.lastMatch == nil {
		return nil, errcodes.NoActiveMatch()
	}
	match := s.lastMatch

	clone, err := s.record.Clone()
	if err != nil {
		return nil, err
	}

	scenes := clone.Revisions[0].Scenes
	if match.SceneIndex >= len(scenes) {
		return nil, errors.New("findreplace: match scene out of range")
	}
	scene := &scenes[match.SceneIndex]

	list, err := backup.ParseBlocks(scene.Text)
	if err != nil {
		return nil, errors.Wrap(err, "parsing matched scene text")
	}
	if match.BlockIndex >= len(list.Blocks) {
		return nil, errors.New("findreplace: match block out of range")
	}
	block := &list.Blocks[match.BlockIndex]

	text := block.Text
	end := match.MatchIndex + match.MatchLength
	if match.MatchIndex > len(text) || end > len(text) {
		return nil, errors.New("findreplace: match span out of range")
	}
	block.Text = text[:match.MatchIndex] + replacement + text[end:]

	serialized, err := list.Serialize()
	if err != nil {
		return nil, err
	}
	scene.Text = serialized

	s.record = clone
	s.cursor = Cursor{
		SceneIndex: match.SceneIndex,
		BlockIndex: match.BlockIndex,
		Offset:     match.MatchIndex + len(replacement),
	}
	s.lastMatch = nil
	s.positioned = true
	return clone, nil
}

// ReplaceAll substitutes every occurrence of pattern in every text block of
// every scene and returns the mutated record with the total replacement
// count. Scenes whose text does not parse as a block list are skipped with a
// diagnostic. The cursor and last match reset to the origin.
func (s *Session) ReplaceAll(pattern, replacement string, isRegex bool) (*backup.Record, int, error) {
	m, err := newMatcher(pattern, isRegex)
	if err != nil {
		return nil, 0, err
	}

	clone, err := s.record.Clone()
	if err != nil {
		return nil, 0, err
	}

	total := 0
	if len(clone.Revisions) > 0 {
		scenes := clone.Revisions[0].Scenes
		for si := range scenes {
			scene := &scenes[si]
			list, err := backup.ParseBlocks(scene.Text)
			if err != nil {
				s.log.Warn("scene text is not a block document; skipping", logger.Data{
					"scene_code": scene.Code,
					"scene":      si,
				})
				continue
			}

			changed := false
			for bi := range list.Blocks {
				block := &list.Blocks[bi]
				if !block.IsText() {
					continue
				}
				replaced, count := m.ReplaceAll(block.Text, replacement)
				if count == 0 {
					continue
				}
				block.Text = replaced
				changed = true
				total += count
			}

			if !changed {
				continue
			}
			serialized, err := list.Serialize()
			if err != nil {
				return nil, 0, err
			}
			scene.Text = serialized
		}
	}

	if total > 0 {
		clone.MarkUpdated(s.now())
	}

	s.record = clone
	s.cursor = Cursor{}
	s.lastMatch = nil
	s.positioned = false
	return clone, total, nil
}

func sceneTitle(scene backup.Scene, index int) string {
	if scene.Title != "" {
		return scene.Title
	}
	return fmt.Sprintf("Scene %d", index+1)
}

// lineOf returns the full line of text containing the character at idx.
func lineOf(text string, idx int) string {
	start := 0
	for {
		rel := strings.IndexByte(text[start:], '\n')
		if rel < 0 {
			return text[start:]
		}
		lineEnd := start + rel
		if idx <= lineEnd {
			return text[start:lineEnd]
		}
		start = lineEnd + 1
	}
}
