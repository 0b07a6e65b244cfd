package backup

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// BlockTypeText is the only block kind whose content this tool interprets.
const BlockTypeText = "text"

// BlockList is the structured document stored inside a scene's text field.
type BlockList struct {
	Blocks []Block `json:"blocks"`
}

// Block is one rich-text block. Text blocks expose their alignment and
// content; every other kind is carried as an opaque payload and re-serialized
// verbatim, so block kinds this tool does not understand survive a
// round-trip untouched.
type Block struct {
	Type  string
	Align string
	Text  string

	raw json.RawMessage
}

type textBlock struct {
	Type  string `json:"type"`
	Align string `json:"align"`
	Text  string `json:"text"`
}

// IsText reports whether the block holds searchable text content.
func (b *Block) IsText() bool {
	return b.Type == BlockTypeText
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return errors.WithStack(err)
	}

	if probe.Type != BlockTypeText {
		b.Type = probe.Type
		b.raw = append(json.RawMessage(nil), data...)
		return nil
	}

	var tb textBlock
	if err := json.Unmarshal(data, &tb); err != nil {
		return errors.WithStack(err)
	}
	b.Type = tb.Type
	b.Align = tb.Align
	b.Text = tb.Text
	b.raw = nil
	return nil
}

func (b Block) MarshalJSON() ([]byte, error) {
	if b.raw != nil {
		return b.raw, nil
	}
	return json.Marshal(textBlock{Type: b.Type, Align: b.Align, Text: b.Text})
}

// NewTextBlock builds a left-aligned text block.
func NewTextBlock(text string) Block {
	return Block{Type: BlockTypeText, Align: "left", Text: text}
}

// ParseBlocks parses a scene's serialized text field. Empty or malformed
// text is an error; callers treat such scenes as unsearchable and skip them.
func ParseBlocks(text string) (*BlockList, error) {
	if text == "" {
		return nil, errors.New("backup: empty block document")
	}
	var list BlockList
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, errors.WithStack(err)
	}
	return &list, nil
}

// PlainText flattens a scene's text blocks into plain text with a blank
// line between blocks. Non-text blocks are skipped.
func (s Scene) PlainText() (string, error) {
	list, err := ParseBlocks(s.Text)
	if err != nil {
		return "", err
	}
	var parts []string
	for _, block := range list.Blocks {
		if block.IsText() {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

// Serialize encodes the block list back into the scene text representation.
func (l *BlockList) Serialize() (string, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(data), nil
}
