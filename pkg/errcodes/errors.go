package errcodes

import (
	"errors"
	"fmt"
)

type Error struct {
	Message string
	Code    string
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.Message = err.Message
	te.Code = err.Code
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.Message == err.Message &&
		te.Code == err.Code
}

// HasCode reports whether err (or any error it wraps) carries the given code.
func HasCode(err error, code string) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// Codes for the conversion and search/replace failure taxonomy.
const (
	CodeStructureNotFound      = "structure_not_found"
	CodeTocNotFound            = "toc_not_found"
	CodeChapterUnreadable      = "chapter_unreadable"
	CodeDecodeDegraded         = "decode_degraded"
	CodePatternError           = "pattern_error"
	CodeNoActiveMatch          = "no_active_match"
	CodeRecordStructureInvalid = "record_structure_invalid"
)

// StructureNotFound indicates the container descriptor or package descriptor
// is missing or unparsable. Fatal to structure resolution.
func StructureNotFound(detail string) error {
	return &Error{
		fmt.Sprintf("Document structure not found: %s.", detail),
		CodeStructureNotFound,
	}
}

// TocNotFound indicates no recognizable table of contents in the package.
func TocNotFound() error {
	return &Error{
		"No table of contents found in the package.",
		CodeTocNotFound,
	}
}

// ChapterUnreadable indicates an individual chapter path is missing from the
// archive. Non-fatal to a batch.
func ChapterUnreadable(path string) error {
	return &Error{
		fmt.Sprintf("Chapter file %q not found in the archive.", path),
		CodeChapterUnreadable,
	}
}

// DecodeDegraded indicates chapter bytes were not valid UTF-8 and a
// byte-preserving Latin-1 decode was used instead. A warning, not a failure.
func DecodeDegraded(path string) error {
	return &Error{
		fmt.Sprintf("Chapter file %q is not valid UTF-8; fell back to Latin-1.", path),
		CodeDecodeDegraded,
	}
}

// PatternError indicates an invalid regular expression was supplied.
func PatternError(detail string) error {
	return &Error{
		fmt.Sprintf("Invalid search pattern: %s.", detail),
		CodePatternError,
	}
}

// NoActiveMatch indicates replace-one was called without a positioned match.
func NoActiveMatch() error {
	return &Error{
		"No active match. Run a search before replacing.",
		CodeNoActiveMatch,
	}
}

// RecordStructureInvalid indicates a loaded backup record is missing required
// structure (no revisions, or no scenes list).
func RecordStructureInvalid(detail string) error {
	return &Error{
		fmt.Sprintf("Backup record structure invalid: %s.", detail),
		CodeRecordStructureInvalid,
	}
}
