package findreplace

import (
	"regexp"
	"strings"

	"github.com/folioworks/folio/pkg/errcodes"
)

// matcher is the single behavioral branch point between literal and regex
// search. Implementations report non-overlapping matches as (index, length)
// pairs in block-local character offsets.
type matcher interface {
	// NextMatchFrom returns the first match starting at or after offset.
	NextMatchFrom(text string, offset int) (index, length int, ok bool)
	// AllMatches returns every non-overlapping match in order.
	AllMatches(text string) [][2]int
	// ReplaceAll substitutes every match and returns the new text with the
	// replacement count.
	ReplaceAll(text, replacement string) (string, int)
}

// newMatcher builds the matcher for one search call. An invalid regular
// expression is a PatternError; it never degrades to a silent no-match.
func newMatcher(pattern string, isRegex bool) (matcher, error) {
	if !isRegex {
		return literalMatcher{pattern: pattern}, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errcodes.PatternError(err.Error())
	}
	return regexMatcher{re: re}, nil
}

// literalMatcher is plain substring search. The empty pattern never matches;
// without that guard it would match at every position forever.
type literalMatcher struct {
	pattern string
}

func (m literalMatcher) NextMatchFrom(text string, offset int) (int, int, bool) {
	if m.pattern == "" || offset > len(text) {
		return 0, 0, false
	}
	idx := strings.Index(text[offset:], m.pattern)
	if idx < 0 {
		return 0, 0, false
	}
	return offset + idx, len(m.pattern), true
}

func (m literalMatcher) AllMatches(text string) [][2]int {
	if m.pattern == "" {
		return nil
	}
	var matches [][2]int
	for pos := 0; pos <= len(text)-len(m.pattern); {
		idx := strings.Index(text[pos:], m.pattern)
		if idx < 0 {
			break
		}
		start := pos + idx
		matches = append(matches, [2]int{start, len(m.pattern)})
		pos = start + len(m.pattern)
	}
	return matches
}

func (m literalMatcher) ReplaceAll(text, replacement string) (string, int) {
	if m.pattern == "" {
		return text, 0
	}
	count := strings.Count(text, m.pattern)
	if count == 0 {
		return text, 0
	}
	return strings.ReplaceAll(text, m.pattern, replacement), count
}

// regexMatcher searches with a compiled regular expression. A zero-width
// match advances the scan position by one so the search always makes
// forward progress.
type regexMatcher struct {
	re *regexp.Regexp
}

func (m regexMatcher) NextMatchFrom(text string, offset int) (int, int, bool) {
	if offset > len(text) {
		return 0, 0, false
	}
	loc := m.re.FindStringIndex(text[offset:])
	if loc == nil {
		return 0, 0, false
	}
	return offset + loc[0], loc[1] - loc[0], true
}

func (m regexMatcher) AllMatches(text string) [][2]int {
	locs := m.re.FindAllStringIndex(text, -1)
	matches := make([][2]int, 0, len(locs))
	for _, loc := range locs {
		matches = append(matches, [2]int{loc[0], loc[1] - loc[0]})
	}
	return matches
}

func (m regexMatcher) ReplaceAll(text, replacement string) (string, int) {
	count := len(m.re.FindAllStringIndex(text, -1))
	if count == 0 {
		return text, 0
	}
	return m.re.ReplaceAllString(text, replacement), count
}
