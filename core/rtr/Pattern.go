package rtr

import (
	"strconv"
	"strings"
)

// part is one unit of a compiled pattern: either a run of literal path
// bytes or a single named parameter.
type part struct {
	text  string // literal bytes, or the parameter name
	param bool
}

// Pattern is a compiled route pattern such as "/posts/{id}/comments".
// A Pattern is immutable and safe for concurrent use by multiple
// goroutines.
type Pattern struct {
	raw       string
	parts     []part
	numParams int
}

// Compile parses a route pattern. Patterns are absolute paths whose
// segments are literal text or "{name}" parameters, as in
// "/users/{id}/posts". Parameter names start with a letter followed by
// letters or digits. Failures are reported as a *ParseError carrying
// the byte offset of the offending input.
func Compile(pattern string) (*Pattern, error) {
	parts, perr := parse(pattern)
	if perr != nil {
		return nil, perr
	}

	numParams := 0
	for _, pt := range parts {
		if pt.param {
			numParams++
		}
	}
	return &Pattern{raw: pattern, parts: parts, numParams: numParams}, nil
}

// MustCompile is like Compile but panics if the pattern is invalid.
// It simplifies registering routes from constant strings.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic("rtr: Compile(" + strconv.Quote(pattern) + "): " + err.Error())
	}
	return p
}

// String returns the original pattern text.
func (p *Pattern) String() string {
	return p.raw
}

// Match attempts to match path against the pattern. Literal parts must
// match byte for byte; parameter parts capture greedily up to the next
// '/'. On success it returns one Match per parameter in declaration
// order, nil when the pattern has none. Match never reports an error:
// any path the pattern cannot account for, including one with a
// malformed percent escape, simply does not match.
//
// The path must already be normalized, meaning a leading '/' and no
// trailing '/' except for the root path itself.
func (p *Pattern) Match(path string) ([]Match, bool) {
	if len(p.parts) == 0 {
		return nil, path == "/"
	}

	var matches []Match
	if p.numParams > 0 {
		matches = make([]Match, 0, p.numParams)
	}

	cursor := 0
	for _, pt := range p.parts {
		if !pt.param {
			if !strings.HasPrefix(path[cursor:], pt.text) {
				return nil, false
			}
			cursor += len(pt.text)
			continue
		}

		end := scanSegment(path, cursor)
		matches = append(matches, Match{Name: pt.text, Value: path[cursor:end]})
		cursor = end
	}

	if cursor != len(path) {
		return nil, false
	}
	return matches, true
}

// scanSegment returns the end of the path segment starting at start.
// The scan stops at '/', at any byte that is not a path character, and
// at a '%' that does not begin a complete two-digit escape. Unlike the
// compiler it never fails: a malformed escape just ends the segment,
// which makes the surrounding match attempt fall through to a
// non-match.
func scanSegment(path string, start int) int {
	i := start
	for i < len(path) {
		b := path[i]
		if b == '%' {
			if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
				return i
			}
			i += 3
			continue
		}
		if !isPchar(b) {
			return i
		}
		i++
	}
	return i
}
