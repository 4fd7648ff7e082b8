package rtr

import "fmt"

// ErrKind discriminates the ways a route pattern can fail to compile.
type ErrKind uint8

const (
	// ErrNotAbsolute means the pattern did not begin with a single '/'.
	ErrNotAbsolute ErrKind = iota
	// ErrExpectedByte means one specific byte was required and something else was found.
	ErrExpectedByte
	// ErrExpectedClass means a byte from a named class was required and something else was found.
	ErrExpectedClass
	// ErrUnexpectedEnd means the pattern ended while more input was required.
	ErrUnexpectedEnd
)

// ParseError reports why a route pattern failed to compile.
// Offset is the 0-based byte position within the original pattern.
//
// Example:
//
//	Pattern: /posts/{1st}
//	Error:   expected a letter but found '1' at offset 8
type ParseError struct {
	Kind   ErrKind
	Offset int
	Want   byte   // the required byte when Kind is ErrExpectedByte
	Class  string // the required byte class when Kind is ErrExpectedClass
	Got    byte   // the byte actually found, unset when the input ended early
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrExpectedByte:
		return fmt.Sprintf("expected %q but found %q at offset %d", e.Want, e.Got, e.Offset)
	case ErrExpectedClass:
		return fmt.Sprintf("expected %s but found %q at offset %d", e.Class, e.Got, e.Offset)
	case ErrUnexpectedEnd:
		return fmt.Sprintf("unexpected end of input at offset %d", e.Offset)
	default:
		return "path patterns must begin with a single '/'"
	}
}

// Byte class names used in ErrExpectedClass errors.
const (
	classLetter   = "a letter"
	classHexDigit = "a hex digit"
)

// parser is a cursor over the bytes of one pattern. cursor is the next
// unread byte; anchor marks where the pending capture began.
type parser struct {
	input  string
	anchor int
	cursor int
}

func (p *parser) atEnd() bool {
	return p.cursor >= len(p.input)
}

// peek returns the next byte without consuming it.
func (p *parser) peek() (byte, bool) {
	if p.atEnd() {
		return 0, false
	}
	return p.input[p.cursor], true
}

// consume advances past the next byte if it equals b.
func (p *parser) consume(b byte) bool {
	if p.atEnd() || p.input[p.cursor] != b {
		return false
	}
	p.cursor++
	return true
}

// expect consumes the next byte, which must equal b.
func (p *parser) expect(b byte) *ParseError {
	got, ok := p.peek()
	if !ok {
		return &ParseError{Kind: ErrUnexpectedEnd, Offset: p.cursor}
	}
	if got != b {
		return &ParseError{Kind: ErrExpectedByte, Offset: p.cursor, Want: b, Got: got}
	}
	p.cursor++
	return nil
}

// expectClass consumes the next byte, which must satisfy pred.
// class names the byte class in the resulting error.
func (p *parser) expectClass(class string, pred func(byte) bool) *ParseError {
	got, ok := p.peek()
	if !ok {
		return &ParseError{Kind: ErrUnexpectedEnd, Offset: p.cursor}
	}
	if !pred(got) {
		return &ParseError{Kind: ErrExpectedClass, Offset: p.cursor, Class: class, Got: got}
	}
	p.cursor++
	return nil
}

// capture returns everything between the anchor and the cursor and
// moves the anchor up to the cursor.
func (p *parser) capture() string {
	s := p.input[p.anchor:p.cursor]
	p.anchor = p.cursor
	return s
}

// skip discards everything between the anchor and the cursor.
func (p *parser) skip() {
	p.anchor = p.cursor
}

// skipWhile advances the cursor past every leading byte satisfying pred.
func (p *parser) skipWhile(pred func(byte) bool) {
	for !p.atEnd() && pred(p.input[p.cursor]) {
		p.cursor++
	}
}

// segment consumes the longest run of raw path characters and percent
// escapes. It stops without failing at the first byte that cannot extend
// the segment. A '%' commits to a full escape, so anything short of two
// hex digits is a hard error.
func (p *parser) segment() *ParseError {
	for {
		b, ok := p.peek()
		if !ok {
			return nil
		}
		switch {
		case b == '%':
			p.cursor++
			if err := p.expectClass(classHexDigit, isHexDigit); err != nil {
				return err
			}
			if err := p.expectClass(classHexDigit, isHexDigit); err != nil {
				return err
			}
		case isPchar(b):
			p.cursor++
		default:
			return nil
		}
	}
}

// param consumes a "{name}" placeholder and returns the name.
// Whitespace inside the braces is allowed and dropped, so "{ id }"
// declares the same parameter as "{id}". Names start with a letter
// followed by letters or digits.
func (p *parser) param() (string, *ParseError) {
	if err := p.expect('{'); err != nil {
		return "", err
	}
	p.skipWhile(isSpaceOrTab)
	p.skip()

	if err := p.expectClass(classLetter, isAlpha); err != nil {
		return "", err
	}
	p.skipWhile(isAlphaNum)
	name := p.capture()

	p.skipWhile(isSpaceOrTab)
	if err := p.expect('}'); err != nil {
		return "", err
	}
	return name, nil
}

// parse splits a route pattern into literal and parameter parts.
// Adjacent literal bytes, including the slashes between them, collapse
// into a single part, so "/a/{id}/b" yields three parts and "/a/b"
// yields one. The root pattern "/" yields no parts at all.
func parse(pattern string) ([]part, *ParseError) {
	if len(pattern) == 0 || pattern[0] != '/' {
		return nil, &ParseError{Kind: ErrNotAbsolute}
	}
	if len(pattern) > 1 && pattern[1] == '/' {
		return nil, &ParseError{Kind: ErrNotAbsolute}
	}
	if pattern == "/" {
		return nil, nil
	}

	p := parser{input: pattern}
	var parts []part

	for p.consume('/') {
		b, ok := p.peek()
		if !ok {
			break
		}
		if b == '{' {
			if lit := p.capture(); lit != "" {
				parts = append(parts, part{text: lit})
			}
			name, err := p.param()
			if err != nil {
				return nil, err
			}
			parts = append(parts, part{text: name, param: true})
			p.skip()
			continue
		}
		if err := p.segment(); err != nil {
			return nil, err
		}
	}

	// The segment loop only stops on '/' or a byte no rule accepts.
	if !p.atEnd() {
		return nil, &ParseError{Kind: ErrExpectedByte, Offset: p.cursor, Want: '/', Got: p.input[p.cursor]}
	}
	if lit := p.capture(); lit != "" {
		parts = append(parts, part{text: lit})
	}
	return parts, nil
}

func isAlpha(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func isHexDigit(b byte) bool {
	return isDigit(b) || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
}

// isPchar reports whether b may appear raw inside a path segment. This
// is the pchar rule of RFC 3986 minus the escape introducer '%'.
func isPchar(b byte) bool {
	switch b {
	case '-', '.', '_', '~', // unreserved
		'!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=', // sub-delims
		':', '@':
		return true
	}
	return isAlphaNum(b)
}

func isSpaceOrTab(b byte) bool {
	return b == ' ' || b == '\t'
}
