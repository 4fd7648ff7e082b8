package rtr

import (
	"strings"
	"testing"

	"github.com/rohanthewiz/assert"
)

func TestConsume(t *testing.T) {
	p := parser{input: "/abc"}

	assert.True(t, p.consume('/'))
	assert.False(t, p.consume('/'))
	assert.True(t, p.consume('a'))
	assert.Equal(t, p.cursor, 2)
}

func TestSkipWhile(t *testing.T) {
	p := parser{input: "abc123"}

	p.skipWhile(isAlpha)
	assert.Equal(t, p.cursor, 3)

	p.skipWhile(isAlpha)
	assert.Equal(t, p.cursor, 3)

	p.skipWhile(isDigit)
	assert.True(t, p.atEnd())
}

func TestCapture(t *testing.T) {
	p := parser{input: "hello/world"}

	p.skipWhile(isAlpha)
	assert.Equal(t, p.capture(), "hello")

	// the anchor moved up, so an immediate second capture is empty
	assert.Equal(t, p.capture(), "")

	p.consume('/')
	p.skipWhile(isAlpha)
	assert.Equal(t, p.capture(), "/world")
}

func TestSegmentStopsAtSlash(t *testing.T) {
	p := parser{input: "abc/def"}

	assert.True(t, p.segment() == nil)
	assert.Equal(t, p.capture(), "abc")
	assert.Equal(t, p.cursor, 3)
}

func TestSegmentValidatesEscapes(t *testing.T) {
	p := parser{input: "a%2Fb"}
	assert.True(t, p.segment() == nil)
	assert.Equal(t, p.capture(), "a%2Fb")

	p = parser{input: "a%2"}
	err := p.segment()
	assert.True(t, err != nil)
	assert.Equal(t, err.Kind, ErrUnexpectedEnd)
	assert.Equal(t, err.Offset, 3)

	p = parser{input: "a%G0"}
	err = p.segment()
	assert.True(t, err != nil)
	assert.Equal(t, err.Kind, ErrExpectedClass)
	assert.Equal(t, err.Class, "a hex digit")
	assert.Equal(t, err.Got, byte('G'))
	assert.Equal(t, err.Offset, 2)
}

func TestParamWhitespace(t *testing.T) {
	for _, input := range []string{"{id}", "{ id }", "{\tid\t}", "{  id}"} {
		p := parser{input: input}
		name, err := p.param()
		assert.True(t, err == nil)
		assert.Equal(t, name, "id")
	}
}

func TestPartsLayout(t *testing.T) {
	parts, err := parse("/a/{id}/b")
	assert.True(t, err == nil)
	assert.DeepEqual(t, parts, []part{
		{text: "/a/"},
		{text: "id", param: true},
		{text: "/b"},
	})

	parts, err = parse("/{id}")
	assert.True(t, err == nil)
	assert.DeepEqual(t, parts, []part{
		{text: "/"},
		{text: "id", param: true},
	})

	parts, err = parse("/")
	assert.True(t, err == nil)
	assert.Equal(t, len(parts), 0)

	// an empty segment merges into the surrounding literal
	parts, err = parse("/a//b")
	assert.True(t, err == nil)
	assert.DeepEqual(t, parts, []part{{text: "/a//b"}})
}

func TestReserialize(t *testing.T) {
	patterns := []string{
		"/",
		"/user",
		"/user/{id}",
		"/a/{x}/b/{y}",
		"/files/%2Fescaped",
		"/with-sub.delims!/and:at@",
	}

	for _, pattern := range patterns {
		parts, err := parse(pattern)
		assert.True(t, err == nil)
		assert.Equal(t, join(parts), pattern)
	}

	// whitespace inside braces is dropped during the parse
	parts, err := parse("/user/{ id }/posts")
	assert.True(t, err == nil)
	assert.Equal(t, join(parts), "/user/{id}/posts")
}

// join rebuilds pattern text from parsed parts.
func join(parts []part) string {
	var sb strings.Builder
	for _, pt := range parts {
		if pt.param {
			sb.WriteString("{" + pt.text + "}")
		} else {
			sb.WriteString(pt.text)
		}
	}
	if sb.Len() == 0 {
		return "/"
	}
	return sb.String()
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		pattern string
		want    ParseError
	}{
		{"", ParseError{Kind: ErrNotAbsolute}},
		{"url/path", ParseError{Kind: ErrNotAbsolute}},
		{"//x", ParseError{Kind: ErrNotAbsolute}},
		{"/x/{1abc}", ParseError{Kind: ErrExpectedClass, Offset: 4, Class: "a letter", Got: '1'}},
		{"/{}", ParseError{Kind: ErrExpectedClass, Offset: 2, Class: "a letter", Got: '}'}},
		{"/{id", ParseError{Kind: ErrUnexpectedEnd, Offset: 4}},
		{"/{id)", ParseError{Kind: ErrExpectedByte, Offset: 4, Want: '}', Got: ')'}},
		{"/a%2", ParseError{Kind: ErrUnexpectedEnd, Offset: 4}},
		{"/a%G0", ParseError{Kind: ErrExpectedClass, Offset: 3, Class: "a hex digit", Got: 'G'}},
		{"/a b", ParseError{Kind: ErrExpectedByte, Offset: 2, Want: '/', Got: ' '}},
		{"/a{b}", ParseError{Kind: ErrExpectedByte, Offset: 2, Want: '/', Got: '{'}},
		{"/{a}{b}", ParseError{Kind: ErrExpectedByte, Offset: 4, Want: '/', Got: '{'}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			parts, err := parse(tt.pattern)
			assert.Equal(t, len(parts), 0)
			assert.True(t, err != nil)
			assert.DeepEqual(t, *err, tt.want)
		})
	}
}

func TestParseErrorMessages(t *testing.T) {
	_, err := parse("/a b")
	assert.Equal(t, err.Error(), `expected '/' but found ' ' at offset 2`)

	_, err = parse("/x/{1abc}")
	assert.Equal(t, err.Error(), `expected a letter but found '1' at offset 4`)

	_, err = parse("/{id")
	assert.Equal(t, err.Error(), "unexpected end of input at offset 4")

	_, err = parse("no-slash")
	assert.Equal(t, err.Error(), "path patterns must begin with a single '/'")
}
