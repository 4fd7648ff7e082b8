package genuine

import (
	"bufio"
	"strings"

	"github.com/cactusdualcore/genuine/consts"
	"github.com/cactusdualcore/genuine/core/rtr"
)

// Request is the interface for an incoming HTTP request.
type Request interface {
	Body() []byte
	Header(string) string
	Host() string
	Method() string
	Path() string
	Query() string
	Scheme() string
	Param(string) string
	UserAgent() string
}

// request represents the HTTP request used in the given context.
type request struct {
	reader *bufio.Reader

	scheme string
	host   string
	method string
	path   string
	query  string

	headers []Header
	body    []byte
	params  []rtr.Match
}

// Body returns the request body, nil when the request had none.
func (req *request) Body() []byte {
	return req.body
}

// Header returns the value of the given header, matching the key
// case-insensitively as header names arrive from the wire in any casing.
func (req *request) Header(key string) string {
	for _, header := range req.headers {
		if strings.EqualFold(header.Key, key) {
			return header.Value
		}
	}

	return ""
}

// Host returns the requested host.
func (req *request) Host() string {
	return req.host
}

// Method returns the request method.
func (req *request) Method() string {
	return req.method
}

// Param returns the value captured for the named route parameter,
// or "" if the matched route has no such parameter.
func (req *request) Param(name string) string {
	for i := range len(req.params) {
		p := req.params[i]

		if p.Name == name {
			return p.Value
		}
	}

	return ""
}

// Path returns the requested path.
func (req *request) Path() string {
	return req.path
}

// Query returns the raw query string, without the leading '?'.
func (req *request) Query() string {
	return req.query
}

// Scheme returns either `http`, `https` or an empty string.
func (req *request) Scheme() string {
	return req.scheme
}

// UserAgent returns the value of the User-Agent header.
func (req *request) UserAgent() string {
	return req.Header(consts.HeaderUserAgent)
}

// reset prepares the request for reuse on the next request of the
// same connection.
func (req *request) reset() {
	req.headers = req.headers[:0]
	req.body = req.body[:0]
	req.params = nil
	req.query = ""
}
