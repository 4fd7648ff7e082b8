package genuine

import (
	"io"
	"strings"
)

// Response is the interface for an HTTP response.
type Response interface {
	io.Writer
	io.StringWriter
	Body() []byte
	Header(string) string
	SetHeader(key string, value string)
	SetBody([]byte)
	SetStatus(int)
	Status() int
}

// response represents the HTTP response used in the given context.
type response struct {
	body    []byte
	headers []Header
	status  uint16
}

// Body returns the response body.
func (res *response) Body() []byte {
	return res.body
}

// Header returns the value of the given header, matching the key
// case-insensitively. It returns "" when the header is not set.
func (res *response) Header(key string) string {
	for _, header := range res.headers {
		if strings.EqualFold(header.Key, key) {
			return header.Value
		}
	}

	return ""
}

// SetHeader sets the header value for the given key, overwriting any
// existing value under a case-insensitively equal key.
func (res *response) SetHeader(key string, value string) {
	for i, header := range res.headers {
		if strings.EqualFold(header.Key, key) {
			res.headers[i].Value = value
			return
		}
	}

	res.headers = append(res.headers, Header{Key: key, Value: value})
}

// SetBody replaces the response body with the new contents.
func (res *response) SetBody(body []byte) {
	res.body = body
}

// SetStatus sets the HTTP status code.
func (res *response) SetStatus(status int) {
	res.status = uint16(status)
}

// Status returns the HTTP status code.
func (res *response) Status() int {
	return int(res.status)
}

// Write implements the io.Writer interface.
func (res *response) Write(body []byte) (int, error) {
	res.body = append(res.body, body...)
	return len(body), nil
}

// WriteString implements the io.StringWriter interface.
func (res *response) WriteString(body string) (int, error) {
	res.body = append(res.body, body...)
	return len(body), nil
}

// reset prepares the response for reuse on the next request of the
// same connection. Backing arrays are kept to avoid reallocation.
func (res *response) reset() {
	res.body = res.body[:0]
	res.headers = res.headers[:0]
	res.status = 200
}
