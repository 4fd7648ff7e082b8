package genuine

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cactusdualcore/genuine/consts"
	"github.com/rohanthewiz/serr"
)

// Context is the interface for a request and its response.
type Context interface {
	Bytes([]byte) error
	Error(...any) error
	Next() error
	Redirect(int, string) error
	Request() Request
	Response() Response
	Status(int) Context
	WriteString(string) error
	WriteText(string) error
	WriteHTML(string) error
	WriteJSON(any) error
	SetCookie(cookie *http.Cookie) error
	GetCookie(name string) (string, error)
	RemoveCookie(name string)
	Set(key string, value any)
	Get(key string) any
	Has(key string) bool
	Delete(key string)
	Clean()
	UserAgent() string
}

// context contains the request and response data.
type context struct {
	request
	response
	server       *Server
	data         map[string]any
	handlerCount uint8
}

// Bytes adds the raw byte slice to the response body.
func (ctx *context) Bytes(body []byte) error {
	ctx.response.body = append(ctx.response.body, body...)
	return nil
}

// Error folds the given messages into a single error chain, oldest
// message innermost. Values that are neither errors nor strings are
// formatted with %v. Handlers can return the result directly.
func (ctx *context) Error(messages ...any) error {
	var err error

	for _, msg := range messages {
		switch m := msg.(type) {
		case error:
			if err == nil {
				err = m
			} else {
				err = serr.Wrap(err, m.Error())
			}
		case string:
			if err == nil {
				err = serr.New(m)
			} else {
				err = serr.Wrap(err, m)
			}
		default:
			text := fmt.Sprintf("%v", m)
			if err == nil {
				err = serr.New(text)
			} else {
				err = serr.Wrap(err, text)
			}
		}
	}

	return err
}

// Next executes the next handler in the middleware chain.
func (ctx *context) Next() error {
	ctx.handlerCount++
	return ctx.server.handlers[ctx.handlerCount](ctx)
}

// Redirect redirects the client to a different location
// with the specified status code.
func (ctx *context) Redirect(status int, location string) error {
	ctx.response.SetStatus(status)
	ctx.response.SetHeader(consts.HeaderLocation, location)
	return nil
}

// Request returns the HTTP request.
func (ctx *context) Request() Request {
	return &ctx.request
}

// Response returns the HTTP response.
func (ctx *context) Response() Response {
	return &ctx.response
}

// Status sets the HTTP status of the response
// and returns the context for method chaining.
func (ctx *context) Status(status int) Context {
	ctx.response.SetStatus(status)
	return ctx
}

// WriteString adds the given string to the response body.
func (ctx *context) WriteString(body string) error {
	_, err := ctx.response.WriteString(body)
	return err
}

// WriteText writes the string to the response body as plain text.
func (ctx *context) WriteText(body string) error {
	ctx.response.SetHeader(consts.HeaderContentType, consts.MIMETextPlain)
	return ctx.WriteString(body)
}

// WriteHTML writes the string to the response body as HTML.
func (ctx *context) WriteHTML(body string) error {
	ctx.response.SetHeader(consts.HeaderContentType, consts.MIMEHTML)
	return ctx.WriteString(body)
}

// WriteJSON encodes the given object as JSON into the response body.
func (ctx *context) WriteJSON(object any) error {
	ctx.response.SetHeader(consts.HeaderContentType, consts.MIMEJSON)

	err := json.NewEncoder(&ctx.response).Encode(object)
	if err != nil {
		return serr.Wrap(err, "failed to encode object to JSON")
	}
	return nil
}

// Set stores a value on the context for the lifetime of the request.
// Middleware uses this to pass data to downstream handlers.
func (ctx *context) Set(key string, value any) {
	if ctx.data == nil {
		ctx.data = make(map[string]any, 8)
	}
	ctx.data[key] = value
}

// Get returns the value stored under key, or nil when absent.
func (ctx *context) Get(key string) any {
	if ctx.data == nil {
		return nil
	}
	return ctx.data[key]
}

// Has reports whether a value is stored under key.
func (ctx *context) Has(key string) bool {
	if ctx.data == nil {
		return false
	}
	_, ok := ctx.data[key]
	return ok
}

// Delete removes the value stored under key.
func (ctx *context) Delete(key string) {
	if ctx.data == nil {
		return
	}
	delete(ctx.data, key)
}

// Clean removes all values stored on the context.
func (ctx *context) Clean() {
	clear(ctx.data)
}

// reset prepares the context for the next request on the same
// connection.
func (ctx *context) reset() {
	ctx.request.reset()
	ctx.response.reset()
	ctx.handlerCount = 0
	ctx.Clean()
}
