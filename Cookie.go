package genuine

import (
	"net/http"

	"github.com/cactusdualcore/genuine/consts"
	"github.com/rohanthewiz/serr"
)

// SetCookie adds a Set-Cookie header for the given cookie. The cookie
// is validated first so malformed names or values never reach the wire.
// Existing Set-Cookie headers are kept, allowing several cookies on one
// response.
func (ctx *context) SetCookie(cookie *http.Cookie) error {
	if err := cookie.Valid(); err != nil {
		return serr.Wrap(err, "invalid cookie")
	}

	ctx.response.headers = append(ctx.response.headers,
		Header{Key: consts.HeaderSetCookie, Value: cookie.String()})
	return nil
}

// GetCookie returns the value of the named cookie from the request's
// Cookie header.
func (ctx *context) GetCookie(name string) (string, error) {
	line := ctx.request.Header(consts.HeaderCookie)
	if line == "" {
		return "", serr.New("request has no cookies")
	}

	cookies, err := http.ParseCookie(line)
	if err != nil {
		return "", serr.Wrap(err, "malformed Cookie header")
	}

	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value, nil
		}
	}

	return "", serr.New("no cookie named " + name)
}

// RemoveCookie tells the client to drop the named cookie by sending an
// already expired replacement.
func (ctx *context) RemoveCookie(name string) {
	expired := &http.Cookie{Name: name, Path: "/", MaxAge: -1}
	ctx.response.headers = append(ctx.response.headers,
		Header{Key: consts.HeaderSetCookie, Value: expired.String()})
}
