package genuine_test

import (
	"io"
	"net/http"
	"syscall"
	"testing"

	"github.com/cactusdualcore/genuine"
	"github.com/cactusdualcore/genuine/consts"
	"github.com/rohanthewiz/assert"
)

func TestSetCookie(t *testing.T) {
	s := genuine.NewServer()

	s.Get("/login", func(ctx genuine.Context) error {
		err := ctx.SetCookie(&http.Cookie{
			Name:     "session",
			Value:    "abc123",
			Path:     "/",
			HttpOnly: true,
		})
		assert.Nil(t, err)
		return ctx.WriteString("ok")
	})

	response := s.Request(consts.MethodGet, "/login", nil, nil)
	assert.Equal(t, response.Status(), 200)

	cookie := response.Header(consts.HeaderSetCookie)
	assert.Contains(t, cookie, "session=abc123")
	assert.Contains(t, cookie, "Path=/")
	assert.Contains(t, cookie, "HttpOnly")
}

func TestSetCookieInvalid(t *testing.T) {
	s := genuine.NewServer()

	s.Get("/", func(ctx genuine.Context) error {
		err := ctx.SetCookie(&http.Cookie{Name: ""})
		assert.True(t, err != nil)
		return ctx.WriteString("ok")
	})

	response := s.Request(consts.MethodGet, "/", nil, nil)
	assert.Equal(t, response.Status(), 200)
	assert.Equal(t, response.Header(consts.HeaderSetCookie), "")
}

func TestGetCookie(t *testing.T) {
	s := genuine.NewServer()

	s.Get("/", func(ctx genuine.Context) error {
		theme, err := ctx.GetCookie("theme")
		assert.Nil(t, err)

		_, err = ctx.GetCookie("missing")
		assert.True(t, err != nil)

		return ctx.WriteString(theme)
	})

	headers := []genuine.Header{{Key: "Cookie", Value: "theme=dark; lang=en"}}
	response := s.Request(consts.MethodGet, "/", headers, nil)
	assert.Equal(t, response.Status(), 200)
	assert.Equal(t, string(response.Body()), "dark")
}

func TestGetCookieNoHeader(t *testing.T) {
	s := genuine.NewServer()

	s.Get("/", func(ctx genuine.Context) error {
		_, err := ctx.GetCookie("any")
		assert.True(t, err != nil)
		return ctx.WriteString("ok")
	})

	response := s.Request(consts.MethodGet, "/", nil, nil)
	assert.Equal(t, response.Status(), 200)
}

func TestRemoveCookie(t *testing.T) {
	s := genuine.NewServer()

	s.Get("/logout", func(ctx genuine.Context) error {
		ctx.RemoveCookie("session")
		return ctx.WriteString("bye")
	})

	response := s.Request(consts.MethodGet, "/logout", nil, nil)
	cookie := response.Header(consts.HeaderSetCookie)
	assert.Contains(t, cookie, "session=")
	assert.Contains(t, cookie, "Max-Age=0")
}

func TestCookieRoundTrip(t *testing.T) {
	ready := make(chan struct{}, 1)
	s := genuine.NewServer(genuine.ServerOptions{Address: "localhost:", ReadyChan: ready})

	s.Get("/login", func(ctx genuine.Context) error {
		if err := ctx.SetCookie(&http.Cookie{Name: "session", Value: "abc123", Path: "/"}); err != nil {
			return err
		}
		if err := ctx.SetCookie(&http.Cookie{Name: "theme", Value: "dark", Path: "/"}); err != nil {
			return err
		}
		return ctx.WriteString("ok")
	})

	s.Get("/me", func(ctx genuine.Context) error {
		session, err := ctx.GetCookie("session")
		if err != nil {
			return err
		}
		return ctx.WriteString(session)
	})

	go func() {
		defer syscall.Kill(syscall.Getpid(), syscall.SIGTERM)

		<-ready
		base := "http://localhost:" + s.GetListenPort()

		response, err := http.Get(base + "/login")
		assert.Nil(t, err)

		cookies := response.Cookies()
		assert.Equal(t, len(cookies), 2)
		assert.Equal(t, cookies[0].Name, "session")
		assert.Equal(t, cookies[0].Value, "abc123")

		request, err := http.NewRequest(consts.MethodGet, base+"/me", nil)
		assert.Nil(t, err)
		for _, cookie := range cookies {
			request.AddCookie(cookie)
		}

		response, err = http.DefaultClient.Do(request)
		assert.Nil(t, err)

		body, err := io.ReadAll(response.Body)
		assert.Nil(t, err)
		assert.Equal(t, string(body), "abc123")
	}()

	assert.Nil(t, s.Run())
}
