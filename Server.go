package genuine

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/cactusdualcore/genuine/consts"
	"github.com/cactusdualcore/genuine/core/rtr"
	"github.com/rohanthewiz/serr"
)

// Handler is the signature of route handlers and middleware.
type Handler func(ctx Context) error

// defaultMaxBodyBytes caps request bodies when ServerOptions.MaxBodyBytes is unset.
const defaultMaxBodyBytes = 64 * 1024

// ServerOptions configures a server at construction time.
type ServerOptions struct {
	// Address is the TCP address to listen on, e.g. "localhost:8080".
	// An explicit address passed to Run takes precedence.
	Address string

	// Verbose logs each request line and startup information.
	Verbose bool

	// Debug additionally dumps the route table on startup.
	Debug bool

	// ReadyChan is signalled once the server is about to enter its accept
	// loop. It should be a buffered chan (cap 1 is all that is needed),
	// so the server will not hang.
	ReadyChan chan struct{}

	// MaxBodyBytes caps the accepted request body size; larger requests
	// are refused with 413. Defaults to 64 KiB.
	MaxBodyBytes int64

	// KeepTrailingSlashes disables trailing slash normalization, making
	// "/a/" a distinct path from "/a".
	KeepTrailingSlashes bool
}

// Server is the HTTP Server.
type Server struct {
	options      ServerOptions
	handlers     []Handler
	contextPool  sync.Pool
	router       *rtr.Router[Handler]
	listener     net.Listener
	errorHandler func(Context, error)
}

// NewServer creates a new HTTP server.
func NewServer(options ...ServerOptions) *Server {
	router := rtr.New[Handler]()

	s := &Server{
		router: router,
		handlers: []Handler{
			func(c Context) error { // default handler - route and dispatch
				ctx := c.(*context)

				hdlr, params := router.Lookup(ctx.request.method, ctx.request.path)
				if hdlr == nil {
					ctx.SetStatus(consts.StatusNotFound)
					ctx.response.body = append(ctx.response.body, "Not Found"...)
					return nil
				}

				ctx.request.params = params
				return hdlr(c)
			},
		},
		errorHandler: func(ctx Context, err error) {
			log.Println(ctx.Request().Path(), err)
		},
	}

	if len(options) > 0 {
		s.options = options[0]
	}
	if s.options.MaxBodyBytes <= 0 {
		s.options.MaxBodyBytes = defaultMaxBodyBytes
	}

	s.contextPool.New = func() any { return s.newContext() }
	return s
}

// Get registers your function to be called when the given GET path has been requested.
func (s *Server) Get(path string, handler Handler) {
	s.AddMethod(consts.MethodGet, path, handler)
}

// Post registers your function to be called when the given POST path has been requested.
func (s *Server) Post(path string, handler Handler) {
	s.AddMethod(consts.MethodPost, path, handler)
}

// Put registers your function to be called when the given PUT path has been requested.
func (s *Server) Put(path string, handler Handler) {
	s.AddMethod(consts.MethodPut, path, handler)
}

// Patch registers your function to be called when the given PATCH path has been requested.
func (s *Server) Patch(path string, handler Handler) {
	s.AddMethod(consts.MethodPatch, path, handler)
}

// Delete registers your function to be called when the given DELETE path has been requested.
func (s *Server) Delete(path string, handler Handler) {
	s.AddMethod(consts.MethodDelete, path, handler)
}

// Head registers your function to be called when the given HEAD path has been requested.
func (s *Server) Head(path string, handler Handler) {
	s.AddMethod(consts.MethodHead, path, handler)
}

// Options registers your function to be called when the given OPTIONS path has been requested.
func (s *Server) Options(path string, handler Handler) {
	s.AddMethod(consts.MethodOptions, path, handler)
}

// Connect registers your function to be called when the given CONNECT path has been requested.
func (s *Server) Connect(path string, handler Handler) {
	s.AddMethod(consts.MethodConnect, path, handler)
}

// Trace registers your function to be called when the given TRACE path has been requested.
func (s *Server) Trace(path string, handler Handler) {
	s.AddMethod(consts.MethodTrace, path, handler)
}

// AddMethod registers a handler for the given HTTP method and path
// pattern. Routes are registered at startup from constant strings, so
// an invalid method or pattern is a programming error and panics.
func (s *Server) AddMethod(method string, path string, handler Handler) {
	if err := s.router.Add(method, path, handler); err != nil {
		panic(serr.Wrap(err, "failed to register route"))
	}
}

// ListRoutes returns the registered routes grouped by method.
func (s *Server) ListRoutes() []rtr.RouteList {
	return s.router.ListRoutes()
}

// Use adds handlers to your handlers chain.
func (s *Server) Use(handlers ...Handler) {
	last := s.handlers[len(s.handlers)-1]
	// Re-slice to exclude last and append the incoming handlers
	s.handlers = append(s.handlers[:len(s.handlers)-1], handlers...)
	s.handlers = append(s.handlers, last) // add back the last
}

// Request performs a synthetic request and returns the response.
// This function keeps the response in memory so it's slightly slower than a real request.
// However it is very useful inside tests where you don't want to spin up a real web server.
func (s *Server) Request(method string, url string, headers []Header, body io.Reader) Response {
	ctx := s.newContext()
	ctx.request.headers = headers

	if body != nil {
		data, err := io.ReadAll(body)
		if err == nil {
			ctx.request.body = data
		}
	}

	s.handleRequest(ctx, method, url, io.Discard)
	return ctx.Response()
}

// Run starts the server. An address argument overrides the configured
// ServerOptions.Address; with neither set the server listens on ":8080".
// Run blocks until the process receives an interrupt or SIGTERM.
func (s *Server) Run(address ...string) error {
	addr := s.options.Address
	if len(address) > 0 && address[0] != "" {
		addr = address[0]
	}
	if addr == "" {
		addr = ":8080"
	}

	listener, err := net.Listen(consts.ProtocolTCP, addr)
	if err != nil {
		return serr.Wrap(err, "failed to listen on "+addr)
	}

	s.listener = listener
	defer listener.Close()

	go func() {
		if s.options.ReadyChan != nil {
			if cap(s.options.ReadyChan) < 1 && s.options.Verbose {
				fmt.Println("ReadyChan capacity should be at least 1, or we may hang")
			}
			s.options.ReadyChan <- struct{}{} // Let the caller know we are running
		}

		if s.options.Verbose {
			fmt.Printf("Server is running at %s\n", listener.Addr())
		}

		if s.options.Debug {
			for _, route := range s.router.ListRoutes() {
				log.Printf("%-7s %s", route.Method, route.Path)
			}
		}

		for {
			conn, err := listener.Accept()
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return
				}
				continue
			}

			go s.handleConnection(conn)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)
	<-stop
	return nil
}

// GetListenPort returns the port the server is listening on as a string.
// Useful when the server was started on port ":0" (next available port).
func (s *Server) GetListenPort() string {
	if s.listener == nil {
		return ""
	}

	_, port, err := net.SplitHostPort(s.listener.Addr().String())
	if err != nil {
		return ""
	}
	return port
}

// handleConnection handles an accepted connection.
func (s *Server) handleConnection(conn net.Conn) {
	var (
		ctx    = s.contextPool.Get().(*context)
		method string
		url    string
	)

	ctx.reader.Reset(conn)

	defer conn.Close()
	defer func() {
		// An aborted request may leave partial state behind, so reset
		// before the context goes back into the pool.
		ctx.reset()
		s.contextPool.Put(ctx)
	}()

	for {
		// Read the HTTP request line
		message, err := ctx.reader.ReadString(consts.RuneNewLine)
		if err != nil {
			return
		}

		space := strings.IndexByte(message, consts.RuneSingleSpace)
		if space <= 0 {
			_, _ = io.WriteString(conn, consts.HTTPBadRequest)
			return
		}

		method = message[:space]

		if !isValidRequestMethod(method) {
			_, _ = io.WriteString(conn, consts.HTTPBadRequest)
			return
		}

		lastSpace := strings.LastIndexByte(message, consts.RuneSingleSpace)
		if lastSpace == space {
			lastSpace = len(message) - len(consts.CRLF)
		}

		url = message[space+1 : lastSpace]

		var contentLen int64
		var isChunked bool

		// Add headers until we meet an empty line
		for {
			message, err = ctx.reader.ReadString(consts.RuneNewLine)
			if err != nil {
				return
			}

			if message == consts.CRLF { // "empty" line - end of headers
				break
			}

			colon := strings.IndexByte(message, consts.RuneColon)
			if colon <= 0 {
				continue // header should include a colon
			}

			key := message[:colon]
			value := strings.TrimSpace(message[colon+1:])

			ctx.request.headers = append(ctx.request.headers, Header{
				Key:   key,
				Value: value,
			})

			// Check for Content-Length and Transfer-Encoding headers
			if strings.EqualFold(key, consts.HeaderContentLength) {
				contentLen, err = strconv.ParseInt(value, 10, 64)
				if err != nil {
					_, _ = io.WriteString(conn, consts.HTTPBadRequest)
					return
				}
			} else if strings.EqualFold(key, consts.HeaderTransferEncoding) && strings.Contains(strings.ToLower(value), "chunked") {
				isChunked = true
			}
		}

		// Read the request body if present
		if contentLen > 0 {
			if contentLen > s.options.MaxBodyBytes {
				_, _ = io.WriteString(conn, consts.HTTPEntityTooLarge)
				return
			}

			// Fixed-length body
			body := make([]byte, contentLen)
			_, err = io.ReadFull(ctx.reader, body)
			if err != nil {
				return
			}
			ctx.request.body = append(ctx.request.body, body...)

		} else if isChunked {
			// Chunked encoding
			for {
				// Chunk size is a hex number on its own line
				chunkSize, err := ctx.reader.ReadString(consts.RuneNewLine)
				if err != nil {
					return
				}

				size, err := strconv.ParseInt(strings.TrimSpace(chunkSize), 16, 64)
				if err != nil {
					_, _ = io.WriteString(conn, consts.HTTPBadRequest)
					return
				}

				// Zero size chunk means end of body
				if size == 0 {
					// Read final CRLF
					_, err = ctx.reader.ReadString(consts.RuneNewLine)
					if err != nil {
						return
					}
					break
				}

				if int64(len(ctx.request.body))+size > s.options.MaxBodyBytes {
					_, _ = io.WriteString(conn, consts.HTTPEntityTooLarge)
					return
				}

				// Read chunk data
				chunk := make([]byte, size)
				_, err = io.ReadFull(ctx.reader, chunk)
				if err != nil {
					return
				}
				ctx.request.body = append(ctx.request.body, chunk...)

				// Read chunk CRLF
				_, err = ctx.reader.ReadString(consts.RuneNewLine)
				if err != nil {
					return
				}
			}
		}

		if s.options.Verbose {
			log.Printf("%s %s", method, url)
		}

		// Handle the request
		s.handleRequest(ctx, method, url, conn)

		// Clean up the context for the next request on this connection
		ctx.reset()
	}
}

// handleRequest handles the given request.
func (s *Server) handleRequest(ctx *context, method string, url string, writer io.Writer) {
	ctx.method = method
	ctx.scheme, ctx.host, ctx.path, ctx.query = parseURL(url, s.options.KeepTrailingSlashes)

	// Call the request handler chain
	err := s.handlers[0](ctx)
	if err != nil {
		s.errorHandler(ctx, err)
		ctx.SetStatus(consts.StatusInternalServerError)
		ctx.response.body = append(ctx.response.body[:0], "Internal Server Error"...)
	}

	status := ctx.response.Status()

	tmp := bytes.Buffer{}
	tmp.WriteString(consts.HTTP1)
	tmp.WriteString(" ")
	tmp.WriteString(strconv.Itoa(status))
	if text := http.StatusText(status); text != "" {
		tmp.WriteString(" ")
		tmp.WriteString(text)
	}
	tmp.WriteString("\r\nContent-Length: ")
	tmp.WriteString(strconv.Itoa(len(ctx.response.body)))
	tmp.WriteString(consts.CRLF)

	for _, header := range ctx.response.headers {
		tmp.WriteString(header.Key)
		tmp.WriteString(": ")
		tmp.WriteString(header.Value)
		tmp.WriteString(consts.CRLF)
	}

	tmp.WriteString(consts.CRLF)
	tmp.Write(ctx.response.body)
	_, _ = writer.Write(tmp.Bytes())
}

// newContext allocates a new context with the default state.
func (s *Server) newContext() *context {
	return &context{
		server: s,
		request: request{
			reader:  bufio.NewReader(nil),
			body:    make([]byte, 0),
			headers: make([]Header, 0, 8),
		},
		response: response{
			body:    make([]byte, 0, 1024),
			headers: make([]Header, 0, 8),
			status:  200,
		},
	}
}
