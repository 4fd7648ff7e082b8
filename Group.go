package genuine

import (
	"path"

	"github.com/cactusdualcore/genuine/consts"
)

// Group represents a route group with a common prefix and middleware.
// Routes registered on the group live under the prefix (e.g. /api/v1),
// and the group's middleware runs only for those routes. Groups nest.
type Group struct {
	// prefix is the URL path prefix for all routes in this group
	prefix string
	// server is the server the group registers its routes on
	server *Server
	// handlers are middleware applied to every route in this group
	handlers []Handler
}

// Group creates a route group rooted at prefix with optional middleware.
func (s *Server) Group(prefix string, handlers ...Handler) *Group {
	return &Group{
		prefix:   prefix,
		server:   s,
		handlers: handlers,
	}
}

// Group creates a sub-group with an additional prefix and optional middleware.
// The new group inherits all middleware from the parent group and can add its own.
// Example: apiGroup.Group("/users", authMiddleware) creates /api/users with auth.
func (g *Group) Group(prefix string, handlers ...Handler) *Group {
	return &Group{
		prefix:   path.Join(g.prefix, prefix),
		server:   g.server,
		handlers: append(g.handlers, handlers...),
	}
}

// Use adds middleware to the group, affecting all routes registered
// after this call. Middleware executes in the order it was added.
func (g *Group) Use(handlers ...Handler) {
	g.handlers = append(g.handlers, handlers...)
}

// Get registers a GET route with the group prefix
func (g *Group) Get(path string, handler Handler) {
	g.addRoute(consts.MethodGet, path, handler)
}

// Post registers a POST route with the group prefix
func (g *Group) Post(path string, handler Handler) {
	g.addRoute(consts.MethodPost, path, handler)
}

// Put registers a PUT route with the group prefix
func (g *Group) Put(path string, handler Handler) {
	g.addRoute(consts.MethodPut, path, handler)
}

// Patch registers a PATCH route with the group prefix
func (g *Group) Patch(path string, handler Handler) {
	g.addRoute(consts.MethodPatch, path, handler)
}

// Delete registers a DELETE route with the group prefix
func (g *Group) Delete(path string, handler Handler) {
	g.addRoute(consts.MethodDelete, path, handler)
}

// Head registers a HEAD route with the group prefix
func (g *Group) Head(path string, handler Handler) {
	g.addRoute(consts.MethodHead, path, handler)
}

// Options registers an OPTIONS route with the group prefix
func (g *Group) Options(path string, handler Handler) {
	g.addRoute(consts.MethodOptions, path, handler)
}

// Connect registers a CONNECT route with the group prefix
func (g *Group) Connect(path string, handler Handler) {
	g.addRoute(consts.MethodConnect, path, handler)
}

// Trace registers a TRACE route with the group prefix
func (g *Group) Trace(path string, handler Handler) {
	g.addRoute(consts.MethodTrace, path, handler)
}

// addRoute joins the group prefix with the route path and registers the
// handler wrapped in the group's middleware chain.
func (g *Group) addRoute(method, routePath string, handler Handler) {
	fullPath := path.Join("/", g.prefix, routePath)

	// Build the middleware chain with the route handler as the final handler
	finalHandler := handler

	// Wrap handlers in reverse order so they execute in the order they
	// were added. As in the server chain, a middleware continues only by
	// calling Next(); returning without it short-circuits the route.
	for i := len(g.handlers) - 1; i >= 0; i-- {
		middleware := g.handlers[i]
		nextHandler := finalHandler

		finalHandler = func(ctx Context) error {
			wrapper := &contextWrapper{
				Context: ctx,
				next:    func() error { return nextHandler(ctx) },
			}
			return middleware(wrapper)
		}
	}

	g.server.AddMethod(method, fullPath, finalHandler)
}

// contextWrapper wraps a Context to intercept Next() calls, so group
// middleware advances its own chain instead of the server's.
type contextWrapper struct {
	Context
	next func() error
}

// Next overrides the embedded Context's Next method.
func (w *contextWrapper) Next() error {
	return w.next()
}
