package rtr

import "fmt"

// route pairs a compiled pattern with its handler.
type route[T any] struct {
	pattern *Pattern
	handler T
}

// Router maps HTTP methods and path patterns to handlers. Each method
// keeps its routes in registration order and lookups try them in that
// order, so when several patterns match a path the first one registered
// wins.
type Router[T any] struct {
	get     []route[T]
	post    []route[T]
	delete  []route[T]
	put     []route[T]
	patch   []route[T]
	head    []route[T]
	connect []route[T]
	trace   []route[T]
	options []route[T]
}

// New creates a new router with an empty route table for every HTTP method.
func New[T any]() *Router[T] {
	return &Router[T]{}
}

// Add compiles the pattern and registers the handler for the given
// method. Registering the same pattern twice is not an error; the
// earlier registration keeps winning lookups.
func (router *Router[T]) Add(method string, pattern string, handler T) error {
	routes := router.selectRoutes(method)
	if routes == nil {
		return fmt.Errorf("unknown HTTP method %q", method)
	}

	p, err := Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid route pattern %q: %w", pattern, err)
	}

	*routes = append(*routes, route[T]{pattern: p, handler: handler})
	return nil
}

// Lookup finds the handler and captured parameters for the given route.
// It returns the zero handler and nil parameters when nothing matches.
func (router *Router[T]) Lookup(method string, path string) (T, []Match) {
	if method[0] == 'G' {
		return lookupIn(router.get, path)
	}

	routes := router.selectRoutes(method)
	if routes == nil {
		var zero T
		return zero, nil
	}
	return lookupIn(*routes, path)
}

func lookupIn[T any](routes []route[T], path string) (T, []Match) {
	for _, r := range routes {
		if matches, ok := r.pattern.Match(path); ok {
			return r.handler, matches
		}
	}

	var zero T
	return zero, nil
}

// ListRoutes returns every registered route grouped by method, each
// method's routes in registration order.
func (router *Router[T]) ListRoutes() []RouteList {
	var list []RouteList
	list = appendRoutes(list, "GET", router.get)
	list = appendRoutes(list, "POST", router.post)
	list = appendRoutes(list, "DELETE", router.delete)
	list = appendRoutes(list, "PUT", router.put)
	list = appendRoutes(list, "PATCH", router.patch)
	list = appendRoutes(list, "HEAD", router.head)
	list = appendRoutes(list, "CONNECT", router.connect)
	list = appendRoutes(list, "TRACE", router.trace)
	list = appendRoutes(list, "OPTIONS", router.options)
	return list
}

func appendRoutes[T any](list []RouteList, method string, routes []route[T]) []RouteList {
	for _, r := range routes {
		list = append(list, RouteList{
			Method:     method,
			Path:       r.pattern.String(),
			HandlerRef: fmt.Sprintf("%v", r.handler),
		})
	}
	return list
}

// selectRoutes returns the route table for the given HTTP method.
func (router *Router[T]) selectRoutes(method string) *[]route[T] {
	switch method {
	case "GET":
		return &router.get
	case "POST":
		return &router.post
	case "DELETE":
		return &router.delete
	case "PUT":
		return &router.put
	case "PATCH":
		return &router.patch
	case "HEAD":
		return &router.head
	case "CONNECT":
		return &router.connect
	case "TRACE":
		return &router.trace
	case "OPTIONS":
		return &router.options
	default:
		return nil
	}
}
