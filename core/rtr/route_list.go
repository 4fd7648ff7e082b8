package rtr

// RouteList represents a registered route for debugging and inspection
// purposes. The router exposes its route tables in this human-readable
// form for route table visualization, API documentation, and tests.
//
// Fields:
//   - Method: HTTP method (GET, POST, etc.)
//   - Path: the route pattern text (e.g., "/users/{id}")
//   - HandlerRef: string representation of the handler (for debugging)
type RouteList struct {
	Method     string
	Path       string
	HandlerRef string
}
