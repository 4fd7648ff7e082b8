package rtr

// Match is a single URL parameter captured while matching a pattern
// against a request path.
//
// Example:
//
//	Pattern: /user/{id}/posts/{postId}
//	Path:    /user/123/posts/456
//	Result:  []Match{{Name: "id", Value: "123"}, {Name: "postId", Value: "456"}}
//
// Values are substrings of the matched path, kept in the order the
// parameters appear in the pattern. Percent escapes are left encoded.
type Match struct {
	Name  string
	Value string
}
