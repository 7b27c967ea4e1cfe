package method

import "strings"

// Method is a lowercase request method token. Unknown methods aren't rejected and are
// kept as they are (lowercased), so they can still be compared against.
type Method string

const (
	Unknown Method = ""
	GET     Method = "get"
	POST    Method = "post"
	PUT     Method = "put"
	DELETE  Method = "delete"
	HEAD    Method = "head"
	OPTIONS Method = "options"
	TRACE   Method = "trace"
)

// List contains all the methods having a predicate on the request.
var List = []Method{GET, POST, PUT, DELETE, HEAD, OPTIONS, TRACE}

// Override is the name of the parameter carrying the tunneled method of a POST request.
// Browsers can't send PUT or DELETE forms, so a hidden field (or a query parameter)
// with this name is used instead.
const Override = "_method"

// Parse normalizes the raw method.
func Parse(str string) Method {
	return Method(strings.ToLower(str))
}

// Resolve returns the effective method. A POST request carrying a non-empty override
// becomes the override, anything else stays as it is.
func Resolve(raw, override string) Method {
	m := Parse(raw)
	if m == POST && len(override) > 0 {
		return Parse(override)
	}

	return m
}

// Is compares methods. The candidate isn't normalized, so it must be lowercase.
func (m Method) Is(candidate Method) bool {
	return m == candidate
}

func (m Method) String() string {
	return string(m)
}
