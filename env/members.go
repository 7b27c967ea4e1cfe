package env

import (
	"fmt"
	"strings"
)

// Member implements Transaction. Members are named after the Rack::Request methods, so
// code written against that convention resolves the same way.
func (r *Request) Member(name string) (Member, bool) {
	switch name {
	case "request_method":
		return noArgs(name, func() any { return r.RequestMethod() }), true
	case "script_name":
		return noArgs(name, func() any { return r.ScriptName() }), true
	case "path_info":
		return noArgs(name, func() any { return r.PathInfo() }), true
	case "query_string":
		return noArgs(name, func() any { return r.QueryString() }), true
	case "path":
		return noArgs(name, func() any { return r.Path() }), true
	case "fullpath":
		return noArgs(name, func() any { return r.Fullpath() }), true
	case "url":
		return noArgs(name, func() any { return r.URL() }), true
	case "scheme":
		return noArgs(name, func() any { return r.Scheme() }), true
	case "host":
		return noArgs(name, func() any { return r.Host() }), true
	case "port":
		return noArgs(name, func() any { return r.Port() }), true
	case "ip":
		return noArgs(name, func() any { return r.env[RemoteAddr] }), true
	case "media_type":
		return noArgs(name, func() any { return optional(r.MediaType()) }), true
	case "content_length":
		return noArgs(name, func() any { return r.env[ContentLength] }), true
	case "user_agent":
		return noArgs(name, func() any { return r.env["HTTP_USER_AGENT"] }), true
	case "referer", "referrer":
		return noArgs(name, func() any { return r.env["HTTP_REFERER"] }), true
	case "body":
		return noArgs(name, func() any { return r.env[Input] }), true
	case "cookies":
		return noArgs(name, func() any { return r.Cookies() }), true
	case "xhr?":
		return noArgs(name, func() any { return r.IsXHR() }), true
	case "form_data?":
		return noArgs(name, func() any { return r.IsFormData() }), true
	case "get?", "post?", "put?", "delete?", "head?":
		verb := strings.ToUpper(strings.TrimSuffix(name, "?"))
		return noArgs(name, func() any { return r.RequestMethod() == verb }), true
	case "GET":
		return func(args ...any) (any, error) {
			if len(args) > 0 {
				return nil, arityError(name, len(args), 0)
			}

			return r.GET()
		}, true
	case "POST":
		return func(args ...any) (any, error) {
			if len(args) > 0 {
				return nil, arityError(name, len(args), 0)
			}

			return r.POST()
		}, true
	case "params":
		return r.paramsMember, true
	}

	return nil, false
}

// paramsMember returns all the parameters, or the value of a single one if its key is
// passed. Missing keys result in nil.
func (r *Request) paramsMember(args ...any) (any, error) {
	switch len(args) {
	case 0:
		return r.Params(), nil
	case 1:
		key, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("params: key must be a string, got %T", args[0])
		}

		if value, found := r.Param(key); found {
			return value, nil
		}

		return nil, nil
	default:
		return nil, arityError("params", len(args), 1)
	}
}

func noArgs(name string, fn func() any) Member {
	return func(args ...any) (any, error) {
		if len(args) > 0 {
			return nil, arityError(name, len(args), 0)
		}

		return fn(), nil
	}
}

func optional(str string) any {
	if len(str) == 0 {
		return nil
	}

	return str
}

func arityError(name string, given, expected int) error {
	return fmt.Errorf("%s: %w (given %d, expected %d)", name, ErrArguments, given, expected)
}
