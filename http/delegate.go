package http

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAttribute is returned by Request.Call when nothing answers to the name.
var ErrUnknownAttribute = errors.New("unknown attribute")

// Call resolves attributes the Request doesn't define itself. The lookup goes:
//
//  1. the transaction member of the name, called with the args;
//  2. if there are no args, the HTTP_<NAME> environment key;
//  3. if there are no args, the rack.<name> environment key.
//
// A step succeeds only when its result is neither nil nor false, so a member returning
// false is indistinguishable from a missing one and the lookup goes on. Errors returned
// by the member are passed as they are.
func (r *Request) Call(name string, args ...any) (any, error) {
	if member, found := r.tx.Member(name); found {
		value, err := member(args...)
		if err != nil {
			return nil, err
		}

		if truthy(value) {
			return value, nil
		}
	}

	if len(args) == 0 {
		e := r.tx.Env()

		if value := e["HTTP_"+strings.ToUpper(name)]; truthy(value) {
			return value, nil
		}

		if value := e["rack."+strings.ToLower(name)]; truthy(value) {
			return value, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownAttribute, name)
}

// Attr is Call without arguments, returning the value as a string. Values of other
// types are formatted.
func (r *Request) Attr(name string) (string, error) {
	value, err := r.Call(name)
	if err != nil {
		return "", err
	}

	if str, ok := value.(string); ok {
		return str, nil
	}

	return fmt.Sprint(value), nil
}

func truthy(value any) bool {
	return value != nil && value != false
}
