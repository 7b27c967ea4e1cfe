package dispatcher

import (
	"github.com/indigo-web/waves/http"
)

// Handler handles the request, filling its response in. Returned errors are turned into
// responses by the dispatcher, including the NotFound and Redirect interruptions.
type Handler func(request *http.Request) error

// Middleware wraps the handler. It may pass the request further by calling next, or
// answer on its own.
type Middleware func(next Handler, request *http.Request) error

// Compose makes a single Handler from the chain of middlewares and the handler in the
// end. The first middleware is the outermost one.
func Compose(handler Handler, middlewares ...Middleware) Handler {
	if len(middlewares) == 0 {
		return handler
	}

	next := Compose(handler, middlewares[1:]...)
	return func(request *http.Request) error {
		return middlewares[0](next, request)
	}
}
