package middleware

import (
	"github.com/indigo-web/waves/dispatcher"
	"github.com/indigo-web/waves/http"
)

// Redirect answers requests to the path with 307 Temporary Redirect to another one.
func Redirect(from, to string) dispatcher.Middleware {
	return func(next dispatcher.Handler, request *http.Request) error {
		if request.Path() != from {
			return next(request)
		}

		return request.Redirect(to, "307")
	}
}
