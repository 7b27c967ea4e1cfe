package middleware

import (
	"github.com/indigo-web/waves/dispatcher"
	"github.com/indigo-web/waves/http"
)

// Seed puts the values onto the blackboard of every request before it's handled.
func Seed(values map[string]any) dispatcher.Middleware {
	return func(next dispatcher.Handler, request *http.Request) error {
		board := request.Blackboard()
		for key, value := range values {
			board.Set(key, value)
		}

		return next(request)
	}
}
