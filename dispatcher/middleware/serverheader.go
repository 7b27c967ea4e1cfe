package middleware

import (
	"strings"

	"github.com/indigo-web/waves/dispatcher"
	"github.com/indigo-web/waves/http"
)

const DefaultServerHeader = "waves"

func ServerHeader(customHeaders ...string) dispatcher.Middleware {
	value := strings.Join(customHeaders, " ")
	if len(value) == 0 {
		value = DefaultServerHeader
	}

	return func(next dispatcher.Handler, request *http.Request) error {
		request.Response().SetHeader("Server", value)
		return next(request)
	}
}
