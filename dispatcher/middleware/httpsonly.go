package middleware

import (
	"github.com/indigo-web/waves/dispatcher"
	"github.com/indigo-web/waves/http"
	"github.com/indigo-web/waves/http/status"
)

type HTTPSOnlyParams struct {
	// RedirectTo defines the host, where the user will be redirected.
	// If empty, the requested host will be used
	RedirectTo string
	// Port is added to the host value.
	// If empty, implicitly default 443 port will be used
	Port string
}

// HTTPSOnly redirects all http requests to https. In case the host is unknown,
// 400 Bad Request is returned without calling the actual handler.
func HTTPSOnly(optionalParams ...HTTPSOnlyParams) dispatcher.Middleware {
	params := optional(optionalParams, HTTPSOnlyParams{})

	return func(next dispatcher.Handler, request *http.Request) error {
		if scheme, _ := request.Attr("scheme"); scheme == "https" {
			return next(request)
		}

		host := params.RedirectTo
		if len(host) == 0 {
			host = request.Domain()
			if len(host) == 0 {
				request.Response().
					Code(status.BadRequest).
					String("no Host header")
				return nil
			}
		}

		if len(params.Port) > 0 {
			host += ":" + params.Port
		}

		return request.Redirect("https://"+host+request.Path(), "301")
	}
}

func optional[T any](custom []T, default_ T) T {
	if len(custom) == 0 {
		return default_
	}

	return custom[0]
}
