// Package transport connects the dispatcher to HTTP servers. Every server-specific
// request is turned into an environment, dispatched, and the built response is written
// back.
package transport

import (
	"github.com/indigo-web/waves/env"
	"github.com/indigo-web/waves/http"
	"github.com/indigo-web/waves/http/cookie"
	"github.com/indigo-web/waves/http/mime"
	"github.com/indigo-web/waves/http/status"
	"github.com/indigo-web/waves/internal/response"
)

// Dispatcher turns a raw transaction into a complete response.
type Dispatcher interface {
	Dispatch(tx env.Transaction) *http.Response
}

// headerWriter is the common part of net/http and fasthttp response headers.
type headerWriter interface {
	Add(key, value string)
	Set(key, value string)
}

// writeHeaders copies the response headers, cookies included, into the server's ones.
// Content-Type is added only when there's something to describe.
func writeHeaders(dst headerWriter, fields *response.Fields) {
	for key, value := range fields.Headers.Pairs() {
		dst.Add(key, value)
	}

	for _, c := range fields.Cookies {
		dst.Add("Set-Cookie", cookie.Render(c))
	}

	if len(fields.Body) > 0 && len(fields.ContentType) > 0 {
		dst.Set("Content-Type", contentType(fields.ContentType))
	}
}

// contentType adds the default charset to types having one, unless it's already set.
func contentType(value mime.MIME) string {
	charset, found := mime.DefaultCharset[value]
	if !found {
		return value
	}

	return value + "; charset=" + charset
}

func statusCode(fields *response.Fields) int {
	if fields.Code == 0 {
		return int(status.OK)
	}

	return int(fields.Code)
}
