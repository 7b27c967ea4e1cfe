package transport

import (
	nethttp "net/http"

	"github.com/indigo-web/waves/env"
	"github.com/indigo-web/waves/internal/response"
)

// NetHTTP adapts the dispatcher to net/http. formLimit bounds the urlencoded body read
// in order to obtain form parameters.
func NetHTTP(d Dispatcher, formLimit int64) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		tx := env.NewRequest(env.FromHTTP(r), formLimit)
		writeNetHTTP(w, r, d.Dispatch(tx).Reveal())
	})
}

func writeNetHTTP(w nethttp.ResponseWriter, r *nethttp.Request, fields *response.Fields) {
	writeHeaders(w.Header(), fields)
	w.WriteHeader(statusCode(fields))

	if r.Method == nethttp.MethodHead {
		return
	}

	_, _ = w.Write(fields.Body)
}
