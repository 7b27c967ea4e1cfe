package env

import (
	"bytes"
	"strconv"

	"github.com/valyala/fasthttp"
)

// FromFastHTTP builds the environment of a fasthttp request. All the values are copied,
// so the environment stays valid after the handler returns.
func FromFastHTTP(ctx *fasthttp.RequestCtx) Env {
	e := newEnv(ctx.IsTLS())
	e[RequestMethod] = string(ctx.Method())
	e[ScriptName] = ""
	e[PathInfo] = string(ctx.Path())
	e[QueryString] = string(ctx.URI().QueryString())
	e[Input] = bytes.NewReader(append([]byte(nil), ctx.PostBody()...))

	hostport := string(ctx.Host())
	host, port := splitHostPort(hostport)
	e[ServerName] = host
	if len(port) == 0 {
		port = strconv.Itoa(defaultPort(e.Value(URLScheme)))
	}
	e[ServerPort] = port

	if len(hostport) > 0 {
		e[HTTPHost] = hostport
	}

	e[RemoteAddr] = ctx.RemoteIP().String()

	ctx.Request.Header.VisitAll(func(key, value []byte) {
		addHeader(e, string(key), []string{string(value)})
	})

	return e
}
