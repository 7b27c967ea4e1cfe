package transport

import (
	"github.com/valyala/fasthttp"

	"github.com/indigo-web/waves/env"
	"github.com/indigo-web/waves/internal/response"
)

// FastHTTP adapts the dispatcher to fasthttp. formLimit bounds the urlencoded body read
// in order to obtain form parameters.
func FastHTTP(d Dispatcher, formLimit int64) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		tx := env.NewRequest(env.FromFastHTTP(ctx), formLimit)
		writeFastHTTP(ctx, d.Dispatch(tx).Reveal())
	}
}

func writeFastHTTP(ctx *fasthttp.RequestCtx, fields *response.Fields) {
	ctx.SetStatusCode(statusCode(fields))
	writeHeaders(&ctx.Response.Header, fields)
	// fasthttp skips the body of HEAD responses on its own
	ctx.SetBody(fields.Body)
}
