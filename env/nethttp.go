package env

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/indigo-web/waves/internal/strutil"
)

// FromHTTP builds the environment of a net/http request. The request body becomes
// rack.input.
func FromHTTP(r *http.Request) Env {
	e := newEnv(r.TLS != nil)
	e[RequestMethod] = r.Method
	e[ScriptName] = ""
	e[PathInfo] = r.URL.Path
	e[QueryString] = r.URL.RawQuery
	e[RemoteAddr] = r.RemoteAddr
	e[Input] = r.Body

	host, port := splitHostPort(r.Host)
	e[ServerName] = host
	if len(port) == 0 {
		port = strconv.Itoa(defaultPort(e.Value(URLScheme)))
	}
	e[ServerPort] = port

	if len(r.Host) > 0 {
		e[HTTPHost] = r.Host
	}

	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		e[RemoteAddr] = ip
	}

	for key, values := range r.Header {
		addHeader(e, key, values)
	}

	return e
}

func newEnv(secure bool) Env {
	scheme := "http"
	if secure {
		scheme = "https"
	}

	return Env{
		URLScheme:    scheme,
		Errors:       os.Stderr,
		Multithread:  true,
		Multiprocess: false,
		RunOnce:      false,
		Version:      []int{1, 3},
	}
}

// addHeader stores the header the CGI way: Content-Type and Content-Length go without
// the HTTP_ prefix, repeated headers are joined.
func addHeader(e Env, key string, values []string) {
	if len(values) == 0 {
		return
	}

	switch {
	case strings.EqualFold(key, "Content-Type"):
		e[ContentType] = values[0]
	case strings.EqualFold(key, "Content-Length"):
		e[ContentLength] = values[0]
	case strings.EqualFold(key, "Cookie"):
		e["HTTP_COOKIE"] = join(e, "HTTP_COOKIE", values, "; ")
	case strings.EqualFold(key, "Host"):
		// taken from the request line or the Host header by the transport
	default:
		envKey := strutil.EnvKey(key)
		e[envKey] = join(e, envKey, values, ", ")
	}
}

func join(e Env, key string, values []string, sep string) string {
	joined := strings.Join(values, sep)
	if prev, ok := e.String(key); ok && len(prev) > 0 {
		return prev + sep + joined
	}

	return joined
}
