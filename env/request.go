package env

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/indigo-web/waves/http/cookie"
	"github.com/indigo-web/waves/http/mime"
	"github.com/indigo-web/waves/http/status"
	"github.com/indigo-web/waves/internal/query"
	"github.com/indigo-web/waves/internal/strutil"
	"github.com/indigo-web/waves/kv"
)

// DefaultFormLimit is used when no explicit limit of the form body size is set.
const DefaultFormLimit = 2 * 1024 * 1024

// ErrArguments is returned by members called with arguments they don't accept.
var ErrArguments = errors.New("wrong number of arguments")

// Request is the default Transaction, reading everything from the environment. Query and
// form parameters are parsed at most once.
type Request struct {
	env       Env
	formLimit int64
	get       *kv.Storage
	getErr    error
	post      *kv.Storage
	postErr   error
}

// NewRequest wraps the environment. Non-positive formLimit falls back to DefaultFormLimit.
func NewRequest(e Env, formLimit int64) *Request {
	if formLimit <= 0 {
		formLimit = DefaultFormLimit
	}

	return &Request{
		env:       e,
		formLimit: formLimit,
	}
}

func (r *Request) Env() Env {
	return r.env
}

func (r *Request) RequestMethod() string {
	return r.env.Value(RequestMethod)
}

func (r *Request) ScriptName() string {
	return r.env.Value(ScriptName)
}

func (r *Request) PathInfo() string {
	return r.env.Value(PathInfo)
}

func (r *Request) QueryString() string {
	return r.env.Value(QueryString)
}

// Scheme returns rack.url_scheme, http by default.
func (r *Request) Scheme() string {
	if scheme, ok := r.env.String(URLScheme); ok && len(scheme) > 0 {
		return scheme
	}

	return "http"
}

// Host returns the host from the Host header or the server name, if the header is missing.
func (r *Request) Host() string {
	if hostport, ok := r.env.String(HTTPHost); ok && len(hostport) > 0 {
		host, _ := splitHostPort(hostport)
		return host
	}

	return r.env.Value(ServerName)
}

// Port returns the port from the Host header, the server port or the default port of
// the scheme, in that order.
func (r *Request) Port() int {
	if hostport, ok := r.env.String(HTTPHost); ok {
		if _, port := splitHostPort(hostport); len(port) > 0 {
			if n, err := strconv.Atoi(port); err == nil {
				return n
			}
		}
	}

	if n, err := strconv.Atoi(r.env.Value(ServerPort)); err == nil {
		return n
	}

	return defaultPort(r.Scheme())
}

// Path returns the script name and path info joined.
func (r *Request) Path() string {
	return r.ScriptName() + r.PathInfo()
}

// Fullpath returns the path together with the query string, if any.
func (r *Request) Fullpath() string {
	qs := r.QueryString()
	if len(qs) == 0 {
		return r.Path()
	}

	return r.Path() + "?" + qs
}

// URL reconstructs the full request URL. The port is omitted if it's the default
// one for the scheme.
func (r *Request) URL() string {
	scheme := r.Scheme()
	url := scheme + "://" + r.Host()
	if port := r.Port(); port != defaultPort(scheme) {
		url += ":" + strconv.Itoa(port)
	}

	return url + r.Fullpath()
}

// MediaType returns the lowercase Content-Type value without parameters.
func (r *Request) MediaType() string {
	value, _ := strutil.CutHeader(r.env.Value(ContentType))
	return strings.ToLower(strings.TrimSpace(value))
}

// ContentLength returns the declared body length, or 0 if it's missing or malformed.
func (r *Request) ContentLength() int {
	n, err := strconv.Atoi(r.env.Value(ContentLength))
	if err != nil {
		return 0
	}

	return n
}

func (r *Request) UserAgent() (string, bool) {
	return r.env.String("HTTP_USER_AGENT")
}

func (r *Request) Referer() (string, bool) {
	return r.env.String("HTTP_REFERER")
}

// IsXHR tells whether the request was made by XMLHttpRequest.
func (r *Request) IsXHR() bool {
	return r.env.Value("HTTP_X_REQUESTED_WITH") == "XMLHttpRequest"
}

// IsFormData tells whether the body is expected to carry urlencoded form data. POST
// requests without Content-Type are considered such as well.
func (r *Request) IsFormData() bool {
	mediaType := r.MediaType()
	if len(mediaType) == 0 {
		return strings.EqualFold(r.RequestMethod(), "POST")
	}

	return mime.Complies(mime.FormUrlencoded, mediaType)
}

// GET returns the parsed query string parameters.
func (r *Request) GET() (*kv.Storage, error) {
	if r.get == nil {
		r.get = kv.NewCaseSensitive()
		r.getErr = query.Parse(r.QueryString(), r.get)
	}

	return r.get, r.getErr
}

// POST returns the parsed form body parameters. The body is read from rack.input, which
// is then replaced by an in-memory copy, so it can be read once again.
func (r *Request) POST() (*kv.Storage, error) {
	if r.post == nil {
		r.post = kv.NewCaseSensitive()
		r.postErr = r.parseForm()
	}

	return r.post, r.postErr
}

func (r *Request) parseForm() error {
	if !r.IsFormData() {
		return nil
	}

	input, ok := r.env[Input].(io.Reader)
	if !ok || input == nil {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(input, r.formLimit+1))
	if err != nil {
		return err
	}

	r.env[Input] = bytes.NewReader(body)
	if int64(len(body)) > r.formLimit {
		return status.ErrBodyTooLarge
	}

	return query.Parse(string(body), r.post)
}

// Params returns query string and form parameters together, form ones going last.
// Malformed query strings and form bodies contribute the pairs preceding the malformed
// part. Keys are case-sensitive.
func (r *Request) Params() *kv.Storage {
	params := kv.NewCaseSensitive()
	get, _ := r.GET()
	post, _ := r.POST()

	return params.Merge(get).Merge(post)
}

// Param implements Transaction. In case the key is repeated, the last value wins, and
// form values win over the query ones.
func (r *Request) Param(key string) (string, bool) {
	return r.Params().Last(key)
}

// Cookies parses the Cookie header. Malformed headers contribute the pairs preceding
// the malformed part.
func (r *Request) Cookies() cookie.Jar {
	jar := cookie.NewJar()
	_ = cookie.Parse(jar, r.env.Value("HTTP_COOKIE"))
	return jar
}

// Cookie returns a single cookie value. The first occurrence of the name wins.
func (r *Request) Cookie(name string) (string, bool) {
	return r.Cookies().Get(name)
}

func splitHostPort(hostport string) (host, port string) {
	if strings.HasPrefix(hostport, "[") {
		end := strings.IndexByte(hostport, ']')
		if end == -1 {
			return hostport, ""
		}

		port, _ = strings.CutPrefix(hostport[end+1:], ":")
		return hostport[1:end], port
	}

	host, port, _ = strings.Cut(hostport, ":")
	return host, port
}

func defaultPort(scheme string) int {
	if scheme == "https" {
		return 443
	}

	return 80
}
