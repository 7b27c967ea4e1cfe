package http

import (
	"strings"

	"github.com/indigo-web/waves/config"
	"github.com/indigo-web/waves/env"
	"github.com/indigo-web/waves/http/cookie"
	"github.com/indigo-web/waves/http/method"
	"github.com/indigo-web/waves/http/mime"
	"github.com/indigo-web/waves/http/status"
	"github.com/indigo-web/waves/session"
)

// DefaultRedirectStatus is used by Redirect unless a status is passed explicitly.
const DefaultRedirectStatus = "302"

// Request represents a single HTTP transaction. It wraps the raw transaction once and is
// read-only afterwards, except for the memoized method. It isn't safe for concurrent use,
// as it's never supposed to leave the goroutine handling the transaction.
type Request struct {
	tx         env.Transaction
	cfg        *config.Config
	response   *Response
	session    *session.Session
	blackboard *Blackboard
	method     method.Method
	resolved   bool
}

// NewRequest wraps the transaction. The response, the session and the blackboard are
// constructed right away. The session is looked up in the store by the id from the
// session cookie; a fresh one is started if there's none.
func NewRequest(cfg *config.Config, tx env.Transaction, sessions session.Store) (*Request, error) {
	jar := cookie.NewJar()
	_ = cookie.Parse(jar, tx.Env().Value("HTTP_COOKIE"))

	sess, err := session.Open(sessions, jar.Value(cfg.Session.CookieName), cfg.Session.IDLength, cfg.Session.MaxAge)
	if err != nil {
		return nil, err
	}

	request := &Request{
		tx:         tx,
		cfg:        cfg,
		session:    sess,
		blackboard: NewBlackboard(),
	}
	request.response = NewResponse(request)

	return request, nil
}

// Transaction returns the underlying raw transaction.
func (r *Request) Transaction() env.Transaction {
	return r.tx
}

func (r *Request) Response() *Response {
	return r.response
}

func (r *Request) Session() *session.Session {
	return r.session
}

// Blackboard is a scratch storage for passing values between the handling stages.
func (r *Request) Blackboard() *Blackboard {
	return r.blackboard
}

// Path returns the path info, e.g. /entry/2008-01-17. The query string and the script
// name aren't included.
func (r *Request) Path() string {
	return r.tx.PathInfo()
}

// Domain returns the requested host, e.g. www.fubar.com.
func (r *Request) Domain() string {
	return r.tx.Host()
}

// ContentType returns the declared body type.
func (r *Request) ContentType() (string, bool) {
	return r.tx.Env().String(env.ContentType)
}

// Method returns the request method. As browsers can't send PUT or DELETE forms, a POST
// request may carry the intended method in the _method form field or query parameter.
// The method is resolved once, later changes of the parameter have no effect.
func (r *Request) Method() method.Method {
	if !r.resolved {
		raw := r.tx.RequestMethod()
		var override string
		if method.Parse(raw) == method.POST {
			override, _ = r.tx.Param(method.Override)
		}

		r.method = method.Resolve(raw, override)
		r.resolved = true
	}

	return r.method
}

// Is compares the request method against the candidate.
func (r *Request) Is(candidate method.Method) bool {
	return r.Method().Is(candidate)
}

func (r *Request) IsGet() bool     { return r.Is(method.GET) }
func (r *Request) IsPost() bool    { return r.Is(method.POST) }
func (r *Request) IsPut() bool     { return r.Is(method.PUT) }
func (r *Request) IsDelete() bool  { return r.Is(method.DELETE) }
func (r *Request) IsHead() bool    { return r.Is(method.HEAD) }
func (r *Request) IsOptions() bool { return r.Is(method.OPTIONS) }
func (r *Request) IsTrace() bool   { return r.Is(method.TRACE) }

// Accept returns the types acceptable for the request. They're taken from the
// configured MIME types of the lowercased path rather than from the Accept header,
// which browsers fill with wildcards. Paths without an entry accept text/html.
func (r *Request) Accept() mime.Accept {
	types, found := r.cfg.MimeTypes.Lookup(strings.ToLower(r.Path()))
	if !found {
		types = mime.HTML
	}

	return mime.ParseAccept(types)
}

// AcceptCharset parses the Accept-Charset header. Empty if there's no such header.
func (r *Request) AcceptCharset() mime.Accept {
	return mime.ParseAccept(r.tx.Env().Value("HTTP_ACCEPT_CHARSET"))
}

// AcceptLanguage parses the Accept-Language header. Empty if there's no such header.
func (r *Request) AcceptLanguage() mime.Accept {
	return mime.ParseAccept(r.tx.Env().Value("HTTP_ACCEPT_LANGUAGE"))
}

// NotFound returns an interruption, which must be returned up to the dispatcher in order
// to respond with 404 Not Found.
func (r *Request) NotFound() error {
	return &status.NotFoundError{Message: r.tx.URL() + " not found."}
}

// Redirect returns an interruption, which must be returned up to the dispatcher in order
// to redirect the client to the path. The status defaults to 302.
func (r *Request) Redirect(path string, code ...string) error {
	redirect := &status.RedirectError{
		Path:   path,
		Status: DefaultRedirectStatus,
	}

	if len(code) > 0 && len(code[0]) > 0 {
		redirect.Status = code[0]
	}

	return redirect
}
