// Package env describes the raw transaction the request core is built on top of: a
// CGI-style environment, as transports hand it over, and a Transaction wrapping it.
package env

// Conventional environment keys.
const (
	RequestMethod = "REQUEST_METHOD"
	ScriptName    = "SCRIPT_NAME"
	PathInfo      = "PATH_INFO"
	QueryString   = "QUERY_STRING"
	ServerName    = "SERVER_NAME"
	ServerPort    = "SERVER_PORT"
	ContentType   = "CONTENT_TYPE"
	ContentLength = "CONTENT_LENGTH"
	RemoteAddr    = "REMOTE_ADDR"
	HTTPHost      = "HTTP_HOST"

	URLScheme    = "rack.url_scheme"
	Input        = "rack.input"
	Errors       = "rack.errors"
	Multithread  = "rack.multithread"
	Multiprocess = "rack.multiprocess"
	RunOnce      = "rack.run_once"
	Version      = "rack.version"
)

// Env is a CGI-style environment of a single transaction. Header values are stored
// under HTTP_<NAME> keys, transport-specific values under rack.<name> ones.
type Env map[string]any

// String returns the value of the key if it's a string. Missing keys and values of
// other types are reported as not found.
func (e Env) String(key string) (string, bool) {
	value, found := e[key].(string)
	return value, found
}

// Value returns the string value of the key or an empty string.
func (e Env) Value(key string) string {
	value, _ := e.String(key)
	return value
}

// Member is a bound operation of a transaction, available by its name.
type Member func(args ...any) (any, error)

// Transaction is the raw request, exclusively owned by the request wrapping it.
type Transaction interface {
	// RequestMethod returns the method as it was received.
	RequestMethod() string
	// PathInfo returns the path relative to the application mount point, without the
	// query string.
	PathInfo() string
	// Host returns the requested host without port.
	Host() string
	// Param looks the parameter up in both the form body and the query string. Form
	// values take precedence.
	Param(key string) (string, bool)
	// URL reconstructs the full request URL.
	URL() string
	// Env exposes the underlying environment.
	Env() Env
	// Member returns the named operation, if the transaction has one.
	Member(name string) (Member, bool)
}
