package status

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadRequest          = NewError(BadRequest, "bad request")
	ErrURLDecoding         = NewError(BadRequest, "invalid urlencoded sequence")
	ErrBadParams           = NewError(BadRequest, "bad URI params")
	ErrNotFound            = NewError(NotFound, "not found")
	ErrBodyTooLarge        = NewError(RequestEntityTooLarge, "request body is too large")
	ErrTooManyRequests     = NewError(TooManyRequests, "too many requests")
	ErrInternalServerError = NewError(InternalServerError, "internal server error")
)

// NotFoundError interrupts the request handling, asking the dispatcher to reply
// with 404 Not Found. Message is used as the response body.
type NotFoundError struct {
	Message string
}

func (n *NotFoundError) Error() string {
	return n.Message
}

// Code always returns NotFound.
func (n *NotFoundError) Code() Code {
	return NotFound
}

// RedirectError interrupts the request handling, asking the dispatcher to redirect
// the client to the Path. Status is kept as it was passed by the caller, e.g. "302".
type RedirectError struct {
	Path   string
	Status string
}

func (r *RedirectError) Error() string {
	return "redirect " + r.Status + " to " + r.Path
}

// Code returns the numeric representation of Status. Malformed statuses fall back
// to 302 Found.
func (r *RedirectError) Code() Code {
	code, ok := Parse(r.Status)
	if !ok {
		return Found
	}

	return code
}
