package status

import "strconv"

type (
	Code   uint16
	Status string
)

// HTTP status codes used by the request core and its transports.
// See: https://www.iana.org/assignments/http-status-codes/http-status-codes.xhtml
const (
	OK        Code = 200 // RFC 9110, 15.3.1
	Created   Code = 201 // RFC 9110, 15.3.2
	NoContent Code = 204 // RFC 9110, 15.3.5

	MultipleChoices   Code = 300 // RFC 9110, 15.4.1
	MovedPermanently  Code = 301 // RFC 9110, 15.4.2
	Found             Code = 302 // RFC 9110, 15.4.3
	SeeOther          Code = 303 // RFC 9110, 15.4.4
	NotModified       Code = 304 // RFC 9110, 15.4.5
	TemporaryRedirect Code = 307 // RFC 9110, 15.4.8
	PermanentRedirect Code = 308 // RFC 9110, 15.4.9

	BadRequest            Code = 400 // RFC 9110, 15.5.1
	Unauthorized          Code = 401 // RFC 9110, 15.5.2
	Forbidden             Code = 403 // RFC 9110, 15.5.4
	NotFound              Code = 404 // RFC 9110, 15.5.5
	MethodNotAllowed      Code = 405 // RFC 9110, 15.5.6
	NotAcceptable         Code = 406 // RFC 9110, 15.5.7
	RequestEntityTooLarge Code = 413 // RFC 9110, 15.5.14
	UnsupportedMediaType  Code = 415 // RFC 9110, 15.5.16
	TooManyRequests       Code = 429 // RFC 6585, 4

	InternalServerError Code = 500 // RFC 9110, 15.6.1
	NotImplemented      Code = 501 // RFC 9110, 15.6.2
	BadGateway          Code = 502 // RFC 9110, 15.6.3
	ServiceUnavailable  Code = 503 // RFC 9110, 15.6.4
)

var texts = map[Code]Status{
	OK:                    "OK",
	Created:               "Created",
	NoContent:             "No Content",
	MultipleChoices:       "Multiple Choices",
	MovedPermanently:      "Moved Permanently",
	Found:                 "Found",
	SeeOther:              "See Other",
	NotModified:           "Not Modified",
	TemporaryRedirect:     "Temporary Redirect",
	PermanentRedirect:     "Permanent Redirect",
	BadRequest:            "Bad Request",
	Unauthorized:          "Unauthorized",
	Forbidden:             "Forbidden",
	NotFound:              "Not Found",
	MethodNotAllowed:      "Method Not Allowed",
	NotAcceptable:         "Not Acceptable",
	RequestEntityTooLarge: "Request Entity Too Large",
	UnsupportedMediaType:  "Unsupported Media Type",
	TooManyRequests:       "Too Many Requests",
	InternalServerError:   "Internal Server Error",
	NotImplemented:        "Not Implemented",
	BadGateway:            "Bad Gateway",
	ServiceUnavailable:    "Service Unavailable",
}

// Text returns a text for the HTTP status code. It returns the empty
// string if the code is unknown.
func Text(code Code) Status {
	return texts[code]
}

// Parse converts a textual status code, like "302", into the Code. Anything that
// isn't a three-digit number in the 100-599 range is rejected.
func Parse(str string) (Code, bool) {
	if len(str) != 3 {
		return 0, false
	}

	n, err := strconv.Atoi(str)
	if err != nil || n < 100 || n > 599 {
		return 0, false
	}

	return Code(n), true
}

// IsRedirect tells whether the code belongs to the 3xx class.
func IsRedirect(code Code) bool {
	return code >= 300 && code < 400
}
