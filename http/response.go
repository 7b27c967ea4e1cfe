package http

import (
	"errors"

	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"

	"github.com/indigo-web/waves/http/cookie"
	"github.com/indigo-web/waves/http/mime"
	"github.com/indigo-web/waves/http/status"
	"github.com/indigo-web/waves/internal/response"
)

// Response is a chainable builder of the reply. Every request owns exactly one.
type Response struct {
	request *Request
	fields  *response.Fields
}

// NewResponse returns a response with status code 200 OK and text/html content-type.
func NewResponse(request *Request) *Response {
	return &Response{
		request: request,
		fields:  response.NewFields(),
	}
}

// Request returns the request the response belongs to.
func (r *Response) Request() *Request {
	return r.request
}

// Code sets the response code. The status text follows the code unless set explicitly.
func (r *Response) Code(code status.Code) *Response {
	r.fields.Code = code
	return r
}

// Status sets a custom status text.
func (r *Response) Status(status status.Status) *Response {
	r.fields.Status = status
	return r
}

func (r *Response) ContentType(value mime.MIME) *Response {
	r.fields.ContentType = value
	return r
}

// Header appends values to the key. Content-Type is redirected to ContentType.
func (r *Response) Header(key string, values ...string) *Response {
	if strcomp.EqualFold(key, "content-type") {
		if len(values) > 0 {
			r.ContentType(values[0])
		}

		return r
	}

	for _, value := range values {
		r.fields.Headers.Add(key, value)
	}

	return r
}

// SetHeader replaces all the values of the key by the value.
func (r *Response) SetHeader(key, value string) *Response {
	if strcomp.EqualFold(key, "content-type") {
		return r.ContentType(value)
	}

	r.fields.Headers.Set(key, value)
	return r
}

// String sets the body to the passed string.
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the body to the passed slice WITHOUT COPYING.
func (r *Response) Bytes(body []byte) *Response {
	r.fields.Body = body
	return r
}

// Write implements io.Writer, appending to the body. Never fails.
func (r *Response) Write(b []byte) (n int, err error) {
	r.fields.Body = append(r.fields.Body, b...)
	return len(b), nil
}

// Cookie adds cookies to be rendered as Set-Cookie headers.
func (r *Response) Cookie(cookies ...cookie.Cookie) *Response {
	r.fields.Cookies = append(r.fields.Cookies, cookies...)
	return r
}

// TryJSON serializes the model into the body and sets application/json. The previous
// body is dropped, not overwritten, as it may share memory with a string.
func (r *Response) TryJSON(model any) (*Response, error) {
	r.fields.Body = nil
	stream := json.ConfigDefault.BorrowStream(r)
	stream.WriteVal(model)
	err := stream.Flush()
	if err == nil {
		err = stream.Error
	}
	json.ConfigDefault.ReturnStream(stream)

	return r.ContentType(mime.JSON), err
}

// JSON does the same as TryJSON, except the error is passed to Error.
func (r *Response) JSON(model any) *Response {
	resp, err := r.TryJSON(model)
	if err != nil {
		return r.Error(err)
	}

	return resp
}

// Error turns the response into an error one. Nil errors change nothing. status.HTTPError
// carries its own code, otherwise the first passed code is used, 500 by default.
func (r *Response) Error(err error, code ...status.Code) *Response {
	if err == nil {
		return r
	}

	var http status.HTTPError
	if errors.As(err, &http) {
		return r.
			Code(http.Code).
			ContentType(mime.Plain).
			String(http.Message)
	}

	c := status.InternalServerError
	if len(code) > 0 {
		c = code[0]
	}

	return r.
		Code(c).
		ContentType(mime.Plain).
		String(err.Error())
}

// Reveal returns the accumulated fields. Used by transports.
func (r *Response) Reveal() *response.Fields {
	return r.fields
}

// Clear discards everything done to the response before.
func (r *Response) Clear() *Response {
	r.fields.Clear()
	return r
}
