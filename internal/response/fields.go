package response

import (
	"github.com/indigo-web/waves/http/cookie"
	"github.com/indigo-web/waves/http/mime"
	"github.com/indigo-web/waves/http/status"
	"github.com/indigo-web/waves/kv"
)

const DefaultContentType = mime.HTML

// Fields is what the response builder accumulates. The transport writes it back as is.
type Fields struct {
	Code        status.Code
	Status      status.Status
	ContentType mime.MIME
	Headers     *kv.Storage
	Cookies     []cookie.Cookie
	Body        []byte
}

func NewFields() *Fields {
	return &Fields{
		Code:        status.OK,
		ContentType: DefaultContentType,
		Headers:     kv.NewPrealloc(preallocHeaders),
	}
}

// StatusText returns the explicitly set status text or the standard one of the code.
func (f *Fields) StatusText() status.Status {
	if len(f.Status) > 0 {
		return f.Status
	}

	return status.Text(f.Code)
}

func (f *Fields) Clear() {
	f.Code = status.OK
	f.Status = ""
	f.ContentType = DefaultContentType
	f.Headers.Clear()
	f.Cookies = f.Cookies[:0]
	f.Body = nil
}

const preallocHeaders = 7
