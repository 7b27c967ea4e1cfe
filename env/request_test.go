package env

import (
	"io"
	"strings"
	"testing"

	"github.com/indigo-web/waves/http/status"
	"github.com/indigo-web/waves/kv"
	"github.com/stretchr/testify/require"
)

func getEnv() Env {
	return Env{
		RequestMethod: "GET",
		ScriptName:    "/app",
		PathInfo:      "/entry/2008-01-17",
		QueryString:   "page=2&sort=asc",
		ServerName:    "internal",
		ServerPort:    "80",
		HTTPHost:      "www.fubar.com:8080",
		URLScheme:     "http",
	}
}

func TestRequest(t *testing.T) {
	t.Run("location", func(t *testing.T) {
		r := NewRequest(getEnv(), 0)
		require.Equal(t, "www.fubar.com", r.Host())
		require.Equal(t, 8080, r.Port())
		require.Equal(t, "/app/entry/2008-01-17", r.Path())
		require.Equal(t, "/app/entry/2008-01-17?page=2&sort=asc", r.Fullpath())
		require.Equal(t, "http://www.fubar.com:8080/app/entry/2008-01-17?page=2&sort=asc", r.URL())
	})

	t.Run("default port is omitted", func(t *testing.T) {
		e := getEnv()
		e[HTTPHost] = "example.com"
		e[URLScheme] = "https"
		e[ServerPort] = "443"
		e[QueryString] = ""
		r := NewRequest(e, 0)
		require.Equal(t, 443, r.Port())
		require.Equal(t, "https://example.com/app/entry/2008-01-17", r.URL())
	})

	t.Run("server name fallback", func(t *testing.T) {
		e := getEnv()
		delete(e, HTTPHost)
		r := NewRequest(e, 0)
		require.Equal(t, "internal", r.Host())
		require.Equal(t, 80, r.Port())
	})

	t.Run("ipv6 host", func(t *testing.T) {
		e := getEnv()
		e[HTTPHost] = "[::1]:3000"
		r := NewRequest(e, 0)
		require.Equal(t, "::1", r.Host())
		require.Equal(t, 3000, r.Port())
	})

	t.Run("query", func(t *testing.T) {
		r := NewRequest(getEnv(), 0)
		get, err := r.GET()
		require.NoError(t, err)
		require.Equal(t, "2", get.Value("page"))

		value, found := r.Param("sort")
		require.True(t, found)
		require.Equal(t, "asc", value)
	})

	t.Run("form", func(t *testing.T) {
		e := getEnv()
		e[RequestMethod] = "POST"
		e[ContentType] = "application/x-www-form-urlencoded; charset=utf-8"
		e[QueryString] = "_method=put&page=1"
		e[Input] = strings.NewReader("_method=DELETE&title=Hello+world")
		r := NewRequest(e, 0)

		post, err := r.POST()
		require.NoError(t, err)
		require.Equal(t, "Hello world", post.Value("title"))

		value, found := r.Param("_method")
		require.True(t, found)
		require.Equal(t, "DELETE", value)

		value, _ = r.Param("page")
		require.Equal(t, "1", value)

		body, err := io.ReadAll(e[Input].(io.Reader))
		require.NoError(t, err)
		require.Equal(t, "_method=DELETE&title=Hello+world", string(body))
	})

	t.Run("form without content type", func(t *testing.T) {
		e := getEnv()
		e[RequestMethod] = "POST"
		e[Input] = strings.NewReader("a=b")
		post, err := NewRequest(e, 0).POST()
		require.NoError(t, err)
		require.Equal(t, "b", post.Value("a"))
	})

	t.Run("json body isn't a form", func(t *testing.T) {
		e := getEnv()
		e[RequestMethod] = "POST"
		e[ContentType] = "application/json"
		e[Input] = strings.NewReader(`{"a":"b"}`)
		post, err := NewRequest(e, 0).POST()
		require.NoError(t, err)
		require.True(t, post.Empty())
	})

	t.Run("form too large", func(t *testing.T) {
		e := getEnv()
		e[RequestMethod] = "POST"
		e[Input] = strings.NewReader("a=" + strings.Repeat("b", 20))
		_, err := NewRequest(e, 10).POST()
		require.ErrorIs(t, err, status.ErrBodyTooLarge)
	})

	t.Run("malformed query", func(t *testing.T) {
		e := getEnv()
		e[QueryString] = "_method=put&a=%zz&b=c"
		r := NewRequest(e, 0)
		_, err := r.GET()
		require.ErrorIs(t, err, status.ErrURLDecoding)
		_, found := r.Param("a")
		require.False(t, found)
		_, found = r.Param("b")
		require.False(t, found)

		value, found := r.Param("_method")
		require.True(t, found)
		require.Equal(t, "put", value)
	})

	t.Run("parameter names are case-sensitive", func(t *testing.T) {
		e := getEnv()
		e[QueryString] = "_METHOD=delete&Page=3&page=2"
		r := NewRequest(e, 0)
		_, found := r.Param("_method")
		require.False(t, found)

		value, _ := r.Param("page")
		require.Equal(t, "2", value)
		value, _ = r.Param("Page")
		require.Equal(t, "3", value)
	})

	t.Run("flags have no value", func(t *testing.T) {
		e := getEnv()
		e[QueryString] = "_method&debug"
		r := NewRequest(e, 0)
		value, found := r.Param("_method")
		require.True(t, found)
		require.Empty(t, value)
	})

	t.Run("cookies", func(t *testing.T) {
		e := getEnv()
		e["HTTP_COOKIE"] = "waves.session=abc; theme=dark; waves.session=other; broken"
		r := NewRequest(e, 0)
		require.Equal(t, []string{"waves.session", "theme"}, r.Cookies().Keys())

		value, found := r.Cookie("waves.session")
		require.True(t, found)
		require.Equal(t, "abc", value)
	})

	t.Run("media type", func(t *testing.T) {
		e := getEnv()
		e[ContentType] = " Text/HTML ; charset=utf-8"
		require.Equal(t, "text/html", NewRequest(e, 0).MediaType())
	})

	t.Run("form data", func(t *testing.T) {
		for _, tc := range []struct {
			contentType string
			form        bool
		}{
			{"", true},
			{"application/x-www-form-urlencoded", true},
			{"Application/X-WWW-Form-Urlencoded ; charset=utf-8", true},
			{"multipart/form-data; boundary=x", false},
			{"application/json", false},
		} {
			e := getEnv()
			e[RequestMethod] = "POST"
			e[ContentType] = tc.contentType
			require.Equal(t, tc.form, NewRequest(e, 0).IsFormData(), tc.contentType)
		}

		require.False(t, NewRequest(getEnv(), 0).IsFormData())
	})
}

func TestMembers(t *testing.T) {
	call := func(r *Request, name string, args ...any) (any, error) {
		member, found := r.Member(name)
		require.True(t, found, name)
		return member(args...)
	}

	t.Run("values", func(t *testing.T) {
		r := NewRequest(getEnv(), 0)
		value, err := call(r, "host")
		require.NoError(t, err)
		require.Equal(t, "www.fubar.com", value)

		value, err = call(r, "port")
		require.NoError(t, err)
		require.Equal(t, 8080, value)
	})

	t.Run("absent values are nil", func(t *testing.T) {
		r := NewRequest(getEnv(), 0)
		value, err := call(r, "user_agent")
		require.NoError(t, err)
		require.Nil(t, value)

		value, err = call(r, "media_type")
		require.NoError(t, err)
		require.Nil(t, value)
	})

	t.Run("predicates", func(t *testing.T) {
		r := NewRequest(getEnv(), 0)
		value, err := call(r, "get?")
		require.NoError(t, err)
		require.Equal(t, true, value)

		value, err = call(r, "post?")
		require.NoError(t, err)
		require.Equal(t, false, value)
	})

	t.Run("params", func(t *testing.T) {
		r := NewRequest(getEnv(), 0)
		value, err := call(r, "params", "page")
		require.NoError(t, err)
		require.Equal(t, "2", value)

		value, err = call(r, "params", "missing")
		require.NoError(t, err)
		require.Nil(t, value)

		value, err = call(r, "params")
		require.NoError(t, err)
		require.Equal(t, 2, value.(*kv.Storage).Len())

		_, err = call(r, "params", 1)
		require.Error(t, err)
	})

	t.Run("arity", func(t *testing.T) {
		r := NewRequest(getEnv(), 0)
		_, err := call(r, "host", "extra")
		require.ErrorIs(t, err, ErrArguments)
	})

	t.Run("unknown", func(t *testing.T) {
		_, found := NewRequest(getEnv(), 0).Member("flux_capacitor")
		require.False(t, found)
	})
}
