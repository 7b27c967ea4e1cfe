package main

import (
	"html"
	"strings"

	"github.com/indigo-web/waves/http"
	"github.com/indigo-web/waves/http/mime"
	"github.com/indigo-web/waves/http/status"
)

const messagesKey = "messages"

// guestbook is a tiny demo application. The messages are kept per session.
func guestbook(request *http.Request) error {
	switch request.Path() {
	case "/":
		return showMessages(request)
	case "/messages":
		switch {
		case request.IsPost():
			return postMessage(request)
		case request.IsDelete():
			request.Session().Clear()
			return request.Redirect("/", "303")
		}

		request.Response().Code(status.MethodNotAllowed).String("method not allowed")
		return nil
	default:
		return request.NotFound()
	}
}

func showMessages(request *http.Request) error {
	messages := sessionMessages(request)

	if request.Accept().Default() == mime.JSON {
		request.Response().JSON(messages)
		return nil
	}

	var b strings.Builder
	b.WriteString("<ul>")
	for _, message := range messages {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(message))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")

	request.Response().String(b.String())
	return nil
}

func postMessage(request *http.Request) error {
	text, err := request.Call("params", "text")
	if err != nil {
		return err
	}

	if message, ok := text.(string); ok && len(message) > 0 {
		request.Session().Set(messagesKey, append(sessionMessages(request), message))
	}

	return request.Redirect("/", "303")
}

// sessionMessages tolerates both []string and []any, as the latter is what comes back
// from stores serializing to JSON.
func sessionMessages(request *http.Request) []string {
	value, _ := request.Session().Get(messagesKey)

	switch messages := value.(type) {
	case []string:
		return messages
	case []any:
		result := make([]string, 0, len(messages))
		for _, message := range messages {
			if str, ok := message.(string); ok {
				result = append(result, str)
			}
		}

		return result
	default:
		return []string{}
	}
}
