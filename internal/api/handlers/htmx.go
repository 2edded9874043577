package handlers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// hxRequestHeader is set by htmx on every request it issues.
const hxRequestHeader = "HX-Request"

func isHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(hxRequestHeader), "true")
}

// pageComponent picks fragment for htmx requests and full otherwise.
// If fragment is nil, full is used for both.
func pageComponent(r *http.Request, fragment, full templ.Component) templ.Component {
	if isHTMXRequest(r) && fragment != nil {
		return fragment
	}
	return full
}

// renderHTML serves c through templ's handler with the given status.
// Rendering is buffered, so a render error writes nothing and is returned to
// the caller to choose the error response.
func renderHTML(w http.ResponseWriter, r *http.Request, status int, c templ.Component) error {
	var renderErr error
	templ.Handler(c,
		templ.WithStatus(status),
		templ.WithErrorHandler(func(_ *http.Request, err error) http.Handler {
			renderErr = err
			return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
		}),
	).ServeHTTP(w, r)
	return renderErr
}
