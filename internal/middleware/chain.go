package middleware

import "net/http"

// Chain wraps h with the given middleware. The first middleware listed
// runs outermost, so requests pass through them in the order given.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
