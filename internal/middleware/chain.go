package middleware

import "net/http"

// Chain applies middleware around h so that the first middleware given is
// the first to see a request.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
