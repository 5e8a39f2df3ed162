package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// Chi answers 405 Method Not Allowed when a path matches a route but the
// method does not. This handler answers 404 Not Found instead, so callers
// probing with unsupported methods learn nothing about which routes exist.
// If the method turns out to be registered for the matched pattern, the
// request is forwarded to the router's normal pipeline.
//
// The lookup compares each registered route pattern against the raw request
// path; parameterised segments are not expanded.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var matched chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				matched = route
				break
			}
		}

		if _, ok := matched.Handlers[r.Method]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
