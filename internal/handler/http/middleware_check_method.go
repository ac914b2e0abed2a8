// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns an [http.HandlerFunc] that is intended to be
// registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// Chi calls it when a request path matches a registered route but the HTTP
// method is not handled. The handler looks the route up by its exact
// pattern, lists its methods in the Allow header and renders the 405 page.
// A request whose path matches no pattern exactly is answered with 404.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(h.CheckHTTPMethod(router))
func (h *Handler) CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		requestedURL := r.URL.Path

		// Search for a route whose pattern exactly matches the requested path.
		var foundRoute *chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == requestedURL {
				foundRoute = &route
				break
			}
		}
		if foundRoute == nil {
			h.notFound(w, r)
			return
		}

		allowed := make([]string, 0, len(foundRoute.Handlers))
		for method := range foundRoute.Handlers {
			allowed = append(allowed, method)
		}
		sort.Strings(allowed)

		w.Header().Set("Allow", strings.Join(allowed, ", "))
		h.renderError(w, r, http.StatusMethodNotAllowed, "")
	}
}
