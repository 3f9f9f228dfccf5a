// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-repo-pulse/internal/utils"
)

// CheckHTTPMethod returns the MethodNotAllowed handler of router. It answers
// 405 with an Allow header listing the methods registered for the path and a
// JSON error body.
//
// chi calls the handler only when the path matched a route, so the lookup
// walks the route tree (sub-routers included) for the same pattern. Patterns
// are compared literally; parameterised segments are not expanded.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed := allowedMethods(router, r.URL.Path)
		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		utils.WriteError(w, r, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func allowedMethods(routes chi.Routes, path string) []string {
	var methods []string
	_ = chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if route == path && !slices.Contains(methods, method) {
			methods = append(methods, method)
		}
		return nil
	})
	slices.Sort(methods)
	return methods
}
