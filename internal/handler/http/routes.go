package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.NotFound(h.notFound)

	// routes without authorization; csrf is applied per group so that
	// unknown paths and methods resolve to 404/405 first
	router.Group(func(r chi.Router) {
		r.Use(h.csrf)

		r.Get("/", h.index)
		r.Get("/version", h.getServerVersion)

		r.Get("/signup", h.signupPage)
		r.Post("/signup", h.signup)
		r.Get("/login", h.loginPage)
		r.Post("/login", h.login)
		r.Post("/logout", h.logout)
	})

	// routes behind the login gate
	router.Group(func(r chi.Router) {
		r.Use(h.csrf, h.requireLogin)
		r.Get("/dashboard", h.dashboard)
	})

	router.MethodNotAllowed(h.CheckHTTPMethod(router))

	return router
}
