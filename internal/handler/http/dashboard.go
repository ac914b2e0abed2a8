package http

import (
	"net/http"

	"github.com/MKhiriev/go-auth-portal/internal/app"
	"github.com/MKhiriev/go-auth-portal/internal/logger"
	"github.com/MKhiriev/go-auth-portal/internal/utils"
)

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		// requireLogin did not run
		logger.FromRequest(r).Error().Msg("dashboard reached without an authenticated user")
		h.redirectToLogin(w, r)
		return
	}

	h.render(w, r, http.StatusOK, pageDashboard, pageData{
		Title: "Dashboard",
		User:  &user,
	})
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, app.MsgNotFound)
}
