package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-auth-portal/internal/app"
	"github.com/MKhiriev/go-auth-portal/internal/logger"
	"github.com/MKhiriev/go-auth-portal/internal/service"
	"github.com/MKhiriev/go-auth-portal/internal/utils"
	"github.com/MKhiriev/go-auth-portal/models"
)

const formFieldNext = "next"

func (h *Handler) signupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageSignup, pageData{Title: "Sign up"})
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("invalid form was passed")
		h.renderError(w, r, http.StatusBadRequest, app.MsgInvalidForm)
		return
	}

	form := models.SignupForm{
		Username:             r.PostForm.Get(models.FieldUsername),
		Email:                r.PostForm.Get(models.FieldEmail),
		Password:             r.PostForm.Get(models.FieldPassword),
		PasswordConfirmation: r.PostForm.Get(models.FieldPasswordConfirmation),
		FirstName:            r.PostForm.Get(models.FieldFirstName),
		LastName:             r.PostForm.Get(models.FieldLastName),
		Bio:                  r.PostForm.Get(models.FieldBio),
	}

	user, session, err := h.services.AuthService.Signup(ctx, form)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			log.Info().Err(err).Msg("signup form rejected")
			h.render(w, r, http.StatusBadRequest, pageSignup, pageData{
				Title:  "Sign up",
				Form:   signupFormValues(form),
				Errors: validationErr.Fields,
			})
			return
		}

		log.Err(err).Msg("unexpected error occurred during signup")
		h.fail(w, r, err)
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("user signed up")

	h.setSessionCookie(w, session)
	h.rotateCSRF(w, r)
	http.Redirect(w, r, h.cfg.SignupRedirectURL, http.StatusSeeOther)
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageLogin, pageData{
		Title: "Log in",
		Next:  safeNext(r.URL.Query().Get(formFieldNext)),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("invalid form was passed")
		h.renderError(w, r, http.StatusBadRequest, app.MsgInvalidForm)
		return
	}

	form := models.LoginForm{
		Username: r.PostForm.Get(models.FieldUsername),
		Password: r.PostForm.Get(models.FieldPassword),
		Next:     safeNext(r.PostForm.Get(formFieldNext)),
	}

	user, session, err := h.services.AuthService.Login(ctx, form)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			log.Info().Err(err).Msg("login form rejected")
			h.render(w, r, http.StatusBadRequest, pageLogin, pageData{
				Title:  "Log in",
				Form:   map[string]string{models.FieldUsername: form.Username},
				Errors: validationErr.Fields,
				Next:   form.Next,
			})
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			// The response must not depend on which check failed, so the
			// username is not echoed back either.
			log.Info().Err(err).Msg("login failed")
			h.render(w, r, http.StatusUnauthorized, pageLogin, pageData{
				Title:     "Log in",
				FormError: app.MsgInvalidCredentials,
				Next:      form.Next,
			})
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			h.fail(w, r, err)
			return
		}
	}

	log.Info().Int64("user_id", user.UserID).Msg("user successfully logged in")

	h.setSessionCookie(w, session)
	h.rotateCSRF(w, r)

	target := h.cfg.LoginRedirectURL
	if form.Next != "" {
		target = form.Next
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// logout always succeeds from the client's point of view: the cookie is
// cleared and the client redirected even if the session was already gone.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if token := h.sessionToken(r); token != "" {
		if err := h.services.AuthService.Logout(r.Context(), token); err != nil {
			log.Err(err).Msg("error destroying session on logout")
		}
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, h.cfg.LogoutRedirectURL, http.StatusSeeOther)
}

// safeNext drops redirect targets that would leave the site.
func safeNext(next string) string {
	if utils.IsSafeRedirect(next) {
		return next
	}
	return ""
}

func signupFormValues(form models.SignupForm) map[string]string {
	return map[string]string{
		models.FieldUsername:  form.Username,
		models.FieldEmail:     form.Email,
		models.FieldFirstName: form.FirstName,
		models.FieldLastName:  form.LastName,
		models.FieldBio:       form.Bio,
	}
}
