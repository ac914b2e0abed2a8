package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/MKhiriev/go-auth-portal/internal/logger"
	"github.com/MKhiriev/go-auth-portal/internal/utils"
	"github.com/MKhiriev/go-auth-portal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageLogin     = "login"
	pageSignup    = "signup"
	pageDashboard = "dashboard"
	pageError     = "error"
)

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format("02 Jan 2006, 15:04 MST")
	},
	"statusText": http.StatusText,
}

// pageData is the value every page template is executed with.
type pageData struct {
	Title     string
	CSRFToken string
	User      *models.User

	// Form holds submitted values to refill the form with. Passwords are
	// never put here.
	Form      map[string]string
	Errors    models.FieldErrors
	FormError string
	Next      string

	Status  int
	Message string
}

// pages holds one template set per page, each combining the page with the
// base layout.
type pages struct {
	set map[string]*template.Template
}

var defaultPages = mustParsePages(pageLogin, pageSignup, pageDashboard, pageError)

func mustParsePages(names ...string) *pages {
	p := &pages{set: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		p.set[name] = template.Must(template.New(name).Funcs(functions).
			ParseFS(templateFS, "templates/base.html", "templates/"+name+".html"))
	}
	return p
}

func (p *pages) execute(w io.Writer, name string, data pageData) error {
	t, ok := p.set[name]
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownPage, name)
	}
	return t.ExecuteTemplate(w, "base", data)
}

// render executes page into a buffer first so a failing template never
// leaves a half-written response behind.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	ctx := r.Context()

	data.CSRFToken = utils.GetCSRFTokenFromContext(ctx)
	if data.User == nil {
		if user, ok := utils.GetUserFromContext(ctx); ok {
			data.User = &user
		}
	}

	buf := new(bytes.Buffer)
	if err := h.pages.execute(buf, page, data); err != nil {
		logger.FromRequest(r).Err(err).Str("page", page).Msg("error rendering page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, pageError, pageData{
		Title:   http.StatusText(status),
		Status:  status,
		Message: message,
	})
}

// fail renders the generic error page for err. Details stay in the logs.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.renderError(w, r, statusFromError(err), "")
}
