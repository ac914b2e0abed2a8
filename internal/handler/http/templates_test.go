package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-auth-portal/internal/utils"
	"github.com/MKhiriev/go-auth-portal/models"
)

func TestPages_Execute(t *testing.T) {
	for _, page := range []string{pageLogin, pageSignup, pageError} {
		t.Run(page, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, defaultPages.execute(&buf, page, pageData{Title: "T", Status: http.StatusForbidden}))
			assert.Contains(t, buf.String(), "<title>T | Auth Portal</title>")
		})
	}

	t.Run(pageDashboard, func(t *testing.T) {
		user := testUser()
		var buf bytes.Buffer
		require.NoError(t, defaultPages.execute(&buf, pageDashboard, pageData{Title: "Dashboard", User: &user}))
		assert.Contains(t, buf.String(), "Signed in as <strong>alice</strong>")
	})
}

func TestPages_UnknownPage(t *testing.T) {
	err := defaultPages.execute(&bytes.Buffer{}, "missing", pageData{})
	assert.ErrorIs(t, err, errUnknownPage)
}

func TestRender_AddsContextValues(t *testing.T) {
	h := newTestHandler()
	user := testUser()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := utils.WithAuthenticated(req.Context(), user, models.Session{})
	ctx = context.WithValue(ctx, utils.CSRFTokenCtxKey, "form-token")
	rr := httptest.NewRecorder()

	h.render(rr, req.WithContext(ctx), http.StatusAccepted, pageLogin, pageData{Title: "Log in"})

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Contains(t, rr.Body.String(), `value="form-token"`)
	assert.Contains(t, rr.Body.String(), "Signed in as")
}

func TestRender_FailureIsPlain500(t *testing.T) {
	h := newTestHandler()
	rr := httptest.NewRecorder()

	h.render(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "missing", pageData{})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal Server Error\n", rr.Body.String())
}
