package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/middlewares"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	site  services.SiteContext
	calls int
}

func (s *stubProvider) Load(ctx context.Context) services.SiteContext {
	s.calls++
	return s.site
}

func TestSiteContextMiddleware(t *testing.T) {
	provider := &stubProvider{site: services.SiteContext{Categories: []models.Category{{Name: "Masks"}}}}

	var got services.SiteContext
	handler := middlewares.SiteContextMiddleware(provider)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = helpers.SiteContextFrom(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/catalog/", nil))
	assert.Equal(t, 1, provider.calls)
	assert.Len(t, got.Categories, 1)
	assert.Nil(t, got.ContactInfo)
}

func TestMethodOverrideMiddleware(t *testing.T) {
	var method string
	handler := middlewares.MethodOverrideMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
	}))

	form := url.Values{"_method": {"delete"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/products/1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, http.MethodDelete, method)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?_method=DELETE", nil))
	assert.Equal(t, http.MethodGet, method)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	handler := middlewares.RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get("X-Request-Id"))
}

func TestRequestLoggerRecoversPanics(t *testing.T) {
	handler := middlewares.RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
