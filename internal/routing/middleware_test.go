package routing

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whitelabel/internal/tenant/service"
)

type captured struct {
	path    string
	headers http.Header
	tenant  string
}

func serve(t *testing.T, c *Classifier, req *http.Request) (*httptest.ResponseRecorder, captured) {
	t.Helper()
	var got captured
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.headers = r.Header.Clone()
		if tenant, ok := TenantFromContext(r.Context()); ok {
			got.tenant = tenant.Slug
		}
		w.WriteHeader(http.StatusOK)
	})
	rt := NewRouter(c, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	rec := httptest.NewRecorder()
	rt.Middleware(next).ServeHTTP(rec, req)
	return rec, got
}

func TestMiddlewareTenantRequest(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "http://acme.biz/pricing?plan=pro", nil)
	req.Header.Set("X-Tenant-ID", "spoofed")
	req.Header.Set("X-Tenant-Admin", "true")

	rec, got := serve(t, f.classifier, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/_sites/acme/pricing", got.path)
	assert.Equal(t, "acme", got.tenant)
	assert.Equal(t, f.acme.ID.String(), got.headers.Get(HeaderTenantID))
	assert.Equal(t, "acme", got.headers.Get(HeaderTenantSlug))
	assert.Equal(t, "Acme Agency", got.headers.Get(HeaderTenantName))
	assert.Empty(t, got.headers.Get("X-Tenant-Admin"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, TenantCookieName, cookies[0].Name)
	assert.Equal(t, "acme", cookies[0].Value)
	assert.Equal(t, int(DefaultCookieTTL.Seconds()), cookies[0].MaxAge)
	assert.False(t, cookies[0].Secure)
}

func TestMiddlewarePassThroughPath(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Host = "acme.platform.test"
	req.Header.Set("X-Forwarded-Proto", "https")

	rec, got := serve(t, f.classifier, req)

	assert.Equal(t, "/dashboard", got.path)
	assert.Equal(t, "acme", got.tenant)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.True(t, rec.Result().Cookies()[0].Secure)
}

func TestMiddlewareUnrecognizedHost(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/pricing", nil)
	req.Host = "globex.io"
	req.Header.Set("X-Tenant-Slug", "acme")

	rec, got := serve(t, f.classifier, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/pricing", got.path)
	assert.Empty(t, got.tenant)
	assert.Empty(t, got.headers.Get(HeaderTenantSlug), "spoofed tenant headers are stripped")
	assert.Empty(t, rec.Result().Cookies())
}

func TestMiddlewareFailsOpen(t *testing.T) {
	c := NewClassifier(service.NewTenantService(unavailableStore{}), []string{"platform.test"}, nil)
	req := httptest.NewRequest(http.MethodGet, "/pricing", nil)
	req.Host = "acme.biz"

	rec, got := serve(t, c, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/pricing", got.path)
	assert.Empty(t, got.tenant)
}

func TestPlaceholder(t *testing.T) {
	f := newFixture(t)
	rt := NewRouter(f.classifier, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	h := rt.Middleware(Placeholder())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "acme.biz"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp PlaceholderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "tenant", resp.Surface)
	assert.Equal(t, "acme", resp.TenantSlug)
	assert.Equal(t, "/_sites/acme/", resp.Path)
}

func TestUpstreamPreservesHostAndTenantHeaders(t *testing.T) {
	var gotHost, gotSlug, gotPath string
	app := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHost = r.Host
		gotSlug = r.Header.Get(HeaderTenantSlug)
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer app.Close()

	target, err := url.Parse(app.URL)
	require.NoError(t, err)

	f := newFixture(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewRouter(f.classifier, WithLogger(logger)).Middleware(NewUpstream(target, logger))

	req := httptest.NewRequest(http.MethodGet, "/pricing", nil)
	req.Host = "acme.biz"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "acme.biz", gotHost)
	assert.Equal(t, "acme", gotSlug)
	assert.Equal(t, "/_sites/acme/pricing", gotPath)
}

func TestUpstreamUnavailable(t *testing.T) {
	target, err := url.Parse("http://127.0.0.1:1")
	require.NoError(t, err)

	h := NewUpstream(target, slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
