package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/actifly/api/internal/api"
	"github.com/actifly/api/internal/config"
	"github.com/actifly/api/internal/mail"
	"github.com/actifly/api/internal/signup"
	"github.com/actifly/api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSender records sent messages and can fail on demand.
type fakeSender struct {
	sent []*mail.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg *mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		AdminToken:     "s3cret",
		MailAPIKey:     "mail-key",
		MaxCapacity:    100,
		RequestTimeout: 5 * time.Second,
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, store *testutil.MemoryStore, sender mail.Sender) *Router {
	t.Helper()
	registry := signup.NewRegistry(store, cfg.MaxCapacity, slog.Default())
	return NewRouter(cfg, registry, sender, slog.Default())
}

func postForm(router *Router, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func signupForm(email, category, consent string) url.Values {
	form := url.Values{}
	form.Set("email", email)
	form.Set("category", category)
	form.Set("consent", consent)
	return form
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHandleBetaSignup(t *testing.T) {
	store := testutil.NewMemoryStore()
	router := newTestRouter(t, testConfig(), store, nil)

	rec := postForm(router, "/api/beta-signup", signupForm("User@Example.com", "android", "on"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	resp := decodeJSON[api.SignupResponse](t, rec)
	assert.True(t, resp.OK)
	assert.True(t, resp.Stored)
	assert.Equal(t, 1, resp.Total)

	records := store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "user@example.com", records[0].Email)
}

func TestHandleBetaSignup_CapturesCountryAndUserAgent(t *testing.T) {
	store := testutil.NewMemoryStore()
	router := newTestRouter(t, testConfig(), store, nil)

	form := signupForm("a@x.com", "ios", "on")
	req := httptest.NewRequest(http.MethodPost, "/api/beta-signup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("CloudFront-Viewer-Country", "DE")
	req.Header.Set("User-Agent", "Mozilla/5.0")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	records := store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "DE", records[0].Country)
	assert.Equal(t, "Mozilla/5.0", records[0].UserAgent)
}

func TestHandleBetaSignup_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		form     url.Values
		wantCode string
	}{
		{"missing fields", signupForm("", "android", "on"), "missing_fields"},
		{"invalid email", signupForm("not-an-email", "android", "on"), "invalid_email"},
		{"invalid category", signupForm("a@x.com", "windows", "on"), "invalid_category"},
		{"consent required", signupForm("a@x.com", "android", ""), "consent_required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, testConfig(), testutil.NewMemoryStore(), nil)

			rec := postForm(router, "/api/beta-signup", tt.form)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeJSON[api.ErrorResponse](t, rec)
			assert.False(t, resp.OK)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandleBetaSignup_Full(t *testing.T) {
	cfg := testConfig()
	cfg.MaxCapacity = 1
	store := testutil.NewMemoryStore(testutil.NewRecordBuilder().WithEmail("a@x.com").Build())
	router := newTestRouter(t, cfg, store, nil)

	rec := postForm(router, "/api/beta-signup", signupForm("b@x.com", "ios", "on"))

	require.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeJSON[api.ErrorResponse](t, rec)
	assert.False(t, resp.OK)
	assert.Equal(t, "Beta list is full", resp.Error)
	assert.True(t, resp.Full)
	assert.Equal(t, 1, resp.Max)
}

func TestHandleBetaSignup_UpsertAtCapacity(t *testing.T) {
	cfg := testConfig()
	cfg.MaxCapacity = 1
	store := testutil.NewMemoryStore(
		testutil.NewRecordBuilder().WithEmail("a@x.com").WithCategory("android").Build())
	router := newTestRouter(t, cfg, store, nil)

	rec := postForm(router, "/api/beta-signup", signupForm("a@x.com", "ios", "on"))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[api.SignupResponse](t, rec)
	assert.Equal(t, 1, resp.Total)

	records := store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "ios", records[0].Category)
}

func TestHandleBetaSignup_Contention(t *testing.T) {
	store := testutil.NewMemoryStore()
	store.ConflictNextSaves = 3
	router := newTestRouter(t, testConfig(), store, nil)

	rec := postForm(router, "/api/beta-signup", signupForm("a@x.com", "android", "on"))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeJSON[api.ErrorResponse](t, rec)
	assert.Equal(t, "contention_exceeded", resp.Code)
}

func TestHandleBetaStats(t *testing.T) {
	store := testutil.NewMemoryStore(
		testutil.NewRecordBuilder().WithEmail("a@x.com").WithCategory("android").Build(),
		testutil.NewRecordBuilder().WithEmail("b@x.com").WithCategory("ios").Build(),
	)
	router := newTestRouter(t, testConfig(), store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/beta-stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[api.StatsResponse](t, rec)
	assert.True(t, resp.OK)
	assert.Equal(t, 2, resp.Counts.Total)
	assert.Equal(t, 1, resp.Counts.Android)
	assert.Equal(t, 1, resp.Counts.IOS)
	assert.Equal(t, 100, resp.Max)
	assert.Equal(t, 100, resp.Quota.Total)
}

func TestHandleHealth(t *testing.T) {
	router := newTestRouter(t, testConfig(), testutil.NewMemoryStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[api.HealthResponse](t, rec)
	assert.Equal(t, "ok", resp.Status)
}

func TestRouter_CORSHeaders(t *testing.T) {
	router := newTestRouter(t, testConfig(), testutil.NewMemoryStore(), nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/beta-signup", nil)
	req.Header.Set("Origin", "https://actifly.app")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://actifly.app", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}
