package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/actifly/api/internal/api"
	"github.com/actifly/api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServerClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(&config.Config{APIEndpoint: srv.URL, AdminToken: "s3cret"}, slog.Default())
}

func TestStats(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/beta-admin", r.URL.Path)
		assert.Equal(t, "stats", r.URL.Query().Get("action"))
		assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(api.AdminStatsResponse{
			OK:             true,
			Counts:         api.Counts{Total: 5, Android: 2, IOS: 2, Google: 1},
			ListKeyVersion: "v1",
		})
	})

	resp, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, 5, resp.Counts.Total)
	assert.Equal(t, "v1", resp.ListKeyVersion)
}

func TestList(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "list", r.URL.Query().Get("action"))

		_ = json.NewEncoder(w).Encode(api.AdminListResponse{
			OK: true,
			List: []api.SignupRecord{
				{Email: "a@x.com", Category: "android", Timestamp: "2026-02-01T09:30:00Z"},
			},
		})
	})

	resp, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.List, 1)
	assert.Equal(t, "a@x.com", resp.List[0].Email)
}

func TestExport(t *testing.T) {
	csv := "email,category,ts,country,ua\na@x.com,android,2026-02-01T09:30:00Z,,\n"
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "export", r.URL.Query().Get("action"))
		_, _ = w.Write([]byte(csv))
	})

	body, err := client.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, csv, string(body))
}

func TestDo_ErrorResponse(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{OK: false, Error: "Unauthorized"})
	})

	_, err := client.Stats(context.Background())
	require.Error(t, err)
	assert.Equal(t, "[401] Unauthorized", err.Error())
}

func TestDo_NonJSONErrorBody(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("gateway exploded"))
	})

	_, err := client.Stats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.Contains(t, err.Error(), "gateway exploded")
}
