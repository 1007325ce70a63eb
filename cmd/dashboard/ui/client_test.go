package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"asset-dashboard/backend/app/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend serves a tiny two-asset system and counts logins.
type fakeBackend struct {
	mu       sync.Mutex
	logins   int
	toggles  []string
	token    string
	statuses map[string]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{token: "tok-1", statuses: map[string]int{"1": 1, "2": 0}}
}

func (f *fakeBackend) assets() dto.AssetMap {
	load := 1.5
	return dto.AssetMap{
		{Key: "1", Info: dto.AssetInfo{Type: "pdu", Status: f.statuses["1"], Load: &load,
			Children: dto.AssetMap{{Key: "11", Info: dto.AssetInfo{Type: "outlet", Status: 1}}}}},
		{Key: "2", Info: dto.AssetInfo{Type: "server", Status: f.statuses["2"]}},
	}
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "admin" || req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "invalid credentials"})
			return
		}
		f.mu.Lock()
		f.logins++
		tok := f.token
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(dto.TokenResponse{AccessToken: tok})
	})
	mux.HandleFunc("GET /assets", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(f.assets())
	})
	mux.HandleFunc("GET /assets/{key}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		info, ok := f.assets().Get(r.PathValue("key"))
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "asset not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(info)
	})
	mux.HandleFunc("POST /assets/{key}/toggle", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer "+f.token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		key := r.PathValue("key")
		f.toggles = append(f.toggles, key)
		if f.statuses[key] == 1 {
			f.statuses[key] = 0
		} else {
			f.statuses[key] = 1
		}
		info, _ := f.assets().Get(key)
		_ = json.NewEncoder(w).Encode(info)
	})
	return mux
}

func TestClientAssetsKeepOrder(t *testing.T) {
	srv := httptest.NewServer(newFakeBackend().handler())
	defer srv.Close()

	c := NewClient(srv.URL+"/", "admin", "secret")
	assets, err := c.Assets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, assets.Keys())

	info, ok := assets.Get("1")
	require.True(t, ok)
	require.NotNil(t, info.Load)
	assert.InDelta(t, 1.5, *info.Load, 1e-9)
	assert.Equal(t, []string{"11"}, info.Children.Keys())
}

func TestClientAssetNotFound(t *testing.T) {
	srv := httptest.NewServer(newFakeBackend().handler())
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "secret")
	_, err := c.Asset(context.Background(), "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "asset not found")
}

func TestClientToggleLogsInLazily(t *testing.T) {
	fb := newFakeBackend()
	srv := httptest.NewServer(fb.handler())
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "secret")
	_, err := c.Assets(context.Background())
	require.NoError(t, err)
	assert.Zero(t, fb.logins)

	info, err := c.Toggle(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, 1, info.Status)

	_, err = c.Toggle(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, 1, fb.logins)
	assert.Equal(t, []string{"2", "2"}, fb.toggles)
}

func TestClientToggleRetriesAfterRejectedToken(t *testing.T) {
	fb := newFakeBackend()
	srv := httptest.NewServer(fb.handler())
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "secret")
	_, err := c.Toggle(context.Background(), "1")
	require.NoError(t, err)

	fb.mu.Lock()
	fb.token = "tok-2"
	fb.mu.Unlock()

	info, err := c.Toggle(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 1, info.Status)
	assert.Equal(t, 2, fb.logins)
}

func TestClientBadCredentials(t *testing.T) {
	srv := httptest.NewServer(newFakeBackend().handler())
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "wrong")
	_, err := c.Toggle(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login")
}
