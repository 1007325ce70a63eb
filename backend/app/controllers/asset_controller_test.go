package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"asset-dashboard/backend/app/dto"
	"asset-dashboard/backend/app/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAssets struct {
	flattened bool
	toggled   []string
	setTo     map[string]int
	shutDown  []string
	loads     map[string]float64
	err       error
}

func (s *stubAssets) SystemStatus(_ context.Context, flatten bool) (dto.AssetMap, error) {
	s.flattened = flatten
	if s.err != nil {
		return nil, s.err
	}
	return dto.AssetMap{
		{Key: "2", Info: dto.AssetInfo{Type: "outlet", Status: 1}},
		{Key: "1", Info: dto.AssetInfo{Type: "pdu", Status: 0}},
	}, nil
}

func (s *stubAssets) AssetStatus(_ context.Context, key string) (dto.AssetInfo, error) {
	if s.err != nil {
		return dto.AssetInfo{}, s.err
	}
	return dto.AssetInfo{Key: key, Type: "server", Status: 1}, nil
}

func (s *stubAssets) Toggle(_ context.Context, key string) (dto.AssetInfo, error) {
	if s.err != nil {
		return dto.AssetInfo{}, s.err
	}
	s.toggled = append(s.toggled, key)
	return dto.AssetInfo{Key: key, Type: "server", Status: 0}, nil
}

func (s *stubAssets) SetStatus(_ context.Context, key string, status int) (dto.AssetInfo, error) {
	if s.err != nil {
		return dto.AssetInfo{}, s.err
	}
	if s.setTo == nil {
		s.setTo = map[string]int{}
	}
	s.setTo[key] = status
	return dto.AssetInfo{Key: key, Type: "server", Status: status}, nil
}

func (s *stubAssets) ShutDown(_ context.Context, key string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.shutDown = append(s.shutDown, key)
	return 0, nil
}

func (s *stubAssets) UpdateLoad(_ context.Context, key string, amps float64) error {
	if s.err != nil {
		return s.err
	}
	if s.loads == nil {
		s.loads = map[string]float64{}
	}
	s.loads[key] = amps
	return nil
}

func serve(c *AssetController, method, pattern, target, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	switch {
	case strings.HasSuffix(pattern, "/toggle"):
		mux.HandleFunc(pattern, c.Toggle)
	case strings.HasSuffix(pattern, "/power"):
		mux.HandleFunc(pattern, c.Power)
	case strings.HasSuffix(pattern, "/load"):
		mux.HandleFunc(pattern, c.Load)
	case strings.HasSuffix(pattern, "{key}"):
		mux.HandleFunc(pattern, c.Get)
	default:
		mux.HandleFunc(pattern, c.List)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestListKeepsOrder(t *testing.T) {
	stub := &stubAssets{}
	rec := serve(NewAssetController(stub), http.MethodGet, "GET /assets", "/assets?flatten=true", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, stub.flattened)
	body := rec.Body.String()
	assert.Less(t, strings.Index(body, `"2"`), strings.Index(body, `"1"`))

	var m dto.AssetMap
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, []string{"2", "1"}, m.Keys())
}

func TestGetAsset(t *testing.T) {
	rec := serve(NewAssetController(&stubAssets{}), http.MethodGet, "GET /assets/{key}", "/assets/42", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var info dto.AssetInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "42", info.Key)
}

func TestToggleAsset(t *testing.T) {
	stub := &stubAssets{}
	rec := serve(NewAssetController(stub), http.MethodPost, "POST /assets/{key}/toggle", "/assets/7/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"7"}, stub.toggled)
}

func TestPowerAsset(t *testing.T) {
	stub := &stubAssets{}
	rec := serve(NewAssetController(stub), http.MethodPost, "POST /assets/{key}/power", "/assets/7/power", `{"status":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stub.setTo["7"])

	rec = serve(NewAssetController(stub), http.MethodPost, "POST /assets/{key}/power", "/assets/7/power", `nope`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPowerGracefulShutsDown(t *testing.T) {
	stub := &stubAssets{}
	rec := serve(NewAssetController(stub), http.MethodPost, "POST /assets/{key}/power", "/assets/7/power", `{"status":0,"graceful":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"7"}, stub.shutDown)
	assert.Empty(t, stub.setTo)

	// graceful only applies to powering off
	rec = serve(NewAssetController(stub), http.MethodPost, "POST /assets/{key}/power", "/assets/7/power", `{"status":1,"graceful":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stub.setTo["7"])
	assert.Len(t, stub.shutDown, 1)
}

func TestSetLoad(t *testing.T) {
	stub := &stubAssets{}
	rec := serve(NewAssetController(stub), http.MethodPut, "PUT /assets/{key}/load", "/assets/4/load", `{"load":1.25}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 1.25, stub.loads["4"], 1e-9)

	for _, body := range []string{`{}`, `nope`} {
		rec = serve(NewAssetController(stub), http.MethodPut, "PUT /assets/{key}/load", "/assets/4/load", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	rec = serve(NewAssetController(&stubAssets{err: fmt.Errorf("%w: -1", services.ErrInvalidLoad)}), http.MethodPut, "PUT /assets/{key}/load", "/assets/4/load", `{"load":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssetErrorsMapToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", fmt.Errorf("%w: 9", services.ErrAssetNotFound), http.StatusNotFound},
		{"parents off", fmt.Errorf("%w: 9", services.ErrParentsOff), http.StatusConflict},
		{"cancelled", context.Canceled, http.StatusServiceUnavailable},
		{"other", fmt.Errorf("redis down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewAssetController(&stubAssets{err: tt.err}), http.MethodPost, "POST /assets/{key}/toggle", "/assets/9/toggle", "")
			assert.Equal(t, tt.code, rec.Code)

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}
