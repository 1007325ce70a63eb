package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"asset-dashboard/backend/app/dto"
	"asset-dashboard/backend/app/middleware"
	"asset-dashboard/backend/app/services"
	"asset-dashboard/backend/global"
)

// AssetOperator is the part of services.AssetService the HTTP layer needs.
type AssetOperator interface {
	SystemStatus(ctx context.Context, flatten bool) (dto.AssetMap, error)
	AssetStatus(ctx context.Context, key string) (dto.AssetInfo, error)
	Toggle(ctx context.Context, key string) (dto.AssetInfo, error)
	SetStatus(ctx context.Context, key string, status int) (dto.AssetInfo, error)
	ShutDown(ctx context.Context, key string) (int, error)
	UpdateLoad(ctx context.Context, key string, amps float64) error
}

type AssetController struct{ Assets AssetOperator }

func NewAssetController(assets AssetOperator) *AssetController {
	return &AssetController{Assets: assets}
}

// List serves GET /assets. Components are nested unless ?flatten=true.
func (c *AssetController) List(w http.ResponseWriter, r *http.Request) {
	flatten := r.URL.Query().Get("flatten") == "true"
	assets, err := c.Assets.SystemStatus(r.Context(), flatten)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

func (c *AssetController) Get(w http.ResponseWriter, r *http.Request) {
	info, err := c.Assets.AssetStatus(r.Context(), r.PathValue("key"))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (c *AssetController) Toggle(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	info, err := c.Assets.Toggle(r.Context(), key)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	c.audit(r, key, info.Status)
	writeJSON(w, http.StatusOK, info)
}

func (c *AssetController) Power(w http.ResponseWriter, r *http.Request) {
	var req dto.PowerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	key := r.PathValue("key")
	if req.Graceful && req.Status != 1 {
		c.shutDown(w, r, key)
		return
	}
	info, err := c.Assets.SetStatus(r.Context(), key, req.Status)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	c.audit(r, key, info.Status)
	writeJSON(w, http.StatusOK, info)
}

func (c *AssetController) shutDown(w http.ResponseWriter, r *http.Request, key string) {
	status, err := c.Assets.ShutDown(r.Context(), key)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	c.audit(r, key, status)
	info, err := c.Assets.AssetStatus(r.Context(), key)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// Load serves PUT /assets/{key}/load.
func (c *AssetController) Load(w http.ResponseWriter, r *http.Request) {
	var req dto.LoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Load == nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	key := r.PathValue("key")
	if err := c.Assets.UpdateLoad(r.Context(), key, *req.Load); err != nil {
		c.fail(w, r, err)
		return
	}
	global.Logger.Info().Str("request_id", middleware.GetRequestID(r.Context())).Str("asset", key).Float64("load", *req.Load).Msg("asset load set")
	info, err := c.Assets.AssetStatus(r.Context(), key)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (c *AssetController) audit(r *http.Request, key string, status int) {
	ev := global.Logger.Info().Str("request_id", middleware.GetRequestID(r.Context())).Str("asset", key).Int("status", status)
	if claims := middleware.GetClaims(r.Context()); claims != nil {
		ev = ev.Str("user", claims.Username)
	}
	ev.Msg("asset status changed")
}

func (c *AssetController) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrAssetNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrParentsOff):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidLoad):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		global.Logger.Error().Err(err).Str("request_id", middleware.GetRequestID(r.Context())).Str("path", r.URL.Path).Msg("asset request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
