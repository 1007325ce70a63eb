package router

import (
	"net/http"

	"asset-dashboard/backend/app/controllers"
	"asset-dashboard/backend/app/middleware"
)

func NewRouter(httpCtrl *controllers.HTTPController, authCtrl *controllers.AuthController, assetCtrl *controllers.AssetController, mw *middleware.Auth) http.Handler {
	mux := http.NewServeMux()
	// public
	mux.HandleFunc("GET /ping", httpCtrl.Ping)
	mux.HandleFunc("POST /login", authCtrl.Login)
	mux.HandleFunc("GET /assets", assetCtrl.List)
	mux.HandleFunc("GET /assets/{key}", assetCtrl.Get)

	// state changes need a token; forcing a status is admin only
	mux.Handle("POST /assets/{key}/toggle", mw.RequireAuth(http.HandlerFunc(assetCtrl.Toggle)))
	mux.Handle("POST /assets/{key}/power", mw.RequireAdmin(http.HandlerFunc(assetCtrl.Power)))
	mux.Handle("PUT /assets/{key}/load", mw.RequireAdmin(http.HandlerFunc(assetCtrl.Load)))

	return mux
}
