package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"asset-dashboard/backend/app/dto"
	jwtutil "asset-dashboard/backend/app/jwt"
	"asset-dashboard/backend/app/services"
	"asset-dashboard/backend/global"
)

type AuthController struct {
	Users  *services.UserService
	Signer *jwtutil.Signer
}

func NewAuthController(users *services.UserService, signer *jwtutil.Signer) *AuthController {
	return &AuthController{Users: users, Signer: signer}
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}
	u, err := c.Users.ValidateCredentials(req.Username, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		global.Logger.Warn().Str("user", req.Username).Msg("login failed")
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		global.Logger.Error().Err(err).Str("user", req.Username).Msg("login lookup failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	token, exp, err := c.Signer.Sign(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token error")
		return
	}
	writeJSON(w, http.StatusOK, dto.TokenResponse{AccessToken: token, Role: string(u.Role), ExpiresAt: exp.Unix()})
}
