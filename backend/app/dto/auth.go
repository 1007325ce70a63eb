package dto

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries the bearer token for the state-changing asset routes.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role,omitempty"`
	ExpiresAt   int64  `json:"expires_at,omitempty"`
}
