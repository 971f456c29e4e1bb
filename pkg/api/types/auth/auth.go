package auth

import (
	"github.com/vetstoria/k9facts/pkg/utils/rfctime"
)

type TokenRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token     string          `json:"token"`
	ExpiresAt rfctime.RFC3339 `json:"expiresAt"`
}
