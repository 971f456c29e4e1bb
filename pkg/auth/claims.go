package auth

import (
	jwt "github.com/golang-jwt/jwt/v5"
)

// UserClaims is the claim set carried by api tokens.
type UserClaims struct {
	jwt.RegisteredClaims
	UserName string `json:"userName"`
}
