package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	apiauth "github.com/vetstoria/k9facts/pkg/api/types/auth"
	apierr "github.com/vetstoria/k9facts/pkg/api/types/errors"
	"github.com/vetstoria/k9facts/pkg/auth"
	"github.com/vetstoria/k9facts/pkg/utils/rfctime"
)

// AuthTokenHandler exchanges admin credentials for an api token.
//
// Keys to sign tokens are taken from kc. Register at least one key
// before routing requests here.
func AuthTokenHandler(adminUser string, adminPassword string, kc auth.Keychain, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := apiauth.TokenRequest{}
		if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
			return apierr.BadRequest("request body should be a JSON object with user and password", err)
		}

		userOk := subtle.ConstantTimeCompare([]byte(req.User), []byte(adminUser)) == 1
		passOk := subtle.ConstantTimeCompare([]byte(req.Password), []byte(adminPassword)) == 1
		if !userOk || !passOk {
			return apierr.Unauthorized("user or password is wrong", nil)
		}

		now := time.Now()
		expiresAt := now.Add(ttl)

		// issuing is a good moment to drop keys which can sign nothing anymore.
		kc.Expire(now)

		kid, k, ok := kc.GetKey(auth.WithExpAfter(expiresAt))
		if !ok {
			return apierr.InternalServerError(errors.New("no signing key is available"))
		}

		token, err := auth.NewJWS(kid, k, &auth.UserClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   req.User,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
			UserName: req.User,
		})
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiauth.TokenResponse{
			Token:     token,
			ExpiresAt: rfctime.RFC3339(expiresAt),
		})
	}
}

// context key where TokenAuthMiddleware stores the verified user name.
const ContextKeyUserName = "userName"

// TokenAuthMiddleware rejects requests without a valid Bearer token.
func TokenAuthMiddleware(kc auth.Keychain) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found {
				return apierr.Unauthorized("Bearer token is required", nil)
			}

			claims, err := auth.VerifyJWS[*auth.UserClaims](kc, token)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrNoKeyFound) {
					return apierr.Unauthorized("token is invalid or expired", err)
				}
				return apierr.InternalServerError(err)
			}

			c.Set(ContextKeyUserName, claims.UserName)
			return next(c)
		}
	}
}
