package auth_test

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/vetstoria/k9facts/pkg/auth"
	"github.com/vetstoria/k9facts/pkg/auth/key"
	"github.com/vetstoria/k9facts/pkg/utils/try"
)

func TestJWS(t *testing.T) {
	t.Run("when a token is signed with a key in the keychain, it is verified", func(t *testing.T) {
		k := try.To(key.HS256(1*time.Hour, 32).Issue()).OrFatal(t)
		kc := auth.NewKeychain()
		kc.Set("kid-1", k)

		claims := &auth.UserClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
			},
			UserName: "admin",
		}
		token := try.To(auth.NewJWS("kid-1", k, claims)).OrFatal(t)

		verified, err := auth.VerifyJWS[*auth.UserClaims](kc, token)
		if err != nil {
			t.Fatal(err)
		}
		if verified.UserName != "admin" {
			t.Errorf("unexpected user name: %s", verified.UserName)
		}
	})

	t.Run("when a token is signed with a key not in the keychain, it is rejected", func(t *testing.T) {
		signer := try.To(key.HS256(1*time.Hour, 32).Issue()).OrFatal(t)
		other := try.To(key.HS256(1*time.Hour, 32).Issue()).OrFatal(t)

		kc := auth.NewKeychain()
		kc.Set("kid-1", other)

		claims := &auth.UserClaims{UserName: "admin"}
		token := try.To(auth.NewJWS("kid-1", signer, claims)).OrFatal(t)

		if _, err := auth.VerifyJWS[*auth.UserClaims](kc, token); !errors.Is(err, auth.ErrInvalidToken) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("when a token is expired, it is rejected", func(t *testing.T) {
		k := try.To(key.HS256(1*time.Hour, 32).Issue()).OrFatal(t)
		kc := auth.NewKeychain()
		kc.Set("kid-1", k)

		claims := &auth.UserClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Minute)),
			},
			UserName: "admin",
		}
		token := try.To(auth.NewJWS("kid-1", k, claims)).OrFatal(t)

		if _, err := auth.VerifyJWS[*auth.UserClaims](kc, token); !errors.Is(err, auth.ErrInvalidToken) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("when a token is garbage, it is rejected", func(t *testing.T) {
		k := try.To(key.HS256(1*time.Hour, 32).Issue()).OrFatal(t)
		kc := auth.NewKeychain()
		kc.Set("kid-1", k)

		if _, err := auth.VerifyJWS[*auth.UserClaims](kc, "not.a.token"); !errors.Is(err, auth.ErrInvalidToken) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("when the signing key in the keychain is expired, no key is found", func(t *testing.T) {
		k := try.To(key.HS256(-1*time.Hour, 32).Issue()).OrFatal(t)
		kc := auth.NewKeychain()
		kc.Set("kid-1", k)

		claims := &auth.UserClaims{UserName: "admin"}
		token := try.To(auth.NewJWS("kid-1", k, claims)).OrFatal(t)

		if _, err := auth.VerifyJWS[*auth.UserClaims](kc, token); !errors.Is(err, auth.ErrNoKeyFound) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestKeychain(t *testing.T) {
	t.Run("Expire removes keys past their expiration", func(t *testing.T) {
		fresh := try.To(key.HS256(1*time.Hour, 32).Issue()).OrFatal(t)
		stale := try.To(key.HS256(-1*time.Hour, 32).Issue()).OrFatal(t)

		kc := auth.NewKeychain()
		kc.Set("fresh", fresh)
		kc.Set("stale", stale)

		kc.Expire(time.Now())

		if _, _, ok := kc.GetKey(auth.WithKeyId("stale")); ok {
			t.Error("stale key is still in the keychain")
		}
		if _, _, ok := kc.GetKey(auth.WithKeyId("fresh")); !ok {
			t.Error("fresh key is gone")
		}
	})
}
