package auth

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/vetstoria/k9facts/pkg/auth/key"
)

var ErrNoKeyFound error = errors.New("no key found")
var ErrInvalidToken error = errors.New("invalid token")

// NewJWS signs for claim and returns a JWS (JSON Web Signature) token string
//
// # Args
//
// - kid: Key ID
//
// - k: Key to sign
//
// - claims: Claims to be signed
//
// # Returns
//
// - string: JWT token string
//
// - error: from [jwt.Token.SignedString]
func NewJWS[C jwt.Claims](kid string, k key.Key, claims C) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tok.Header["kid"] = kid
	return tok.SignedString(k.ToSign())
}

// VerifyJWS verifies a JWS (JSON Web Signature) token and returns the claims
//
// # Args
//
// - keychain: Keychain to find the key to verify the token
//
// - token: JWT token string
//
// # Returns
//
// - C: Claims. The type C should be a pointer to a struct that implements [jwt.Claims].
//
// - error: can be [ErrNoKeyFound] when available key is not found in the Keychain,
// or [ErrInvalidToken] (wrapped) when the token is malformed, expired or signed
// with an unknown key.
func VerifyJWS[C jwt.Claims](keychain Keychain, token string) (C, error) {
	now := time.Now()

	_c := *new(C)

	{
		rc := reflect.ValueOf(_c)
		if rc.Kind() != reflect.Ptr {
			return *new(C), errors.New("claims type must be a pointer")
		}

		val := reflect.New(rc.Type().Elem()).Interface()
		cp := val.(C)
		_c = cp
	}

	tok, err := jwt.ParseWithClaims(token, _c, func(t *jwt.Token) (interface{}, error) {
		q := []KeyRequirement{
			WithExpAfter(now),
			WithAlg(t.Method.Alg()),
		}
		if kid, ok := t.Header["kid"].(string); ok {
			q = append(q, WithKeyId(kid))
		}
		_, k, ok := keychain.GetKey(q...)
		if !ok {
			return nil, ErrNoKeyFound
		}
		return k.ToVerify(), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return *new(C), errors.Join(ErrInvalidToken, err)
		}
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return *new(C), errors.Join(ErrInvalidToken, err)
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return *new(C), errors.Join(ErrInvalidToken, err)
		}
		return *new(C), err
	}
	if c, ok := tok.Claims.(C); ok {
		return c, nil
	} else {
		return *new(C), fmt.Errorf("%w: unexpected claims type: %T", ErrInvalidToken, tok.Claims)
	}
}

type KeyRequirement func(kid string, k key.Key) bool

// WithAlg returns a KeyRequirement that filters the key by the algorithm.
func WithAlg(alg string) KeyRequirement {
	return func(_ string, k key.Key) bool {
		return k.Alg() == alg
	}
}

// WithExpAfter returns a KeyRequirement that filters the key by the expiration time.
//
// It returns true if the key's expiration time is after the given time.
func WithExpAfter(t time.Time) KeyRequirement {
	return func(_ string, k key.Key) bool {
		return k.Exp().After(t)
	}
}

// WithKeyId returns a KeyRequirement that filters the key by the Key ID.
func WithKeyId(kid string) KeyRequirement {
	return func(_kid string, _ key.Key) bool {
		return _kid == kid
	}
}

type Keychain interface {
	// GetKey a key from the keychain
	//
	// # Args
	//
	// - req: Requirements of the key. If multiple keys satisfy requirements, random one is returned.
	//
	// # Returns
	//
	// - string: Key ID of the key found. If not found, it returns an empty string
	//
	// - Key: The key found. If not found, it returns nil
	//
	// - bool: True if the key is found
	GetKey(req ...KeyRequirement) (string, key.Key, bool)

	// Set a key in the keychain. If the key for Key ID exists, it is overwritten.
	//
	// # Args
	//
	// - kid: Key ID
	//
	// - key: Key to set
	Set(kid string, k key.Key)

	// Expire removes keys which are expired at the given time.
	Expire(now time.Time)
}

type memKeychain struct {
	mux  sync.RWMutex
	keys map[string]key.Key
}

// NewKeychain creates an in-memory Keychain.
func NewKeychain() Keychain {
	return &memKeychain{keys: map[string]key.Key{}}
}

func (kc *memKeychain) GetKey(req ...KeyRequirement) (string, key.Key, bool) {
	kc.mux.RLock()
	defer kc.mux.RUnlock()

KEY:
	for kid, k := range kc.keys {
		for _, r := range req {
			if !r(kid, k) {
				continue KEY
			}
		}
		return kid, k, true
	}
	return "", nil, false
}

func (kc *memKeychain) Set(kid string, k key.Key) {
	kc.mux.Lock()
	defer kc.mux.Unlock()
	kc.keys[kid] = k
}

func (kc *memKeychain) Expire(now time.Time) {
	kc.mux.Lock()
	defer kc.mux.Unlock()
	for kid, k := range kc.keys {
		if !k.Exp().After(now) {
			delete(kc.keys, kid)
		}
	}
}
