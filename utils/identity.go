package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/unbem/unbem/config"
)

// IdentityClaims carries the opaque anonymous identity issued per client.
// The subject is a random UUID; no account or profile hangs off it. It scopes
// mood storage and attributes forum writes without ever being displayed.
type IdentityClaims struct {
	Identity string `json:"identity"`
	jwt.RegisteredClaims
}

// Identity tokens are long-lived: the identity must stay stable for a
// browser profile, and there is nothing to protect behind it.
const identityTokenTTL = 365 * 24 * time.Hour

// NewIdentityToken mints a fresh anonymous identity and the signed token
// carrying it.
func NewIdentityToken() (identity, token string, err error) {
	cfg := config.Get()
	identity = uuid.NewString()

	claims := IdentityClaims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(identityTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	return identity, token, err
}

// ParseIdentityToken validates a token and returns the identity it carries.
func ParseIdentityToken(tokenStr string) (string, error) {
	cfg := config.Get()
	parsed, err := jwt.ParseWithClaims(tokenStr, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(*IdentityClaims)
	if !ok || !parsed.Valid || claims.Identity == "" {
		return "", errors.New("invalid identity token")
	}
	return claims.Identity, nil
}
