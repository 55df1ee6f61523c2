package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"

	"github.com/dmitrijs2005/lostfound/internal/common"
)

// Claims are the claims of a session token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// TokenIssuer signs session tokens with a process-local HMAC key.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenIssuer creates an issuer. The key must not be empty.
func NewTokenIssuer(key []byte, ttl time.Duration, now func() time.Time) (*TokenIssuer, error) {
	if len(key) == 0 {
		return nil, oops.Code("TOKEN_KEY").Errorf("signing key is required")
	}
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{key: key, ttl: ttl, now: now}, nil
}

// Issue returns a signed token for the user.
func (i *TokenIssuer) Issue(email, name string) (string, error) {
	id, err := common.MakeRandHexString(16)
	if err != nil {
		return "", oops.Code("TOKEN_SIGN").Wrapf(err, "generate token id")
	}

	issuedAt := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(i.ttl)),
		},
		Email: email,
		Name:  name,
	})

	s, err := token.SignedString(i.key)
	if err != nil {
		return "", oops.Code("TOKEN_SIGN").Wrapf(err, "sign session token")
	}
	return s, nil
}

// Parse verifies a token and returns its claims.
func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, oops.Code("TOKEN_INVALID").Wrapf(err, "parse session token")
	}
	if !token.Valid {
		return nil, oops.Code("TOKEN_INVALID").Errorf("session token is not valid")
	}
	return claims, nil
}
