// Package token issues and verifies HMAC-signed JWT bearer tokens.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell/posts-api/internal/core/domain"
)

// Claims is the token payload: the user id plus the registered expiry.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTProvider implements ports.TokenProvider. Verification is a pure function
// of the token, the key and the clock; no store is consulted.
type JWTProvider struct {
	key    []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTProvider returns a provider for the given HMAC algorithm (HS256, HS384, HS512).
func NewJWTProvider(key, algorithm string, ttl time.Duration) (*JWTProvider, error) {
	if key == "" {
		return nil, fmt.Errorf("token: signing key is empty")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("token: unsupported algorithm %q", algorithm)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token: ttl must be positive")
	}
	return &JWTProvider{key: []byte(key), method: method, ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for userID that expires ttl from now.
func (p *JWTProvider) Issue(userID string) (string, error) {
	now := p.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(p.method, claims).SignedString(p.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded user id.
func (p *JWTProvider) Verify(raw string) (string, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (interface{}, error) { return p.key, nil },
		jwt.WithValidMethods([]string{p.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil || !tkn.Valid {
		return "", domain.ErrInvalidCredentials
	}
	if claims.UserID == "" {
		return "", domain.ErrInvalidCredentials
	}
	return claims.UserID, nil
}
