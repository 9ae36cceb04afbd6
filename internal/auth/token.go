package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/notesapp/notes-api/internal/domain"
)

// TokenIssuer mints and validates the bearer tokens handed out at login.
// Tokens are HS256 JWTs carrying the username as subject; validity is a
// pure function of signature and expiry, nothing is stored server-side.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// TTL reports the configured token lifetime.
func (i *TokenIssuer) TTL() time.Duration { return i.ttl }

// Issue signs a token for subject expiring at now + TTL.
func (i *TokenIssuer) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Validate checks signature and expiry and returns the embedded subject.
// Every failure mode (bad signature, malformed token, expired, missing
// subject) collapses into domain.ErrTokenInvalid.
func (i *TokenIssuer) Validate(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrTokenInvalid
	}
	if claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
