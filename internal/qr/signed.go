package qr

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainErrors "github.com/fideleatome/loyalty/internal/domain/errors"
)

const cardTokenKind = "loyalty_card"

// TokenIssuer mints short-lived signed card tokens so customers can display
// a rotating QR code instead of a static payload.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer builds a TokenIssuer; a non-positive ttl falls back to
// five minutes.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL reports how long issued tokens stay valid.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

type cardClaims struct {
	CustomerID int64  `json:"cid"`
	Token      string `json:"token"`
	Kind       string `json:"kind"`
	jwt.RegisteredClaims
}

// Issue signs a card token for the customer.
func (i *TokenIssuer) Issue(customerID int64, qrToken string) (string, error) {
	now := time.Now()
	claims := cardClaims{
		CustomerID: customerID,
		Token:      qrToken,
		Kind:       cardTokenKind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Validate checks signature, expiry and kind, returning the embedded
// customer id and QR token.
func (i *TokenIssuer) Validate(raw string) (int64, string, error) {
	parsed, err := jwt.ParseWithClaims(raw, &cardClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domainErrors.ErrMalformedPayload
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, "", domainErrors.ErrMalformedPayload
	}
	claims, ok := parsed.Claims.(*cardClaims)
	if !ok || claims.Kind != cardTokenKind {
		return 0, "", domainErrors.ErrMalformedPayload
	}
	return claims.CustomerID, claims.Token, nil
}
