package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fideleatome/loyalty/internal/domain/model"
)

// JWTStrategy implements auth tokens as HS256-signed JWTs.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTStrategy{secret: []byte(secret), ttl: ttl}
}

type authClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken generates a signed JWT for the account.
func (s *JWTStrategy) IssueToken(userID int64, role model.Role) (string, error) {
	now := time.Now()
	claims := authClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates the JWT and returns the encoded identity.
func (s *JWTStrategy) ParseToken(token string) (int64, model.Role, error) {
	parsed, err := jwt.ParseWithClaims(token, &authClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*authClaims)
	if !ok {
		return 0, "", ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, "", ErrInvalidToken
	}

	role := model.Role(claims.Role)
	if role != model.RoleCustomer && role != model.RoleBusiness {
		return 0, "", ErrInvalidToken
	}

	return userID, role, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
