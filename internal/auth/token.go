package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	customerrors "github.com/axellelanca/shortlinks/internal/errors"
	"github.com/axellelanca/shortlinks/internal/models"
)

// TokenType is returned next to every access token.
const TokenType = "bearer"

// Claims is the JWT payload: {sub: username, id, user_role, exp, iat}.
type Claims struct {
	UserID   uint        `json:"id"`
	UserRole models.Role `json:"user_role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager. Tokens expire ttl after issue and
// cannot be refreshed.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the lifetime of issued tokens.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for the given user.
func (m *TokenManager) Issue(userID uint, username string, role models.Role) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:   userID,
		UserRole: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded identity.
// Every failure is reported as ErrUnauthorized.
func (m *TokenManager) Verify(tokenString string) (Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, fmt.Errorf("token expired: %w", customerrors.ErrUnauthorized)
		}
		return Identity{}, fmt.Errorf("invalid token: %w", customerrors.ErrUnauthorized)
	}

	if claims.Subject == "" || claims.UserID == 0 || !claims.UserRole.Valid() {
		return Identity{}, fmt.Errorf("incomplete token claims: %w", customerrors.ErrUnauthorized)
	}

	return Identity{
		UserID:   claims.UserID,
		Username: claims.Subject,
		Role:     claims.UserRole,
	}, nil
}
