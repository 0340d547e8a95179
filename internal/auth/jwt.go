package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
)

var ErrInvalidClaims = errors.New("invalid token claims")

type tokenClaims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
	TokenType string `json:"token_type"`
	Live      bool   `json:"live"`
}

// GenerateToken issues a bearer token for account. Production tokens come
// from the token issuer; this exists for local use and tests.
func GenerateToken(account domain.Account, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		AccountID: account.ID,
		TokenType: string(account.TokenType),
		Live:      account.Live,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("GenerateToken: %w", err)
	}
	return signed, nil
}

// ValidateToken returns the account a token was issued for. Tokens without
// a known token type are rejected.
func ValidateToken(tokenString string, secret string) (domain.Account, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return domain.Account{}, fmt.Errorf("ValidateToken: %w", err)
	}

	tc, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return domain.Account{}, fmt.Errorf("ValidateToken: %w", ErrInvalidClaims)
	}

	if tc.AccountID == "" {
		return domain.Account{}, fmt.Errorf("ValidateToken: missing account_id: %w", ErrInvalidClaims)
	}

	tokenType := domain.TokenType(tc.TokenType)
	if tokenType != domain.TokenTypeCard && tokenType != domain.TokenTypeDirectDebit {
		return domain.Account{}, fmt.Errorf("ValidateToken: token_type %q: %w", tc.TokenType, ErrInvalidClaims)
	}

	return domain.Account{
		ID:        tc.AccountID,
		TokenType: tokenType,
		Live:      tc.Live,
	}, nil
}
