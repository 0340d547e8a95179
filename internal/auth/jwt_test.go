package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
)

const testSecret = "test-jwt-secret"

var testAccount = domain.Account{ID: "42", TokenType: domain.TokenTypeCard, Live: true}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(testAccount, testSecret, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	account, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, testAccount, account)
	assert.True(t, account.IsLive())
}

func TestValidateToken(t *testing.T) {
	validToken, err := GenerateToken(testAccount, testSecret, 24*time.Hour)
	require.NoError(t, err)

	expiredToken, err := GenerateToken(testAccount, testSecret, -1*time.Hour)
	require.NoError(t, err)

	noAccount, err := GenerateToken(domain.Account{TokenType: domain.TokenTypeCard}, testSecret, time.Hour)
	require.NoError(t, err)

	badType, err := GenerateToken(domain.Account{ID: "42", TokenType: "PAYPAL"}, testSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		secret    string
		wantErrIs error
	}{
		{
			name:      "expired token",
			token:     expiredToken,
			secret:    testSecret,
			wantErrIs: jwt.ErrTokenExpired,
		},
		{
			name:      "wrong secret",
			token:     validToken,
			secret:    "wrong-secret",
			wantErrIs: jwt.ErrTokenSignatureInvalid,
		},
		{
			name:      "malformed token",
			token:     "not.a.valid.jwt",
			secret:    testSecret,
			wantErrIs: jwt.ErrTokenMalformed,
		},
		{
			name:      "empty token",
			token:     "",
			secret:    testSecret,
			wantErrIs: jwt.ErrTokenMalformed,
		},
		{
			name:      "missing account id",
			token:     noAccount,
			secret:    testSecret,
			wantErrIs: ErrInvalidClaims,
		},
		{
			name:      "unknown token type",
			token:     badType,
			secret:    testSecret,
			wantErrIs: ErrInvalidClaims,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateToken(tc.token, tc.secret)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErrIs)
		})
	}
}

func TestValidateToken_RejectsNonHMAC(t *testing.T) {
	// Algorithm confusion: a token signed with "none" should be rejected
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		AccountID: "42",
		TokenType: string(domain.TokenTypeCard),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(signed, testSecret)
	require.Error(t, err)
}

func TestAccountContext(t *testing.T) {
	_, ok := AccountFromContext(context.Background())
	assert.False(t, ok)

	ctx := ContextWithAccount(context.Background(), testAccount)
	got, ok := AccountFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, testAccount, got)
}
