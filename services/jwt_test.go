package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(ttl time.Duration) *JWTService {
	return &JWTService{
		tokenTTL: ttl,
		secret:   []byte("test-secret"),
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	pair, err := svc.GenerateTokenPair("user-1", "student")
	require.NoError(t, err)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	claims, err := svc.VerifyJWTToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "student", claims.Role)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	token, err := svc.ToJWT("user-1", "student")
	require.NoError(t, err)

	_, err = svc.VerifyJWTToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer := newTestJWTService(time.Hour)
	token, err := signer.ToJWT("user-1", "admin")
	require.NoError(t, err)

	verifier := &JWTService{tokenTTL: time.Hour, secret: []byte("other-secret")}
	_, err = verifier.VerifyJWTToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	_, err := svc.VerifyJWTToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExtractTokenFromHeader(t *testing.T) {
	svc := &JWTService{}

	token, err := svc.ExtractTokenFromHeader("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = svc.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = svc.ExtractTokenFromHeader("Basic abc123")
	assert.Error(t, err)
}
