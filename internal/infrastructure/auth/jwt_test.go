package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewJWTService("dev-secret", 10*time.Hour)

	token, expiresAt, err := svc.Issue("alex@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(10*time.Hour), expiresAt, time.Minute)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", subject)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	token, _, err := NewJWTService("one", time.Hour).Issue("alex@example.com")
	require.NoError(t, err)

	_, err = NewJWTService("two", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := NewJWTService("dev-secret", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := svc.Issue("alex@example.com")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{Issuer: issuer, Subject: "alex@example.com"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("dev-secret", time.Hour).Verify(token)
	assert.Error(t, err)
}
