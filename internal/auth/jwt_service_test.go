package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"

	errs "usersvc/internal/errors"
)

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	token, err := svc.Issue("user@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestJWTService_Verify_Failures(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	valid, err := svc.Issue("user@example.com")
	assert.NoError(t, err)

	expiredSvc := NewJWTService("test-secret", -time.Minute)
	expired, err := expiredSvc.Issue("user@example.com")
	assert.NoError(t, err)

	otherSecret, err := NewJWTService("other-secret", 15*time.Minute).Issue("user@example.com")
	assert.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	}).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired token", token: expired},
		{name: "tampered token", token: valid + "x"},
		{name: "wrong secret", token: otherSecret},
		{name: "missing subject", token: noSubject},
		{name: "none algorithm rejected", token: unsigned},
		{name: "malformed structure", token: "not.a.token"},
		{name: "empty string", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, errs.ErrInvalidToken)
		})
	}
}
