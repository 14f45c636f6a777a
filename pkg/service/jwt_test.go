package service

import (
	"testing"
	"time"

	apperrors "refurb-tracker/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.GenerateToken(7, RoleTechnician)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.OperatorID)
	assert.Equal(t, RoleTechnician, claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService("secret", time.Minute).(*jwtService)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := svc.GenerateToken(1, RoleAdmin)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := NewJWTService("one", time.Hour).GenerateToken(1, RoleAdmin)
	require.NoError(t, err)

	_, err = NewJWTService("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_UnknownRole(t *testing.T) {
	token, err := NewJWTService("secret", time.Hour).GenerateToken(1, "guest")
	require.NoError(t, err)

	_, err = NewJWTService("secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	claims := &OperatorClaims{OperatorID: 1, Role: RoleAdmin}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("secret", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}
