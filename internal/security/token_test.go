package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/domain"
)

func testUser() *domain.User {
	branch := int32(2)
	return &domain.User{
		ID:             "u-1",
		Email:          "staff@atelier.eg",
		BranchID:       &branch,
		CanAccessWomen: true,
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	mgr := NewTokenManager("0123456789abcdef0123456789abcdef")

	token, err := mgr.Generate(testUser(), time.Hour)
	require.NoError(t, err)

	claims, err := mgr.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "staff@atelier.eg", claims.Email)
	require.NotNil(t, claims.BranchID)
	assert.Equal(t, int32(2), *claims.BranchID)
	assert.Equal(t, []string{"WOMEN"}, claims.Departments)

	scope := claims.Scope()
	assert.Equal(t, "u-1", scope.UserID)
	assert.True(t, scope.AllowsDepartment(domain.DepartmentWomen))
	assert.False(t, scope.AllowsDepartment(domain.DepartmentMen))
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("0123456789abcdef0123456789abcdef").Generate(testUser(), time.Hour)
	require.NoError(t, err)

	_, err = NewTokenManager("another-secret-another-secret-xx").Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	mgr := NewTokenManager("0123456789abcdef0123456789abcdef")
	token, err := mgr.Generate(testUser(), -time.Minute)
	require.NoError(t, err)

	_, err = mgr.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	mgr := NewTokenManager("0123456789abcdef0123456789abcdef")
	_, err := mgr.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
