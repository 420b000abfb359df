package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthassist-server/internal/domain"
)

func testManager(ttl time.Duration) *TokenManager {
	return NewTokenManager(&domain.AuthConfig{
		Secret:   "test-secret",
		TokenTTL: ttl,
	})
}

func TestIssueAndVerify(t *testing.T) {
	manager := testManager(time.Hour)
	user := &domain.User{ID: "user-1", Email: "jane@example.com"}

	token, err := manager.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	manager := testManager(-time.Minute)

	token, err := manager.Issue(&domain.User{ID: "user-1", Email: "jane@example.com"})
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := testManager(time.Hour).Issue(&domain.User{ID: "user-1", Email: "jane@example.com"})
	require.NoError(t, err)

	other := NewTokenManager(&domain.AuthConfig{Secret: "different-secret", TokenTTL: time.Hour})
	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := testManager(time.Hour).Verify("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPassword(hash, "s3cret-password"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
}
