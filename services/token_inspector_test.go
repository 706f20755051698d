package services

import (
	"context"
	"testing"
	"time"

	"github.com/kendall-kelly/inventory-dashboard/models"
	"github.com/kendall-kelly/inventory-dashboard/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenInspectorRequiresSecret(t *testing.T) {
	_, err := NewTokenInspector("", testutil.FakeJWTIssuer, testutil.FakeJWTAudience)
	assert.Error(t, err)
}

func TestTokenInspector(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	user := api.AddUser("Admin", "admin@example.com", "password", models.RoleAdmin)

	inspector, err := NewTokenInspector(testutil.FakeJWTSecret, testutil.FakeJWTIssuer, testutil.FakeJWTAudience)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		inspected, err := inspector.Inspect(context.Background(), api.IssueToken("admin@example.com"))
		require.NoError(t, err)
		assert.Equal(t, user.ID, inspected.Subject)
		assert.Equal(t, models.RoleAdmin, inspected.Role)
		assert.Equal(t, "admin@example.com", inspected.Email)
		assert.True(t, inspected.ExpiresAt.After(time.Now()))
	})

	t.Run("expired token", func(t *testing.T) {
		_, err := inspector.Inspect(context.Background(), api.IssueExpiredToken("admin@example.com"))
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := inspector.Inspect(context.Background(), "not-a-token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenInspector("another-secret", testutil.FakeJWTIssuer, testutil.FakeJWTAudience)
		require.NoError(t, err)
		_, err = other.Inspect(context.Background(), api.IssueToken("admin@example.com"))
		assert.Error(t, err)
	})

	t.Run("wrong audience", func(t *testing.T) {
		other, err := NewTokenInspector(testutil.FakeJWTSecret, testutil.FakeJWTIssuer, "someone-else")
		require.NoError(t, err)
		_, err = other.Inspect(context.Background(), api.IssueToken("admin@example.com"))
		assert.Error(t, err)
	})
}
