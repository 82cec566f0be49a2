package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojamarket/backend/internal/models"
)

// NOTE: These are integration tests that require a real database
// To run them, you need:
// 1. A running PostgreSQL database
// 2. Database migrations applied
// 3. Set DATABASE_URL environment variable

// Helper function to get test database connection
func getTestDB(t *testing.T) *pgxpool.Pool {
	// This would connect to your test database
	// For now, we'll skip if no database is available
	t.Skip("Integration tests require database connection")
	return nil
}

// ==============================================
// USER QUERY TESTS
// ==============================================

func TestGetUserByEmail_Success(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	// Assuming this user exists in the test database
	user, err := repo.GetUserByEmail(ctx, "ada@ojamarket.dev")

	require.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "ada@ojamarket.dev", user.Email)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.GetUserByEmail(ctx, "nobody@ojamarket.dev")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestGetUserByID_NotFound(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.GetUserByID(ctx, 99999)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

// ==============================================
// VERIFICATION TOKEN TESTS
// ==============================================

func TestVerificationTokenLifecycle(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	email := "ada@ojamarket.dev"

	err := repo.SaveVerificationToken(ctx, email, "483920:1700000000000")
	require.NoError(t, err)

	stored, err := repo.GetVerificationToken(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, "483920:1700000000000", stored)

	err = repo.ClearVerificationToken(ctx, email)
	require.NoError(t, err)

	stored, err = repo.GetVerificationToken(ctx, email)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSaveVerificationToken_UnknownEmail(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	err := repo.SaveVerificationToken(ctx, "nobody@ojamarket.dev", "111111:1700000000000")

	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

// ==============================================
// REFRESH TOKEN TESTS
// ==============================================

func TestRefreshTokenLifecycle(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	// Assuming user 1 exists in the test database
	err := repo.SetRefreshToken(ctx, 1, "some.signed.token")
	require.NoError(t, err)

	user, err := repo.GetUserByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, user.HasRefreshToken())
	assert.Equal(t, "some.signed.token", user.RefreshToken.String)

	err = repo.ClearRefreshToken(ctx, 1)
	require.NoError(t, err)

	user, err = repo.GetUserByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, user.HasRefreshToken())
}
