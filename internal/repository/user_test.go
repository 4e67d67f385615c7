package repository

import (
	"context"
	"testing"

	"listforge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateWithProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	// Exactly one profile row per signup
	var count int64
	db.Model(&models.UserProfile{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	profile, err := repo.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Bio)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{
		Username: "first", Email: "dup@example.com", Password: "hash",
	}))

	err := repo.Create(ctx, &models.User{
		Username: "second", Email: "dup@example.com", Password: "hash",
	})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "VALIDATION_ERROR"))

	// The failed transaction must not leave an orphaned profile behind
	var profiles int64
	db.Model(&models.UserProfile{}).Count(&profiles)
	assert.Equal(t, int64(1), profiles)
}

func TestUserRepository_GetByEmailAndUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{
		Username: "bob", Email: "bob@example.com", Password: "hash",
	}))

	byEmail, err := repo.GetByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "bob", byEmail.Username)

	byUsername, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, byUsername)
	assert.Equal(t, "bob@example.com", byUsername.Email)

	// Misses return nil, nil so callers can branch without errors.As
	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "NOT_FOUND"))
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "carol", Email: "carol@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	profile, err := repo.GetProfile(ctx, user.ID)
	require.NoError(t, err)

	profile.Bio = "I curate lists about tea."
	require.NoError(t, repo.UpdateProfile(ctx, profile))

	reloaded, err := repo.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "I curate lists about tea.", reloaded.Bio)
}

func TestUserRepository_Stats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	owner := &models.User{Username: "dave", Email: "dave@example.com", Password: "hash"}
	other := &models.User{Username: "erin", Email: "erin@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, owner))
	require.NoError(t, repo.Create(ctx, other))

	source := &models.List{Title: "Source", OwnerID: other.ID, IsPublic: true}
	require.NoError(t, db.Create(source).Error)

	require.NoError(t, db.Create(&models.List{Title: "Public", OwnerID: owner.ID, IsPublic: true}).Error)
	require.NoError(t, db.Create(&models.List{Title: "Private", OwnerID: owner.ID, IsPublic: false}).Error)
	require.NoError(t, db.Create(&models.List{
		Title: "Forked", OwnerID: owner.ID, IsPublic: true, OriginalListID: &source.ID,
	}).Error)

	stats, err := repo.Stats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalLists)
	assert.Equal(t, int64(2), stats.PublicLists)
	assert.Equal(t, int64(1), stats.ForkedLists)
}
