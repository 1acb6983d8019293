package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory SQLite database with the full schema.
// SQLite supports the same ON CONFLICT clause the toggle relies on, so the
// like-set semantics are exercised against a real unique index.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "digest",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestPostRepository_CreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	post := &models.Post{UserID: alice.ID, Content: "hello"}
	require.NoError(t, repo.Create(ctx, post))
	require.NotZero(t, post.ID)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, alice.ID, got.UserID)
	assert.Equal(t, "alice", got.Username, "author username is joined at read time")
	assert.Equal(t, []uint{}, got.Likes, "new posts start with an empty like-set")
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_List_Ordering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	older := &models.Post{UserID: alice.ID, Content: "first"}
	require.NoError(t, repo.Create(ctx, older))
	newer := &models.Post{UserID: bob.ID, Content: "second"}
	require.NoError(t, repo.Create(ctx, newer))

	// Spread the timestamps so the primary sort key is exercised too.
	require.NoError(t, db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Content, "feed is newest first")
	assert.Equal(t, "first", posts[1].Content)
	assert.Equal(t, "bob", posts[0].Username)
	assert.Equal(t, "alice", posts[1].Username)
}

func TestPostRepository_List_TieBreak(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	now := time.Now().UTC().Truncate(time.Second)
	a := &models.Post{UserID: alice.ID, Content: "A", CreatedAt: now}
	b := &models.Post{UserID: alice.ID, Content: "B", CreatedAt: now}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "B", posts[0].Content, "equal timestamps fall back to insertion order")
	assert.Equal(t, "A", posts[1].Content)
}

func TestPostRepository_ListByAuthor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, repo.Create(ctx, &models.Post{UserID: alice.ID, Content: "mine"}))
	require.NoError(t, repo.Create(ctx, &models.Post{UserID: bob.ID, Content: "theirs"}))

	posts, err := repo.ListByAuthor(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "mine", posts[0].Content)
}

func TestPostRepository_ToggleLike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	post := &models.Post{UserID: alice.ID, Content: "hello"}
	require.NoError(t, repo.Create(ctx, post))

	// First toggle adds membership.
	liked, err := repo.ToggleLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{bob.ID}, got.Likes)

	// A second user's like is an independent membership.
	liked, err = repo.ToggleLike(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	got, err = repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{alice.ID, bob.ID}, got.Likes)

	// Second toggle from the same user removes membership.
	liked, err = repo.ToggleLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	got, err = repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{alice.ID}, got.Likes, "a toggle pair restores the prior membership")

	// Membership is a set: the likes table holds at most one row per pair.
	var count int64
	require.NoError(t, db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", alice.ID, post.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPostRepository_Delete_RemovesLikes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	post := &models.Post{UserID: alice.ID, Content: "doomed"}
	require.NoError(t, repo.Create(ctx, post))

	_, err := repo.ToggleLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err = repo.GetByID(ctx, post.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	var likeCount int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeCount).Error)
	assert.Equal(t, int64(0), likeCount, "the post and its like-set vanish together")

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
}
