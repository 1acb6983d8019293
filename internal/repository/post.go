package repository

import (
	"context"
	"errors"
	"time"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, userID uint) ([]*models.Post, error)
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, userID, postID uint) (liked bool, err error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFeed(ctx)
	return nil
}

// withAuthor joins the author's current username into the select. The join
// runs on every read so the feed always carries the live username, never a
// copy cached on the row.
func (r *postRepository) withAuthor(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Post{}).
		Select("posts.*, users.username AS username").
		Joins("JOIN users ON users.id = posts.user_id")
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.withAuthor(r.db.WithContext(ctx)).
			Where("posts.id = ?", id).
			Take(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post")
			}
			return models.NewInternalError(err)
		}
		return r.loadLikes(ctx, []*models.Post{&post})
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns every post, newest first. Equal timestamps fall back to id
// order so the feed is stable under rapid successive inserts.
func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	key := cache.FeedKey()

	err := cache.Aside(ctx, key, &posts, cache.FeedTTL, func() error {
		if err := r.withAuthor(r.db.WithContext(ctx)).
			Order("posts.created_at DESC, posts.id DESC").
			Find(&posts).Error; err != nil {
			return models.NewInternalError(err)
		}
		return r.loadLikes(ctx, posts)
	})

	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.withAuthor(r.db.WithContext(ctx)).
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.loadLikes(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// loadLikes populates the like-set of each post in one query.
func (r *postRepository) loadLikes(ctx context.Context, posts []*models.Post) error {
	for _, p := range posts {
		p.Likes = []uint{}
	}
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	byID := make(map[uint]*models.Post, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
		byID[p.ID] = p
	}

	var likes []models.Like
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("id ASC").
		Find(&likes).Error; err != nil {
		return models.NewInternalError(err)
	}

	for _, l := range likes {
		if p := byID[l.PostID]; p != nil {
			p.Likes = append(p.Likes, l.UserID)
		}
	}
	return nil
}

// Delete removes a post and its like-set as one atomic unit. Hard delete;
// no soft-delete state survives.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidatePost(ctx, id)
	cache.InvalidateFeed(ctx)
	return nil
}

// ToggleLike flips the caller's membership in the post's like-set and reports
// the resulting state. The insert races are settled by the unique index:
// INSERT ... ON CONFLICT DO NOTHING is atomic at the store level, so two
// concurrent toggles from the same user converge to a deterministic double
// flip instead of a lost update.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	res := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, post_id, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID, time.Now().UTC(),
	)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}

	liked := res.RowsAffected > 0
	if !liked {
		// Already a member: this toggle is an unlike.
		if err := r.db.WithContext(ctx).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&models.Like{}).Error; err != nil {
			return false, models.NewInternalError(err)
		}
	}

	cache.InvalidatePost(ctx, postID)
	cache.InvalidateFeed(ctx)
	return liked, nil
}
