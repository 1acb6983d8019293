// Package seed populates the database with demo users, posts, and likes.
// Intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// BcryptCost lets tests use a cheap cost. Zero means bcrypt's default.
	BcryptCost int
}

// DemoPassword is the password every seeded user gets.
const DemoPassword = "password123"

// Seed populates the database with test data.
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	users, err := createUsers(db, opts.NumUsers, opts.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	liked, err := createLikes(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("created %d likes", liked)

	return nil
}

// ClearAll removes all seeded rows. Likes go first to respect foreign keys.
func ClearAll(db *gorm.DB) error {
	for _, model := range []any{&models.Like{}, &models.Post{}, &models.User{}} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count, cost int) ([]*models.User, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	// Hash once; every demo account shares the password anyway.
	digest, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		username := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999))
		user := &models.User{
			Username: username,
			Email:    username + "@" + gofakeit.DomainName(),
			Password: string(digest),
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		post := &models.Post{
			UserID:  author.ID,
			Content: gofakeit.Sentence(gofakeit.Number(5, 25)),
			// Spread creation times over the last 30 days so the feed
			// ordering looks realistic.
			CreatedAt: time.Now().Add(-time.Duration(rand.Intn(30*24*60)) * time.Minute),
		}
		if err := db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createLikes(db *gorm.DB, users []*models.User, posts []*models.Post) (int, error) {
	created := 0
	for _, post := range posts {
		// Each post gets likes from a random subset of users.
		for _, user := range users {
			if rand.Intn(100) >= 30 {
				continue
			}
			like := &models.Like{UserID: user.ID, PostID: post.ID}
			if err := db.Create(like).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
