// Package repository holds the storage ports for users and posts together
// with their Postgres and in-memory adapters.
package repository

import (
	"context"

	"devconnector.com/social-network/models"
)

// PostRepository stores posts as whole documents: likes and comments travel
// with the post they belong to.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	// List returns every post, newest first.
	List(ctx context.Context) ([]*models.Post, error)
	// FindByID returns models.ErrPostNotFound when nothing matches.
	FindByID(ctx context.Context, id string) (*models.Post, error)
	// Save overwrites the stored post, including likes and comments.
	Save(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	// Create returns models.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// DeviceTokenRepository keeps push notification tokens per user.
type DeviceTokenRepository interface {
	SaveToken(ctx context.Context, userID, token string) error
	TokensForUser(ctx context.Context, userID string) ([]string, error)
	DeleteToken(ctx context.Context, token string) error
}
