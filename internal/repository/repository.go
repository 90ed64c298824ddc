package repository

import (
	"context"
	"errors"

	"github.com/fathima-sithara/media-catalog/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrMediaNotFound = errors.New("media not found")
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// MediaFilter holds the optional, AND-combined list filters. Director and
// Title are substring matches, the rest are exact.
type MediaFilter struct {
	ReleaseYear *int
	Director    string
	Type        string
	Title       string
}

type MediaRepository interface {
	Insert(ctx context.Context, m *models.Media) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Media, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, m *models.Media) error
	SetPoster(ctx context.Context, id primitive.ObjectID, posterID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Find(ctx context.Context, f MediaFilter, skip, limit int64) ([]models.Media, error)
	Count(ctx context.Context, f MediaFilter) (int64, error)
}

type ImageRepository interface {
	Insert(ctx context.Context, img *models.Image) error
	InsertMany(ctx context.Context, imgs []models.Image) error
	FindByMedia(ctx context.Context, mediaID primitive.ObjectID) ([]models.Image, error)
	FindByMediaIDs(ctx context.Context, mediaIDs []primitive.ObjectID) ([]models.Image, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteGallery(ctx context.Context, mediaID primitive.ObjectID, posterID *primitive.ObjectID) error
	DeleteByMedia(ctx context.Context, mediaID primitive.ObjectID) error
}
