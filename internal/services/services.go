package services

import (
	"context"
	"errors"

	"github.com/fathima-sithara/media-catalog/internal/models"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrUserNotFound           = errors.New("user not found")
	ErrMovieNotFound          = errors.New("movie not found")
)

// AuthService covers registration, login and identity lookup.
type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

// CreateMovieInput carries a validated create payload. Images and Poster may
// be inline data URIs or already-hosted URLs.
type CreateMovieInput struct {
	Title       string
	Description string
	ReleaseYear int
	Type        models.MediaType
	Director    string
	Budget      int64
	Location    string
	Duration    int
	Images      []string
	Poster      *string
}

// UpdateMovieInput mirrors CreateMovieInput, with Images as a pointer so a
// request that omits the field leaves the gallery untouched.
type UpdateMovieInput struct {
	Title       string
	Description string
	ReleaseYear int
	Type        models.MediaType
	Director    string
	Budget      int64
	Location    string
	Duration    int
	Images      *[]string
	Poster      *string
}

type ListMoviesQuery struct {
	Page     int
	Limit    int
	Year     *int
	Director string
	Type     string
	Search   string
}

type MoviePage struct {
	Items      []models.Media `json:"data"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int64          `json:"total"`
	TotalPages int64          `json:"totalPages"`
}

type MovieService interface {
	Create(ctx context.Context, in CreateMovieInput) (*models.Media, error)
	Update(ctx context.Context, id string, in UpdateMovieInput) (*models.Media, error)
	GetByID(ctx context.Context, id string) (*models.Media, error)
	List(ctx context.Context, q ListMoviesQuery) (*MoviePage, error)
	Delete(ctx context.Context, id string) error
}
