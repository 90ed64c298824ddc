package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MediaType string

const (
	MediaTypeMovie  MediaType = "MOVIE"
	MediaTypeTVShow MediaType = "TV_SHOW"
)

// Media is a catalog entry (movie or TV show). PosterID, when set, points at
// an Image whose MediaID is this entry.
type Media struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	ReleaseYear int                 `bson:"release_year" json:"releaseYear"`
	Type        MediaType           `bson:"type" json:"type"`
	Director    string              `bson:"director,omitempty" json:"director,omitempty"`
	Budget      int64               `bson:"budget,omitempty" json:"budget,omitempty"`
	Location    string              `bson:"location,omitempty" json:"location,omitempty"`
	Duration    int                 `bson:"duration,omitempty" json:"duration,omitempty"`
	PosterID    *primitive.ObjectID `bson:"poster_id,omitempty" json:"posterId,omitempty"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updated_at"`

	// Populated on read; the poster is never part of Images.
	Images []Image `bson:"-" json:"images"`
	Poster *Image  `bson:"-" json:"poster,omitempty"`
}

// Image is a stored picture belonging to one Media row.
type Image struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	URL       string             `bson:"url" json:"url"`
	Thumbnail string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	MediaID   primitive.ObjectID `bson:"media_id" json:"mediaId"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
