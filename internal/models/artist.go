package models

import (
	"time"
)

// Artist represents a musical artist in the catalog
type Artist struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Bio       string    `json:"bio,omitempty" db:"bio"`
	ImageURL  string    `json:"image_url,omitempty" db:"image_url"`
	Genres    []string  `json:"genres" db:"genres"`
	// SongCount is computed at query time from songs.artist and never persisted
	SongCount int       `json:"song_count" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ArtistInput carries the admin form fields for creating or editing an artist
type ArtistInput struct {
	Name     string   `json:"name" form:"name"`
	Bio      string   `json:"bio" form:"bio"`
	ImageURL string   `json:"image_url" form:"image_url"`
	Genres   []string `json:"genres" form:"genres"`
}
