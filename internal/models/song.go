package models

import (
	"time"
)

// Song represents a published, publicly visible lyrics record
type Song struct {
	ID                   string     `json:"id" db:"id"`
	Title                string     `json:"title" db:"title"`
	Artist               string     `json:"artist" db:"artist"` // denormalized artist name, not a foreign key
	Album                string     `json:"album,omitempty" db:"album"`
	Genre                string     `json:"genre,omitempty" db:"genre"`
	Language             string     `json:"language,omitempty" db:"language"`
	ReleaseDate          *time.Time `json:"release_date,omitempty" db:"release_date"`
	Lyrics               string     `json:"lyrics" db:"lyrics"`
	Views                int64      `json:"views" db:"views"`
	ImageURL             string     `json:"image_url,omitempty" db:"image_url"`
	Contributors         []string   `json:"contributors" db:"contributors"`
	ContributedByEmail   string     `json:"contributed_by_email,omitempty" db:"contributed_by_email"`
	ContributedByName    string     `json:"contributed_by_name,omitempty" db:"contributed_by_name"`
	ContributedByImage   string     `json:"contributed_by_image,omitempty" db:"contributed_by_image"`
	OriginalSubmissionID *string    `json:"original_submission_id,omitempty" db:"original_submission_id"`
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`
}

// SongInput carries the admin form fields for creating or editing a song
type SongInput struct {
	Title       string `json:"title" form:"title"`
	Artist      string `json:"artist" form:"artist"`
	Album       string `json:"album" form:"album"`
	Genre       string `json:"genre" form:"genre"`
	Language    string `json:"language" form:"language"`
	ReleaseDate string `json:"release_date" form:"release_date"` // YYYY-MM-DD
	Lyrics      string `json:"lyrics" form:"lyrics"`
	ImageURL    string `json:"image_url" form:"image_url"`
}
