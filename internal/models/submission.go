package models

import (
	"time"
)

// SubmissionStatus represents the moderation state of a submission
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// Terminal reports whether no further transition is allowed out of the status
func (s SubmissionStatus) Terminal() bool {
	return s == SubmissionStatusApproved || s == SubmissionStatusRejected
}

// Submission is a user-proposed song awaiting admin moderation
type Submission struct {
	ID          string           `json:"id" db:"id"`
	Title       string           `json:"title" db:"title"`
	Artist      string           `json:"artist" db:"artist"`
	Album       string           `json:"album,omitempty" db:"album"`
	Genre       string           `json:"genre,omitempty" db:"genre"`
	Language    string           `json:"language,omitempty" db:"language"`
	ReleaseDate *time.Time       `json:"release_date,omitempty" db:"release_date"`
	Lyrics      string           `json:"lyrics" db:"lyrics"`
	ImageURL    string           `json:"image_url,omitempty" db:"image_url"`
	Notes       string           `json:"notes,omitempty" db:"notes"`
	Status      SubmissionStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// SubmissionInput carries the public lyrics-submission form fields
type SubmissionInput struct {
	Title       string `json:"title" form:"title"`
	Artist      string `json:"artist" form:"artist"`
	Album       string `json:"album" form:"album"`
	Genre       string `json:"genre" form:"genre"`
	Language    string `json:"language" form:"language"`
	ReleaseDate string `json:"release_date" form:"release_date"` // YYYY-MM-DD
	Lyrics      string `json:"lyrics" form:"lyrics"`
	ImageURL    string `json:"image_url" form:"image_url"`
	Notes       string `json:"notes" form:"notes"`
}
