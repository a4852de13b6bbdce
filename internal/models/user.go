package models

import (
	"time"
)

// AdminUser is an admin identity with contribution bookkeeping,
// upserted on first admin action and keyed by email
type AdminUser struct {
	Email            string     `json:"email" db:"email"`
	Name             string     `json:"name" db:"name"`
	ImageURL         string     `json:"image_url,omitempty" db:"image_url"`
	Contributions    []string   `json:"contributions" db:"contributions"` // song ids, set semantics
	LastContribution *time.Time `json:"last_contribution,omitempty" db:"last_contribution"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// Identity is the authenticated principal resolved from the session cookie
type Identity struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// ContributorRank is one row of the contributor leaderboard
type ContributorRank struct {
	Email             string     `json:"email"`
	Name              string     `json:"name"`
	ImageURL          string     `json:"image_url,omitempty"`
	ContributionCount int        `json:"contribution_count"`
	LastContribution  *time.Time `json:"last_contribution,omitempty"`
}
