package repository

import (
	"context"

	"github.com/lyricverse-api/internal/database"
	"github.com/lyricverse-api/internal/models"
)

// SongRepository defines the interface for song data operations
type SongRepository interface {
	Create(ctx context.Context, song *models.Song) error
	GetByID(ctx context.Context, id string) (*models.Song, error)
	Update(ctx context.Context, song *models.Song) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*models.Song, error)
	SearchByTitlePrefix(ctx context.Context, prefix string, limit int) ([]*models.Song, error)
	IncrementViews(ctx context.Context, id string) error
	CountByArtist(ctx context.Context, artistName string) (int, error)
	Count(ctx context.Context) (int, error)
}

// ArtistRepository defines the interface for artist data operations
type ArtistRepository interface {
	Create(ctx context.Context, artist *models.Artist) error
	GetByID(ctx context.Context, id string) (*models.Artist, error)
	Update(ctx context.Context, artist *models.Artist) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*models.Artist, error)
	Count(ctx context.Context) (int, error)
}

// SubmissionRepository defines the interface for submission data operations.
// Approve and Reject perform the status transition with compare-and-set
// semantics: the pending check happens inside the same write that flips
// the status, so concurrent moderators cannot both win.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *models.Submission) error
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	ListByStatus(ctx context.Context, status models.SubmissionStatus, limit, offset int) ([]*models.Submission, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Approve(ctx context.Context, submissionID string, song *models.Song, admin models.Identity) error
	Reject(ctx context.Context, submissionID string) error
}

// UserRepository defines the interface for admin-user data operations
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	Upsert(ctx context.Context, user *models.AdminUser) error
	AddContribution(ctx context.Context, admin models.Identity, songID string) error
	Leaderboard(ctx context.Context, limit int) ([]*models.ContributorRank, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Song       SongRepository
	Artist     ArtistRepository
	Submission SubmissionRepository
	User       UserRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Song:       NewSongRepo(db),
		Artist:     NewArtistRepo(db),
		Submission: NewSubmissionRepo(db),
		User:       NewUserRepo(db),
	}
}
