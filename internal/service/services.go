package service

import (
	"context"

	"github.com/lyricverse-api/internal/auth"
	"github.com/lyricverse-api/internal/cache"
	"github.com/lyricverse-api/internal/models"
	"github.com/lyricverse-api/internal/repository"
	"github.com/rs/zerolog"
)

// Cached listing keys. Mutating writes invalidate these so stale
// listings never outlive the next change.
const (
	cacheKeySongList           = "songs:list"
	cacheKeyPendingSubmissions = "submissions:pending"
)

// SongService defines the interface for song operations
type SongService interface {
	Create(ctx context.Context, input *models.SongInput, actingAdmin models.Identity) (*models.Song, error)
	Get(ctx context.Context, id string, countView bool) (*models.Song, error)
	Update(ctx context.Context, id string, input *models.SongInput, actingAdmin models.Identity) (*models.Song, error)
	Delete(ctx context.Context, id string, actingAdmin models.Identity) error
	List(ctx context.Context, limit, offset int) ([]*models.Song, error)
	Search(ctx context.Context, prefix string, limit int) ([]*models.Song, error)
	Count(ctx context.Context) (int, error)
}

// ArtistService defines the interface for artist operations
type ArtistService interface {
	Create(ctx context.Context, input *models.ArtistInput, actingAdmin models.Identity) (*models.Artist, error)
	Get(ctx context.Context, id string) (*models.Artist, error)
	Update(ctx context.Context, id string, input *models.ArtistInput, actingAdmin models.Identity) (*models.Artist, error)
	Delete(ctx context.Context, id string, actingAdmin models.Identity) error
	List(ctx context.Context, limit, offset int) ([]*models.Artist, error)
	Count(ctx context.Context) (int, error)
}

// SubmissionService defines the interface for the lyrics submission
// form and the moderation workflow
type SubmissionService interface {
	Submit(ctx context.Context, input *models.SubmissionInput) (*models.Submission, error)
	Get(ctx context.Context, id string, actingAdmin models.Identity) (*models.Submission, error)
	ListPending(ctx context.Context, actingAdmin models.Identity, limit, offset int) ([]*models.Submission, error)
	Approve(ctx context.Context, submissionID string, actingAdmin models.Identity) (*models.Song, error)
	Reject(ctx context.Context, submissionID string, actingAdmin models.Identity) error
	Delete(ctx context.Context, id string, actingAdmin models.Identity) error
	Count(ctx context.Context) (int, error)
}

// UserService defines the interface for contributor operations
type UserService interface {
	EnsureProfile(ctx context.Context, identity models.Identity) (*models.AdminUser, error)
	Profile(ctx context.Context, email string) (*models.AdminUser, error)
	Leaderboard(ctx context.Context, limit int) ([]*models.ContributorRank, error)
}

// Services holds all service interfaces
type Services struct {
	Song       SongService
	Artist     ArtistService
	Submission SubmissionService
	User       UserService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, allow *auth.Allowlist, listings cache.Cache, log zerolog.Logger) *Services {
	return &Services{
		Song:       newSongService(repos.Song, repos.User, allow, listings, log),
		Artist:     newArtistService(repos.Artist, allow, log),
		Submission: newSubmissionService(repos.Submission, allow, listings, log),
		User:       newUserService(repos.User, log),
	}
}
