package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lyricverse-api/internal/auth"
	"github.com/lyricverse-api/internal/models"
	"github.com/lyricverse-api/internal/repository"
	"github.com/lyricverse-api/internal/validation"
	"github.com/rs/zerolog"
)

// artistService is the concrete implementation of ArtistService
type artistService struct {
	artistRepo repository.ArtistRepository
	allow      *auth.Allowlist
	log        zerolog.Logger
}

// newArtistService creates a new ArtistService
func newArtistService(artistRepo repository.ArtistRepository, allow *auth.Allowlist, log zerolog.Logger) *artistService {
	return &artistService{
		artistRepo: artistRepo,
		allow:      allow,
		log:        log.With().Str("service", "artist").Logger(),
	}
}

// Create adds an artist from the admin form
func (s *artistService) Create(ctx context.Context, input *models.ArtistInput, actingAdmin models.Identity) (*models.Artist, error) {
	if !s.allow.IsAdmin(actingAdmin.Email) {
		return nil, models.ErrUnauthorized
	}
	if errs := validation.ValidateArtistInput(input); len(errs) > 0 {
		return nil, errs
	}

	now := time.Now()
	artist := &models.Artist{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Bio:       input.Bio,
		ImageURL:  input.ImageURL,
		Genres:    input.Genres,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.artistRepo.Create(ctx, artist); err != nil {
		s.log.Error().Err(err).Msg("Failed to store artist")
		return nil, storeFailure(err)
	}

	s.log.Info().Str("artist_id", artist.ID).Str("name", artist.Name).Msg("Artist created")
	return artist, nil
}

// Get retrieves an artist; the song count comes back computed at query
// time, so viewing a page never writes anything
func (s *artistService) Get(ctx context.Context, id string) (*models.Artist, error) {
	artist, err := s.artistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}
	return artist, nil
}

// Update edits an artist from the admin form
func (s *artistService) Update(ctx context.Context, id string, input *models.ArtistInput, actingAdmin models.Identity) (*models.Artist, error) {
	if !s.allow.IsAdmin(actingAdmin.Email) {
		return nil, models.ErrUnauthorized
	}
	if errs := validation.ValidateArtistInput(input); len(errs) > 0 {
		return nil, errs
	}

	artist, err := s.artistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}

	artist.Name = input.Name
	artist.Bio = input.Bio
	artist.Genres = input.Genres
	if input.ImageURL != "" {
		artist.ImageURL = input.ImageURL
	}

	if err := s.artistRepo.Update(ctx, artist); err != nil {
		return nil, storeFailure(err)
	}

	s.log.Info().Str("artist_id", id).Str("admin", actingAdmin.Email).Msg("Artist updated")
	return artist, nil
}

// Delete removes an artist
func (s *artistService) Delete(ctx context.Context, id string, actingAdmin models.Identity) error {
	if !s.allow.IsAdmin(actingAdmin.Email) {
		return models.ErrUnauthorized
	}
	if err := s.artistRepo.Delete(ctx, id); err != nil {
		return storeFailure(err)
	}
	s.log.Info().Str("artist_id", id).Str("admin", actingAdmin.Email).Msg("Artist deleted")
	return nil
}

// List retrieves artists ordered by name
func (s *artistService) List(ctx context.Context, limit, offset int) ([]*models.Artist, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	artists, err := s.artistRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, storeFailure(err)
	}
	return artists, nil
}

// Count returns the total number of artists
func (s *artistService) Count(ctx context.Context) (int, error) {
	return s.artistRepo.Count(ctx)
}
