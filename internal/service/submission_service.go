package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lyricverse-api/internal/auth"
	"github.com/lyricverse-api/internal/cache"
	"github.com/lyricverse-api/internal/models"
	"github.com/lyricverse-api/internal/repository"
	"github.com/lyricverse-api/internal/validation"
	"github.com/rs/zerolog"
)

// submissionService is the concrete implementation of SubmissionService
type submissionService struct {
	subRepo  repository.SubmissionRepository
	allow    *auth.Allowlist
	listings cache.Cache
	log      zerolog.Logger
}

// newSubmissionService creates a new SubmissionService
func newSubmissionService(subRepo repository.SubmissionRepository, allow *auth.Allowlist, listings cache.Cache, log zerolog.Logger) *submissionService {
	return &submissionService{
		subRepo:  subRepo,
		allow:    allow,
		listings: listings,
		log:      log.With().Str("service", "submission").Logger(),
	}
}

// Submit creates a pending submission from the public lyrics form
func (s *submissionService) Submit(ctx context.Context, input *models.SubmissionInput) (*models.Submission, error) {
	if errs := validation.ValidateSubmissionInput(input); len(errs) > 0 {
		return nil, errs
	}

	releaseDate, _ := validation.ParseReleaseDate(input.ReleaseDate)
	now := time.Now()
	sub := &models.Submission{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Artist:      input.Artist,
		Album:       input.Album,
		Genre:       input.Genre,
		Language:    input.Language,
		ReleaseDate: releaseDate,
		Lyrics:      input.Lyrics,
		ImageURL:    input.ImageURL,
		Notes:       input.Notes,
		Status:      models.SubmissionStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.subRepo.Create(ctx, sub); err != nil {
		s.log.Error().Err(err).Msg("Failed to store submission")
		return nil, storeFailure(err)
	}

	s.listings.Delete(ctx, cacheKeyPendingSubmissions)
	s.log.Info().Str("submission_id", sub.ID).Str("title", sub.Title).Msg("Submission received")
	return sub, nil
}

// Get retrieves a submission for moderation preview
func (s *submissionService) Get(ctx context.Context, id string, actingAdmin models.Identity) (*models.Submission, error) {
	if !s.allow.IsAdmin(actingAdmin.Email) {
		return nil, models.ErrUnauthorized
	}
	sub, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}
	return sub, nil
}

// ListPending retrieves the moderation queue, oldest first. The first
// page is served through the TTL cache and invalidated by every
// submission write.
func (s *submissionService) ListPending(ctx context.Context, actingAdmin models.Identity, limit, offset int) ([]*models.Submission, error) {
	if !s.allow.IsAdmin(actingAdmin.Email) {
		return nil, models.ErrUnauthorized
	}

	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	cacheable := limit == defaultListLimit && offset == 0
	if cacheable {
		if data, ok := s.listings.Get(ctx, cacheKeyPendingSubmissions); ok {
			var subs []*models.Submission
			if err := json.Unmarshal(data, &subs); err == nil {
				return subs, nil
			}
			s.listings.Delete(ctx, cacheKeyPendingSubmissions)
		}
	}

	subs, err := s.subRepo.ListByStatus(ctx, models.SubmissionStatusPending, limit, offset)
	if err != nil {
		return nil, storeFailure(err)
	}

	if cacheable {
		if data, err := json.Marshal(subs); err == nil {
			s.listings.Set(ctx, cacheKeyPendingSubmissions, data)
		}
	}
	return subs, nil
}

// Approve transitions a pending submission to approved, materializing
// a public song credited to the acting admin. The whole write is
// atomic: on any failure the submission stays pending and no song
// exists.
func (s *submissionService) Approve(ctx context.Context, submissionID string, actingAdmin models.Identity) (*models.Song, error) {
	if !s.allow.IsAdmin(actingAdmin.Email) {
		return nil, models.ErrUnauthorized
	}

	sub, err := s.subRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, storeFailure(err)
	}
	if sub.Status != models.SubmissionStatusPending {
		return nil, fmt.Errorf("%w: submission is %s", models.ErrInvalidState, sub.Status)
	}

	song := songFromSubmission(sub, actingAdmin)
	if err := s.subRepo.Approve(ctx, submissionID, song, actingAdmin); err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrInvalidState) {
			return nil, err
		}
		s.log.Error().Err(err).Str("submission_id", submissionID).Msg("Approval transaction failed")
		return nil, storeFailure(err)
	}

	s.listings.Delete(ctx, cacheKeySongList, cacheKeyPendingSubmissions)
	s.log.Info().
		Str("submission_id", submissionID).
		Str("song_id", song.ID).
		Str("admin", actingAdmin.Email).
		Msg("Submission approved")
	return song, nil
}

// Reject transitions a pending submission to rejected
func (s *submissionService) Reject(ctx context.Context, submissionID string, actingAdmin models.Identity) error {
	if !s.allow.IsAdmin(actingAdmin.Email) {
		return models.ErrUnauthorized
	}

	if err := s.subRepo.Reject(ctx, submissionID); err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrInvalidState) {
			return err
		}
		s.log.Error().Err(err).Str("submission_id", submissionID).Msg("Rejection failed")
		return storeFailure(err)
	}

	s.listings.Delete(ctx, cacheKeyPendingSubmissions)
	s.log.Info().Str("submission_id", submissionID).Str("admin", actingAdmin.Email).Msg("Submission rejected")
	return nil
}

// Delete removes a submission entirely (explicit admin delete, outside
// the approve/reject state machine)
func (s *submissionService) Delete(ctx context.Context, id string, actingAdmin models.Identity) error {
	if !s.allow.IsAdmin(actingAdmin.Email) {
		return models.ErrUnauthorized
	}
	if err := s.subRepo.Delete(ctx, id); err != nil {
		return storeFailure(err)
	}
	s.listings.Delete(ctx, cacheKeyPendingSubmissions)
	return nil
}

// Count returns the total number of submissions
func (s *submissionService) Count(ctx context.Context) (int, error) {
	return s.subRepo.Count(ctx)
}

// songFromSubmission copies the submission's song fields into a fresh
// song record credited to the approving admin, with a back-reference
// to the submission for audit
func songFromSubmission(sub *models.Submission, actingAdmin models.Identity) *models.Song {
	now := time.Now()
	submissionID := sub.ID
	return &models.Song{
		ID:                   uuid.New().String(),
		Title:                sub.Title,
		Artist:               sub.Artist,
		Album:                sub.Album,
		Genre:                sub.Genre,
		Language:             sub.Language,
		ReleaseDate:          sub.ReleaseDate,
		Lyrics:               sub.Lyrics,
		Views:                0,
		ImageURL:             sub.ImageURL,
		Contributors:         []string{actingAdmin.Email},
		ContributedByEmail:   actingAdmin.Email,
		ContributedByName:    actingAdmin.Name,
		ContributedByImage:   actingAdmin.ImageURL,
		OriginalSubmissionID: &submissionID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// storeFailure maps unexpected repository errors onto the store
// unavailability signal while passing taxonomy errors through
func storeFailure(err error) error {
	if errors.Is(err, models.ErrNotFound) ||
		errors.Is(err, models.ErrInvalidState) ||
		errors.Is(err, models.ErrUnauthorized) {
		return err
	}
	return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
}
