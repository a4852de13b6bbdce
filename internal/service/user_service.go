package service

import (
	"context"
	"errors"
	"time"

	"github.com/lyricverse-api/internal/models"
	"github.com/lyricverse-api/internal/repository"
	"github.com/rs/zerolog"
)

// defaultLeaderboardLimit caps the contributor leaderboard size
const defaultLeaderboardLimit = 25

// userService is the concrete implementation of UserService
type userService struct {
	userRepo repository.UserRepository
	log      zerolog.Logger
}

// newUserService creates a new UserService
func newUserService(userRepo repository.UserRepository, log zerolog.Logger) *userService {
	return &userService{
		userRepo: userRepo,
		log:      log.With().Str("service", "user").Logger(),
	}
}

// EnsureProfile upserts the admin user on sign-in so the profile
// exists before the first contribution
func (s *userService) EnsureProfile(ctx context.Context, identity models.Identity) (*models.AdminUser, error) {
	now := time.Now()
	user := &models.AdminUser{
		Email:     identity.Email,
		Name:      identity.Name,
		ImageURL:  identity.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		s.log.Error().Err(err).Str("email", identity.Email).Msg("Profile upsert failed")
		return nil, storeFailure(err)
	}
	return s.Profile(ctx, identity.Email)
}

// Profile retrieves the admin user record by email
func (s *userService) Profile(ctx context.Context, email string) (*models.AdminUser, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, storeFailure(err)
	}
	return user, nil
}

// Leaderboard returns contributors ordered by contribution count
func (s *userService) Leaderboard(ctx context.Context, limit int) ([]*models.ContributorRank, error) {
	if limit <= 0 || limit > defaultLeaderboardLimit {
		limit = defaultLeaderboardLimit
	}
	ranks, err := s.userRepo.Leaderboard(ctx, limit)
	if err != nil {
		return nil, storeFailure(err)
	}
	return ranks, nil
}
