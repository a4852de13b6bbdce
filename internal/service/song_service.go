package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lyricverse-api/internal/auth"
	"github.com/lyricverse-api/internal/cache"
	"github.com/lyricverse-api/internal/models"
	"github.com/lyricverse-api/internal/repository"
	"github.com/lyricverse-api/internal/validation"
	"github.com/rs/zerolog"
)

// defaultListLimit is the page size of the public song list. Only the
// first page goes through the TTL cache; it is the one every visitor
// hits.
const defaultListLimit = 50

// songService is the concrete implementation of SongService
type songService struct {
	songRepo repository.SongRepository
	userRepo repository.UserRepository
	allow    *auth.Allowlist
	listings cache.Cache
	log      zerolog.Logger
}

// newSongService creates a new SongService
func newSongService(songRepo repository.SongRepository, userRepo repository.UserRepository, allow *auth.Allowlist, listings cache.Cache, log zerolog.Logger) *songService {
	return &songService{
		songRepo: songRepo,
		userRepo: userRepo,
		allow:    allow,
		listings: listings,
		log:      log.With().Str("service", "song").Logger(),
	}
}

// Create adds a song directly from the admin form and credits the admin
func (s *songService) Create(ctx context.Context, input *models.SongInput, actingAdmin models.Identity) (*models.Song, error) {
	if !s.allow.IsAdmin(actingAdmin.Email) {
		return nil, models.ErrUnauthorized
	}
	if errs := validation.ValidateSongInput(input); len(errs) > 0 {
		return nil, errs
	}

	releaseDate, _ := validation.ParseReleaseDate(input.ReleaseDate)
	now := time.Now()
	song := &models.Song{
		ID:                 uuid.New().String(),
		Title:              input.Title,
		Artist:             input.Artist,
		Album:              input.Album,
		Genre:              input.Genre,
		Language:           input.Language,
		ReleaseDate:        releaseDate,
		Lyrics:             input.Lyrics,
		Views:              0,
		ImageURL:           input.ImageURL,
		Contributors:       []string{actingAdmin.Email},
		ContributedByEmail: actingAdmin.Email,
		ContributedByName:  actingAdmin.Name,
		ContributedByImage: actingAdmin.ImageURL,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.songRepo.Create(ctx, song); err != nil {
		s.log.Error().Err(err).Msg("Failed to store song")
		return nil, storeFailure(err)
	}

	if err := s.userRepo.AddContribution(ctx, actingAdmin, song.ID); err != nil {
		// the song exists; contribution bookkeeping is best-effort here
		s.log.Error().Err(err).Str("song_id", song.ID).Msg("Failed to credit contribution")
	}

	s.listings.Delete(ctx, cacheKeySongList)
	s.log.Info().Str("song_id", song.ID).Str("title", song.Title).Msg("Song created")
	return song, nil
}

// Get retrieves a song, bumping its view counter when countView is set
// (public detail pages count, admin previews do not)
func (s *songService) Get(ctx context.Context, id string, countView bool) (*models.Song, error) {
	song, err := s.songRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}

	if countView {
		if err := s.songRepo.IncrementViews(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("song_id", id).Msg("View count increment failed")
		} else {
			song.Views++
		}
	}
	return song, nil
}

// Update edits a song from the admin form
func (s *songService) Update(ctx context.Context, id string, input *models.SongInput, actingAdmin models.Identity) (*models.Song, error) {
	if !s.allow.IsAdmin(actingAdmin.Email) {
		return nil, models.ErrUnauthorized
	}
	if errs := validation.ValidateSongInput(input); len(errs) > 0 {
		return nil, errs
	}

	song, err := s.songRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}

	releaseDate, _ := validation.ParseReleaseDate(input.ReleaseDate)
	song.Title = input.Title
	song.Artist = input.Artist
	song.Album = input.Album
	song.Genre = input.Genre
	song.Language = input.Language
	song.ReleaseDate = releaseDate
	song.Lyrics = input.Lyrics
	if input.ImageURL != "" {
		song.ImageURL = input.ImageURL
	}

	if err := s.songRepo.Update(ctx, song); err != nil {
		return nil, storeFailure(err)
	}

	s.listings.Delete(ctx, cacheKeySongList)
	s.log.Info().Str("song_id", id).Str("admin", actingAdmin.Email).Msg("Song updated")
	return song, nil
}

// Delete removes a song
func (s *songService) Delete(ctx context.Context, id string, actingAdmin models.Identity) error {
	if !s.allow.IsAdmin(actingAdmin.Email) {
		return models.ErrUnauthorized
	}
	if err := s.songRepo.Delete(ctx, id); err != nil {
		return storeFailure(err)
	}
	s.listings.Delete(ctx, cacheKeySongList)
	s.log.Info().Str("song_id", id).Str("admin", actingAdmin.Email).Msg("Song deleted")
	return nil
}

// List retrieves songs newest first. The first page is served through
// the TTL cache and invalidated by every mutating write.
func (s *songService) List(ctx context.Context, limit, offset int) ([]*models.Song, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	cacheable := limit == defaultListLimit && offset == 0
	if cacheable {
		if data, ok := s.listings.Get(ctx, cacheKeySongList); ok {
			var songs []*models.Song
			if err := json.Unmarshal(data, &songs); err == nil {
				return songs, nil
			}
			s.listings.Delete(ctx, cacheKeySongList)
		}
	}

	songs, err := s.songRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, storeFailure(err)
	}

	if cacheable {
		if data, err := json.Marshal(songs); err == nil {
			s.listings.Set(ctx, cacheKeySongList, data)
		}
	}
	return songs, nil
}

// Search retrieves songs by title prefix
func (s *songService) Search(ctx context.Context, prefix string, limit int) ([]*models.Song, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	songs, err := s.songRepo.SearchByTitlePrefix(ctx, prefix, limit)
	if err != nil {
		return nil, storeFailure(err)
	}
	return songs, nil
}

// Count returns the total number of songs
func (s *songService) Count(ctx context.Context) (int, error) {
	return s.songRepo.Count(ctx)
}
