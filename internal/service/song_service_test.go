package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lyricverse-api/internal/models"
)

func seedSong(f *fixture, id, title, artist string) {
	now := time.Now()
	f.songs.Create(context.Background(), &models.Song{
		ID:        id,
		Title:     title,
		Artist:    artist,
		Lyrics:    "...",
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func TestSongCreate_CreditsContribution(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	song, err := f.services.Song.Create(ctx, &models.SongInput{
		Title:  "Midnight Rain",
		Artist: "The Harbors",
		Lyrics: "Rain on the window...",
	}, admin)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	user, err := f.users.GetByEmail(ctx, admin.Email)
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if len(user.Contributions) != 1 || user.Contributions[0] != song.ID {
		t.Errorf("Expected contribution [%s], got %v", song.ID, user.Contributions)
	}
	if !f.cache.WasDeleted("songs:list") {
		t.Error("Create must invalidate the song listing cache")
	}
}

func TestSongCreate_Unauthorized(t *testing.T) {
	f := newFixture()

	_, err := f.services.Song.Create(context.Background(), &models.SongInput{
		Title:  "Midnight Rain",
		Artist: "The Harbors",
		Lyrics: "...",
	}, models.Identity{Email: "visitor@x.com"})
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("Expected ErrUnauthorized, got %v", err)
	}
}

func TestSongGet_CountsPublicViews(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedSong(f, "song-1", "Midnight Rain", "The Harbors")

	song, err := f.services.Song.Get(ctx, "song-1", true)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if song.Views != 1 {
		t.Errorf("Expected views 1 after public view, got %d", song.Views)
	}

	// admin preview does not count
	song, err = f.services.Song.Get(ctx, "song-1", false)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if song.Views != 1 {
		t.Errorf("Expected views to stay 1, got %d", song.Views)
	}
}

func TestSongList_FirstPageServedFromCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedSong(f, "song-1", "Midnight Rain", "The Harbors")

	if _, err := f.services.Song.List(ctx, 0, 0); err != nil {
		t.Fatalf("first List failed: %v", err)
	}
	if _, err := f.services.Song.List(ctx, 0, 0); err != nil {
		t.Fatalf("second List failed: %v", err)
	}

	if f.songs.ListCalls != 1 {
		t.Errorf("Expected one repository hit with a warm cache, got %d", f.songs.ListCalls)
	}
}

func TestSongList_CacheInvalidatedByDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedSong(f, "song-1", "Midnight Rain", "The Harbors")

	if _, err := f.services.Song.List(ctx, 0, 0); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if err := f.services.Song.Delete(ctx, "song-1", admin); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	songs, err := f.services.Song.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("List after delete failed: %v", err)
	}
	if len(songs) != 0 {
		t.Errorf("Expected empty listing after delete, got %d songs", len(songs))
	}
}

func TestSongSearch_TitlePrefix(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedSong(f, "song-1", "Midnight Rain", "The Harbors")
	seedSong(f, "song-2", "Midnight Sun", "Aurora Fields")
	seedSong(f, "song-3", "Daybreak", "The Harbors")

	songs, err := f.services.Song.Search(ctx, "Midnight", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(songs) != 2 {
		t.Errorf("Expected 2 matches, got %d", len(songs))
	}
}

func TestSongUpdate_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.services.Song.Update(context.Background(), "missing", &models.SongInput{
		Title:  "T",
		Artist: "A",
		Lyrics: "L",
	}, admin)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestArtistGet_SongCountComputedOnRead(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	artist, err := f.services.Artist.Create(ctx, &models.ArtistInput{Name: "The Harbors"}, admin)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	seedSong(f, "song-1", "Midnight Rain", "The Harbors")
	seedSong(f, "song-2", "Daybreak", "The Harbors")

	got, err := f.services.Artist.Get(ctx, artist.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.SongCount != 2 {
		t.Errorf("Expected song count 2, got %d", got.SongCount)
	}
}

func TestLeaderboard_OrderedByContributions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	prolific := models.Identity{Email: "admin@x.com", Name: "Admin"}
	for _, songID := range []string{"s1", "s2", "s3"} {
		f.users.AddContribution(ctx, prolific, songID)
	}
	f.users.AddContribution(ctx, models.Identity{Email: "other@x.com", Name: "Other"}, "s4")

	ranks, err := f.services.User.Leaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(ranks) != 2 {
		t.Fatalf("Expected 2 contributors, got %d", len(ranks))
	}
	if ranks[0].Email != "admin@x.com" || ranks[0].ContributionCount != 3 {
		t.Errorf("Unexpected top contributor: %+v", ranks[0])
	}
}
