package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lyricverse-api/internal/mocks"
	"github.com/lyricverse-api/internal/models"
)

func TestMockSongRepository_CRUD(t *testing.T) {
	repo := mocks.NewMockSongRepository()
	ctx := context.Background()

	song := &models.Song{ID: "song-1", Title: "Yellow", Artist: "Coldplay", Lyrics: "Look at the stars"}
	if err := repo.Create(ctx, song); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	stored, err := repo.GetByID(ctx, "song-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Title != "Yellow" {
		t.Errorf("Expected title Yellow, got %q", stored.Title)
	}

	stored.Album = "Parachutes"
	if err := repo.Update(ctx, stored); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	updated, _ := repo.GetByID(ctx, "song-1")
	if updated.Album != "Parachutes" {
		t.Errorf("Expected album Parachutes, got %q", updated.Album)
	}

	if err := repo.Delete(ctx, "song-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, "song-1"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestMockSongRepository_IncrementViews(t *testing.T) {
	repo := mocks.NewMockSongRepository()
	ctx := context.Background()

	repo.Create(ctx, &models.Song{ID: "song-1", Title: "Yellow", Artist: "Coldplay"})

	for i := 0; i < 5; i++ {
		if err := repo.IncrementViews(ctx, "song-1"); err != nil {
			t.Fatalf("IncrementViews failed: %v", err)
		}
	}

	song, _ := repo.GetByID(ctx, "song-1")
	if song.Views != 5 {
		t.Errorf("Expected 5 views, got %d", song.Views)
	}

	if err := repo.IncrementViews(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing song, got %v", err)
	}
}

func TestMockSongRepository_SearchByTitlePrefix(t *testing.T) {
	repo := mocks.NewMockSongRepository()
	ctx := context.Background()

	titles := []string{"Yellow", "Yesterday", "yellow submarine", "Clocks"}
	for i, title := range titles {
		repo.Create(ctx, &models.Song{ID: fmt.Sprintf("song-%d", i), Title: title, Artist: "Various"})
	}

	matches, err := repo.SearchByTitlePrefix(ctx, "ye", 10)
	if err != nil {
		t.Fatalf("SearchByTitlePrefix failed: %v", err)
	}
	if len(matches) != 3 {
		t.Errorf("Expected 3 case-insensitive matches, got %d", len(matches))
	}

	limited, _ := repo.SearchByTitlePrefix(ctx, "ye", 2)
	if len(limited) != 2 {
		t.Errorf("Expected limit to cap results at 2, got %d", len(limited))
	}
}

func TestMockArtistRepository_SongCountComputed(t *testing.T) {
	songs := mocks.NewMockSongRepository()
	artists := mocks.NewMockArtistRepository()
	artists.Songs = songs
	ctx := context.Background()

	artists.Create(ctx, &models.Artist{ID: "artist-1", Name: "Coldplay"})
	songs.Create(ctx, &models.Song{ID: "song-1", Title: "Yellow", Artist: "Coldplay"})
	songs.Create(ctx, &models.Song{ID: "song-2", Title: "Clocks", Artist: "Coldplay"})

	artist, err := artists.GetByID(ctx, "artist-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if artist.SongCount != 2 {
		t.Errorf("Expected song count 2, got %d", artist.SongCount)
	}

	// count reflects the catalog at read time
	songs.Delete(ctx, "song-2")
	artist, _ = artists.GetByID(ctx, "artist-1")
	if artist.SongCount != 1 {
		t.Errorf("Expected song count 1 after delete, got %d", artist.SongCount)
	}
}

func TestMockSubmissionRepository_ApproveTransition(t *testing.T) {
	songs := mocks.NewMockSongRepository()
	users := mocks.NewMockUserRepository()
	subs := mocks.NewMockSubmissionRepository(songs, users)
	ctx := context.Background()
	admin := models.Identity{Email: "admin@test.com", Name: "Admin"}

	subs.Submissions["sub-1"] = &models.Submission{
		ID: "sub-1", Title: "Yellow", Artist: "Coldplay", Lyrics: "la", Status: models.SubmissionStatusPending,
	}

	song := &models.Song{ID: "song-1", Title: "Yellow", Artist: "Coldplay", Lyrics: "la"}
	if err := subs.Approve(ctx, "sub-1", song, admin); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	if subs.Submissions["sub-1"].Status != models.SubmissionStatusApproved {
		t.Errorf("Expected approved status, got %q", subs.Submissions["sub-1"].Status)
	}
	if _, err := songs.GetByID(ctx, "song-1"); err != nil {
		t.Errorf("Expected song published: %v", err)
	}
	user, err := users.GetByEmail(ctx, "admin@test.com")
	if err != nil {
		t.Fatalf("Expected contributor record: %v", err)
	}
	if len(user.Contributions) != 1 || user.Contributions[0] != "song-1" {
		t.Errorf("Expected contribution credited, got %v", user.Contributions)
	}

	// approved is terminal
	err = subs.Approve(ctx, "sub-1", song, admin)
	if !errors.Is(err, models.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState on re-approve, got %v", err)
	}

	if err := subs.Approve(ctx, "missing", song, admin); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown submission, got %v", err)
	}
}

func TestMockSubmissionRepository_TxErrorLeavesNoTrace(t *testing.T) {
	songs := mocks.NewMockSongRepository()
	users := mocks.NewMockUserRepository()
	subs := mocks.NewMockSubmissionRepository(songs, users)
	ctx := context.Background()
	admin := models.Identity{Email: "admin@test.com"}

	subs.Submissions["sub-1"] = &models.Submission{
		ID: "sub-1", Title: "Yellow", Artist: "Coldplay", Lyrics: "la", Status: models.SubmissionStatusPending,
	}
	subs.TxError = errors.New("connection reset")

	err := subs.Approve(ctx, "sub-1", &models.Song{ID: "song-1"}, admin)
	if err == nil {
		t.Fatal("Expected transaction error")
	}

	if subs.Submissions["sub-1"].Status != models.SubmissionStatusPending {
		t.Errorf("Expected submission still pending, got %q", subs.Submissions["sub-1"].Status)
	}
	if count, _ := songs.Count(ctx); count != 0 {
		t.Errorf("Expected no song published, got %d", count)
	}
	if _, err := users.GetByEmail(ctx, "admin@test.com"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected no contribution credited, got %v", err)
	}
}

func TestMockSubmissionRepository_ListByStatus(t *testing.T) {
	subs := mocks.NewMockSubmissionRepository(nil, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		status := models.SubmissionStatusPending
		if i%2 == 1 {
			status = models.SubmissionStatusRejected
		}
		id := fmt.Sprintf("sub-%d", i)
		subs.Submissions[id] = &models.Submission{ID: id, Title: "T", Artist: "A", Status: status}
	}

	pending, err := subs.ListByStatus(ctx, models.SubmissionStatusPending, 10, 0)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(pending) != 3 {
		t.Errorf("Expected 3 pending submissions, got %d", len(pending))
	}

	page, _ := subs.ListByStatus(ctx, models.SubmissionStatusPending, 2, 2)
	if len(page) != 1 {
		t.Errorf("Expected 1 submission on second page, got %d", len(page))
	}

	// LIMIT 0 returns no rows, as the real store does
	empty, _ := subs.ListByStatus(ctx, models.SubmissionStatusPending, 0, 0)
	if len(empty) != 0 {
		t.Errorf("Expected no submissions with zero limit, got %d", len(empty))
	}
}

func TestMockUserRepository_ContributionSetUnion(t *testing.T) {
	users := mocks.NewMockUserRepository()
	ctx := context.Background()
	admin := models.Identity{Email: "admin@test.com", Name: "Admin"}

	for i := 0; i < 3; i++ {
		if err := users.AddContribution(ctx, admin, "song-1"); err != nil {
			t.Fatalf("AddContribution failed: %v", err)
		}
	}
	users.AddContribution(ctx, admin, "song-2")

	user, err := users.GetByEmail(ctx, "admin@test.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if len(user.Contributions) != 2 {
		t.Errorf("Expected 2 distinct contributions, got %v", user.Contributions)
	}
	if user.LastContribution == nil {
		t.Error("Expected last contribution timestamp set")
	}
}

func TestMockUserRepository_Leaderboard(t *testing.T) {
	users := mocks.NewMockUserRepository()
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		admin := models.Identity{Email: fmt.Sprintf("admin%d@test.com", i)}
		for j := 0; j < i; j++ {
			users.AddContribution(ctx, admin, fmt.Sprintf("song-%d-%d", i, j))
		}
	}

	ranks, err := users.Leaderboard(ctx, 3)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(ranks) != 3 {
		t.Fatalf("Expected 3 ranks with limit, got %d", len(ranks))
	}
	if ranks[0].Email != "admin4@test.com" || ranks[0].ContributionCount != 4 {
		t.Errorf("Expected admin4 first with 4 contributions, got %v", ranks[0])
	}
	for i := 1; i < len(ranks); i++ {
		if ranks[i].ContributionCount > ranks[i-1].ContributionCount {
			t.Error("Expected descending contribution counts")
		}
	}
}
