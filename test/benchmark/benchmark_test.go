package benchmark

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lyricverse-api/internal/mocks"
	"github.com/lyricverse-api/internal/models"
	"github.com/lyricverse-api/internal/validation"
)

// BenchmarkSearchByTitlePrefix benchmarks prefix search over a
// populated catalog
func BenchmarkSearchByTitlePrefix(b *testing.B) {
	songRepo := mocks.NewMockSongRepository()
	for i := 0; i < 10000; i++ {
		songRepo.Create(context.Background(), &models.Song{
			ID:     fmt.Sprintf("song-%05d", i),
			Title:  fmt.Sprintf("Title %05d", i),
			Artist: fmt.Sprintf("Artist %03d", i%100),
			Lyrics: "some lyrics",
		})
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		songs, err := songRepo.SearchByTitlePrefix(context.Background(), "Title 00", 50)
		if err != nil {
			b.Fatal(err)
		}
		if len(songs) == 0 {
			b.Fatal("expected matches")
		}
	}
}

// BenchmarkApproveSubmission benchmarks the full approval transition
// over a fresh pending submission each iteration
func BenchmarkApproveSubmission(b *testing.B) {
	songRepo := mocks.NewMockSongRepository()
	userRepo := mocks.NewMockUserRepository()
	subRepo := mocks.NewMockSubmissionRepository(songRepo, userRepo)
	admin := models.Identity{Email: "admin@test.com", Name: "Admin"}

	for i := 0; i < b.N; i++ {
		id := fmt.Sprintf("sub-%08d", i)
		subRepo.Submissions[id] = &models.Submission{
			ID:     id,
			Title:  "Yellow",
			Artist: "Coldplay",
			Lyrics: "Look at the stars",
			Status: models.SubmissionStatusPending,
		}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		id := fmt.Sprintf("sub-%08d", i)
		song := &models.Song{
			ID:     "song-" + id,
			Title:  "Yellow",
			Artist: "Coldplay",
			Lyrics: "Look at the stars",
		}
		if err := subRepo.Approve(context.Background(), id, song, admin); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(b.N)/b.Elapsed().Seconds(), "approvals/sec")
}

// BenchmarkValidateSubmissionInput benchmarks form validation with a
// realistic lyrics payload
func BenchmarkValidateSubmissionInput(b *testing.B) {
	lyrics := ""
	for i := 0; i < 60; i++ {
		lyrics += "Look at the stars, look how they shine for you\n"
	}
	input := &models.SubmissionInput{
		Title:       "Yellow",
		Artist:      "Coldplay",
		Album:       "Parachutes",
		Genre:       "Rock",
		Language:    "en",
		ReleaseDate: "2000-06-26",
		Lyrics:      lyrics,
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if errs := validation.ValidateSubmissionInput(input); len(errs) != 0 {
			b.Fatal(errs)
		}
	}
}

// BenchmarkLeaderboard benchmarks ranking a large contributor pool
func BenchmarkLeaderboard(b *testing.B) {
	userRepo := mocks.NewMockUserRepository()
	now := time.Now()
	for i := 0; i < 1000; i++ {
		email := fmt.Sprintf("admin%04d@test.com", i)
		contributions := make([]string, i%50+1)
		for j := range contributions {
			contributions[j] = fmt.Sprintf("song-%04d-%02d", i, j)
		}
		userRepo.Users[email] = &models.AdminUser{
			Email:            email,
			Name:             fmt.Sprintf("Admin %04d", i),
			Contributions:    contributions,
			LastContribution: &now,
		}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		ranks, err := userRepo.Leaderboard(context.Background(), 25)
		if err != nil {
			b.Fatal(err)
		}
		if len(ranks) != 25 {
			b.Fatalf("expected 25 ranks, got %d", len(ranks))
		}
	}
}
