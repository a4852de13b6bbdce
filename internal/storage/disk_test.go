package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lyricverse-api/internal/config"
	"github.com/lyricverse-api/internal/models"
	"github.com/lyricverse-api/internal/storage"
	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) *storage.DiskStore {
	t.Helper()
	store, err := storage.NewDiskStore(&config.StorageConfig{
		UploadDir:     t.TempDir(),
		PublicBaseURL: "http://localhost:8080",
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}
	return store
}

func TestDiskStore_UploadAndURL(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	url, err := store.Upload(ctx, "songs/song-1/cover.jpg", strings.NewReader("jpegdata"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if url != "http://localhost:8080/uploads/songs/song-1/cover.jpg" {
		t.Errorf("Unexpected URL: %s", url)
	}

	data, err := os.ReadFile(filepath.Join(store.Root(), "songs", "song-1", "cover.jpg"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "jpegdata" {
		t.Errorf("Unexpected blob content: %s", data)
	}
}

func TestDiskStore_RejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Upload(context.Background(), "../outside.txt", strings.NewReader("x"))
	if err == nil {
		t.Fatal("Expected traversal path to be rejected")
	}
	if !errors.Is(err, models.ErrUploadFailed) {
		t.Errorf("Expected ErrUploadFailed, got %v", err)
	}
}

func TestDiskStore_OverwriteKeepsLatest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Upload(ctx, "artists/a-1/photo.png", strings.NewReader("old")); err != nil {
		t.Fatalf("first Upload failed: %v", err)
	}
	if _, err := store.Upload(ctx, "artists/a-1/photo.png", strings.NewReader("new")); err != nil {
		t.Fatalf("second Upload failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(store.Root(), "artists", "a-1", "photo.png"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("Expected latest content, got %s", data)
	}
}
