package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/lyricverse-api/internal/database"
	"github.com/lyricverse-api/internal/models"
)

// artistRepo is the concrete implementation of ArtistRepository
type artistRepo struct {
	db *database.DB
}

// NewArtistRepo creates a new artist repository
func NewArtistRepo(db *database.DB) ArtistRepository {
	return &artistRepo{db: db}
}

// Create inserts a new artist
func (r *artistRepo) Create(ctx context.Context, artist *models.Artist) error {
	query := `
		INSERT INTO artists (id, name, bio, image_url, genres, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		artist.ID, artist.Name, artist.Bio, artist.ImageURL,
		pq.Array(artist.Genres), artist.CreatedAt, time.Now(),
	)
	return err
}

// GetByID retrieves an artist by ID with the song count computed at
// query time from the denormalized songs.artist column. The count is
// never written back, so a page view cannot race an unrelated update.
func (r *artistRepo) GetByID(ctx context.Context, id string) (*models.Artist, error) {
	query := `
		SELECT a.id, a.name, a.bio, a.image_url, a.genres, a.created_at, a.updated_at,
			(SELECT COUNT(*) FROM songs s WHERE s.artist = a.name) AS song_count
		FROM artists a WHERE a.id = $1
	`
	var artist models.Artist
	var genres pq.StringArray
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&artist.ID, &artist.Name, &artist.Bio, &artist.ImageURL,
		&genres, &artist.CreatedAt, &artist.UpdatedAt, &artist.SongCount,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	artist.Genres = genres
	return &artist, nil
}

// Update rewrites the mutable fields of an artist
func (r *artistRepo) Update(ctx context.Context, artist *models.Artist) error {
	query := `
		UPDATE artists SET name = $2, bio = $3, image_url = $4, genres = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		artist.ID, artist.Name, artist.Bio, artist.ImageURL, pq.Array(artist.Genres), time.Now(),
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// Delete removes an artist
func (r *artistRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM artists WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// List retrieves artists ordered by name with per-artist song counts
func (r *artistRepo) List(ctx context.Context, limit, offset int) ([]*models.Artist, error) {
	query := `
		SELECT a.id, a.name, a.bio, a.image_url, a.genres, a.created_at, a.updated_at,
			(SELECT COUNT(*) FROM songs s WHERE s.artist = a.name) AS song_count
		FROM artists a ORDER BY a.name LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	artists := make([]*models.Artist, 0)
	for rows.Next() {
		var artist models.Artist
		var genres pq.StringArray
		err := rows.Scan(
			&artist.ID, &artist.Name, &artist.Bio, &artist.ImageURL,
			&genres, &artist.CreatedAt, &artist.UpdatedAt, &artist.SongCount,
		)
		if err != nil {
			return nil, err
		}
		artist.Genres = genres
		artists = append(artists, &artist)
	}
	return artists, rows.Err()
}

// Count returns the total number of artists
func (r *artistRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM artists").Scan(&count)
	return count, err
}
