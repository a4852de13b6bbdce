package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/lyricverse-api/internal/database"
	"github.com/lyricverse-api/internal/models"
)

const songColumns = `id, title, artist, album, genre, language, release_date, lyrics, views,
	image_url, contributors, contributed_by_email, contributed_by_name, contributed_by_image,
	original_submission_id, created_at, updated_at`

// songRepo is the concrete implementation of SongRepository
type songRepo struct {
	db *database.DB
}

// NewSongRepo creates a new song repository
func NewSongRepo(db *database.DB) SongRepository {
	return &songRepo{db: db}
}

// Create inserts a new song
func (r *songRepo) Create(ctx context.Context, song *models.Song) error {
	query := `
		INSERT INTO songs (id, title, artist, album, genre, language, release_date, lyrics, views,
			image_url, contributors, contributed_by_email, contributed_by_name, contributed_by_image,
			original_submission_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := r.db.ExecContext(ctx, query,
		song.ID, song.Title, song.Artist, song.Album, song.Genre, song.Language,
		song.ReleaseDate, song.Lyrics, song.Views, song.ImageURL,
		pq.Array(song.Contributors), song.ContributedByEmail, song.ContributedByName,
		song.ContributedByImage, song.OriginalSubmissionID, song.CreatedAt, time.Now(),
	)
	return err
}

// GetByID retrieves a song by ID
func (r *songRepo) GetByID(ctx context.Context, id string) (*models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = $1`
	return scanSong(r.db.QueryRowContext(ctx, query, id))
}

// Update rewrites the mutable fields of a song
func (r *songRepo) Update(ctx context.Context, song *models.Song) error {
	query := `
		UPDATE songs SET title = $2, artist = $3, album = $4, genre = $5, language = $6,
			release_date = $7, lyrics = $8, image_url = $9, updated_at = $10
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		song.ID, song.Title, song.Artist, song.Album, song.Genre, song.Language,
		song.ReleaseDate, song.Lyrics, song.ImageURL, time.Now(),
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// Delete removes a song
func (r *songRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM songs WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// List retrieves songs ordered by newest first
func (r *songRepo) List(ctx context.Context, limit, offset int) ([]*models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSongs(rows)
}

// likeEscaper neutralizes LIKE metacharacters in user-supplied search
// text so a query containing % or _ matches them literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchByTitlePrefix retrieves songs whose title starts with the prefix,
// case-insensitive, ordered by title
func (r *songRepo) SearchByTitlePrefix(ctx context.Context, prefix string, limit int) ([]*models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE title ILIKE $1 || '%' ORDER BY title LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, likeEscaper.Replace(prefix), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSongs(rows)
}

// IncrementViews bumps the view counter without a read-modify-write cycle
func (r *songRepo) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE songs SET views = views + 1 WHERE id = $1", id)
	return err
}

// CountByArtist counts songs by denormalized artist name
func (r *songRepo) CountByArtist(ctx context.Context, artistName string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM songs WHERE artist = $1", artistName).Scan(&count)
	return count, err
}

// Count returns the total number of songs
func (r *songRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM songs").Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSong(row rowScanner) (*models.Song, error) {
	var song models.Song
	var contributors pq.StringArray
	err := row.Scan(
		&song.ID, &song.Title, &song.Artist, &song.Album, &song.Genre, &song.Language,
		&song.ReleaseDate, &song.Lyrics, &song.Views, &song.ImageURL,
		&contributors, &song.ContributedByEmail, &song.ContributedByName,
		&song.ContributedByImage, &song.OriginalSubmissionID, &song.CreatedAt, &song.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	song.Contributors = contributors
	return &song, nil
}

func scanSongs(rows *sql.Rows) ([]*models.Song, error) {
	songs := make([]*models.Song, 0)
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

func requireRowAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}
