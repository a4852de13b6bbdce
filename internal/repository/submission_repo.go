package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/lyricverse-api/internal/database"
	"github.com/lyricverse-api/internal/models"
)

const submissionColumns = `id, title, artist, album, genre, language, release_date, lyrics,
	image_url, notes, status, created_at, updated_at`

// submissionRepo is the concrete implementation of SubmissionRepository
type submissionRepo struct {
	db *database.DB
}

// NewSubmissionRepo creates a new submission repository
func NewSubmissionRepo(db *database.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

// Create inserts a new pending submission
func (r *submissionRepo) Create(ctx context.Context, sub *models.Submission) error {
	query := `
		INSERT INTO submissions (id, title, artist, album, genre, language, release_date,
			lyrics, image_url, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		sub.ID, sub.Title, sub.Artist, sub.Album, sub.Genre, sub.Language,
		sub.ReleaseDate, sub.Lyrics, sub.ImageURL, sub.Notes,
		sub.Status, sub.CreatedAt, time.Now(),
	)
	return err
}

// GetByID retrieves a submission by ID
func (r *submissionRepo) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`
	var sub models.Submission
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sub.ID, &sub.Title, &sub.Artist, &sub.Album, &sub.Genre, &sub.Language,
		&sub.ReleaseDate, &sub.Lyrics, &sub.ImageURL, &sub.Notes,
		&sub.Status, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListByStatus retrieves submissions in the given status, oldest first
// so moderators see the queue in arrival order
func (r *submissionRepo) ListByStatus(ctx context.Context, status models.SubmissionStatus, limit, offset int) ([]*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE status = $1 ORDER BY created_at LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]*models.Submission, 0)
	for rows.Next() {
		var sub models.Submission
		err := rows.Scan(
			&sub.ID, &sub.Title, &sub.Artist, &sub.Album, &sub.Genre, &sub.Language,
			&sub.ReleaseDate, &sub.Lyrics, &sub.ImageURL, &sub.Notes,
			&sub.Status, &sub.CreatedAt, &sub.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}

// Delete removes a submission
func (r *submissionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM submissions WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// Count returns the total number of submissions
func (r *submissionRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM submissions").Scan(&count)
	return count, err
}

// Approve transitions a pending submission to approved, inserts the
// derived song and credits the approving admin, all in one transaction.
// The pending check is a compare-and-set on the status flip itself:
// of two concurrent approvals exactly one sees a row affected, the
// other gets ErrInvalidState. Any failure rolls the whole write back
// and the submission stays pending.
func (r *submissionRepo) Approve(ctx context.Context, submissionID string, song *models.Song, admin models.Identity) error {
	return r.db.WithinTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE submissions SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`,
			submissionID, models.SubmissionStatusApproved, time.Now(), models.SubmissionStatusPending,
		)
		if err != nil {
			return fmt.Errorf("flip submission status: %w", err)
		}
		if err := requireTransition(ctx, tx, res, submissionID); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO songs (id, title, artist, album, genre, language, release_date, lyrics, views,
				image_url, contributors, contributed_by_email, contributed_by_name, contributed_by_image,
				original_submission_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			song.ID, song.Title, song.Artist, song.Album, song.Genre, song.Language,
			song.ReleaseDate, song.Lyrics, song.Views, song.ImageURL,
			pq.Array(song.Contributors), song.ContributedByEmail, song.ContributedByName,
			song.ContributedByImage, song.OriginalSubmissionID, song.CreatedAt, song.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert approved song: %w", err)
		}

		// Set-union on contributions so repeat approvals by the same
		// admin never accumulate duplicate song ids.
		now := time.Now()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO users (email, name, image_url, contributions, last_contribution, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			ON CONFLICT (email) DO UPDATE SET
				name = EXCLUDED.name,
				image_url = EXCLUDED.image_url,
				contributions = ARRAY(SELECT DISTINCT unnest(users.contributions || EXCLUDED.contributions)),
				last_contribution = EXCLUDED.last_contribution,
				updated_at = EXCLUDED.updated_at`,
			admin.Email, admin.Name, admin.ImageURL, pq.Array([]string{song.ID}), now, now,
		)
		if err != nil {
			return fmt.Errorf("credit admin contribution: %w", err)
		}
		return nil
	})
}

// Reject transitions a pending submission to rejected with the same
// compare-and-set semantics as Approve
func (r *submissionRepo) Reject(ctx context.Context, submissionID string) error {
	return r.db.WithinTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE submissions SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`,
			submissionID, models.SubmissionStatusRejected, time.Now(), models.SubmissionStatusPending,
		)
		if err != nil {
			return fmt.Errorf("flip submission status: %w", err)
		}
		return requireTransition(ctx, tx, res, submissionID)
	})
}

// requireTransition distinguishes "submission missing" from "already
// terminal" when the compare-and-set touched no row
func requireTransition(ctx context.Context, tx *sql.Tx, res sql.Result, submissionID string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}

	var status models.SubmissionStatus
	err = tx.QueryRowContext(ctx, "SELECT status FROM submissions WHERE id = $1", submissionID).Scan(&status)
	if err == sql.ErrNoRows {
		return models.ErrNotFound
	}
	if err != nil {
		return err
	}
	return models.ErrInvalidState
}
