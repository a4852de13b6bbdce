package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/lyricverse-api/internal/database"
	"github.com/lyricverse-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// GetByEmail retrieves an admin user by email
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	query := `
		SELECT email, name, image_url, contributions, last_contribution, created_at, updated_at
		FROM users WHERE email = $1
	`
	var user models.AdminUser
	var contributions pq.StringArray
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.Email, &user.Name, &user.ImageURL, &contributions,
		&user.LastContribution, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Contributions = contributions
	return &user, nil
}

// Upsert inserts or refreshes an admin user by email, keeping cached
// name and image current on every sign-in
func (r *userRepo) Upsert(ctx context.Context, user *models.AdminUser) error {
	query := `
		INSERT INTO users (email, name, image_url, contributions, last_contribution, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			image_url = EXCLUDED.image_url,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		user.Email, user.Name, user.ImageURL, pq.Array(user.Contributions),
		user.LastContribution, user.CreatedAt, time.Now(),
	)
	return err
}

// AddContribution credits a song to an admin outside the approval
// transaction, e.g. on direct admin song creation. Same set-union
// semantics as the approval path.
func (r *userRepo) AddContribution(ctx context.Context, admin models.Identity, songID string) error {
	now := time.Now()
	query := `
		INSERT INTO users (email, name, image_url, contributions, last_contribution, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			image_url = EXCLUDED.image_url,
			contributions = ARRAY(SELECT DISTINCT unnest(users.contributions || EXCLUDED.contributions)),
			last_contribution = EXCLUDED.last_contribution,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		admin.Email, admin.Name, admin.ImageURL, pq.Array([]string{songID}), now, now,
	)
	return err
}

// Leaderboard returns contributors ordered by contribution count
func (r *userRepo) Leaderboard(ctx context.Context, limit int) ([]*models.ContributorRank, error) {
	query := `
		SELECT email, name, image_url, cardinality(contributions) AS contribution_count, last_contribution
		FROM users
		WHERE cardinality(contributions) > 0
		ORDER BY contribution_count DESC, last_contribution DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ranks := make([]*models.ContributorRank, 0)
	for rows.Next() {
		var rank models.ContributorRank
		err := rows.Scan(&rank.Email, &rank.Name, &rank.ImageURL, &rank.ContributionCount, &rank.LastContribution)
		if err != nil {
			return nil, err
		}
		ranks = append(ranks, &rank)
	}
	return ranks, rows.Err()
}
