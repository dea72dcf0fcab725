package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"

	"miniblog/internal/core/users"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.Repository {
	return &postgresUserRepo{db: db}
}

// Create inserts a new user into the users table
func (r *postgresUserRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		INSERT INTO users (id, name)
		VALUES ($1, $2)
		RETURNING id, name, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, user.ID, user.Name).
		Scan(&user.ID, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, fmt.Errorf("user with id already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by id
func (r *postgresUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	user := &users.User{}
	query := `SELECT id, name, created_at, updated_at FROM users WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Name, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

const maxBatchSize = 1000

// GetByIDs retrieves multiple users in a single query.
// Returns a map of id -> User; missing users are not included in the
// result map (no error for missing users).
func (r *postgresUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*users.User, error) {
	if len(ids) == 0 {
		return make(map[string]*users.User), nil
	}

	if len(ids) > maxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds maximum %d", len(ids), maxBatchSize)
	}

	query := `SELECT id, name, created_at, updated_at FROM users WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query users by ids: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	result := make(map[string]*users.User, len(ids))
	for rows.Next() {
		user := &users.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		result[user.ID] = user
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return result, nil
}

// ToggleFollow flips the follower→followee edge inside one transaction
// and reads back both relationship sets. The single transactional
// boundary keeps the two sides of the relationship consistent even
// under concurrent toggles on the same pair.
func (r *postgresUserRepo) ToggleFollow(ctx context.Context, followerID, followeeID string) (*users.FollowState, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start follow transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("failed to rollback follow transaction",
				slog.String("follower", followerID),
				slog.String("error", err.Error()),
			)
		}
	}()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove follow edge: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check removed follow edge: %w", err)
	}

	state := &users.FollowState{Followed: removed == 0}

	if state.Followed {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2)`,
			followerID, followeeID)
		if err != nil {
			if strings.Contains(err.Error(), "violates foreign key constraint") {
				return nil, users.ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to insert follow edge: %w", err)
		}
	}

	state.Following, err = scanIDs(tx.QueryContext(ctx,
		`SELECT followee_id FROM follows WHERE follower_id = $1 ORDER BY created_at, followee_id`,
		followerID))
	if err != nil {
		return nil, fmt.Errorf("failed to load following set: %w", err)
	}

	state.Followers, err = scanIDs(tx.QueryContext(ctx,
		`SELECT follower_id FROM follows WHERE followee_id = $1 ORDER BY created_at, follower_id`,
		followeeID))
	if err != nil {
		return nil, fmt.Errorf("failed to load followers set: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit follow transaction: %w", err)
	}

	return state, nil
}

// scanIDs collects a single-column id result set. Always returns a
// non-nil slice so empty relationship sets serialize as [].
func scanIDs(rows *sql.Rows, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
