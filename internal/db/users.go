package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// User Methods
// -----------------------------------------------------------------------------

const userColumns = `id, email, name, is_subscribed, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.IsSubscribed, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new unsubscribed user.
func (db *DB) CreateUser(ctx context.Context, email, name string) (*User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`INSERT INTO users (email, name)
		 VALUES ($1, $2)
		 RETURNING `+userColumns,
		strings.ToLower(strings.TrimSpace(email)), strings.TrimSpace(name),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// GetUser retrieves a user by ID. Returns (nil, nil) when absent.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetUserByEmail retrieves a user by email. Returns (nil, nil) when absent.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// SetSubscription updates the subscription flag and returns the user.
func (db *DB) SetSubscription(ctx context.Context, id uuid.UUID, subscribed bool) (*User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`UPDATE users SET is_subscribed = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, subscribed,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to set subscription: %w", err)
	}
	return u, nil
}

// IsSubscribed reports the subscription flag. Unknown users are not subscribed.
func (db *DB) IsSubscribed(ctx context.Context, id uuid.UUID) (bool, error) {
	var subscribed bool
	err := db.pool.QueryRow(ctx, `SELECT is_subscribed FROM users WHERE id = $1`, id).Scan(&subscribed)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to get subscription: %w", err)
	}
	return subscribed, nil
}
