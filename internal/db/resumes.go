package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Resume Methods
// -----------------------------------------------------------------------------

const resumeColumns = `id, user_id, title, template_id, data, created_at, updated_at`

func scanResume(row pgx.Row) (*Resume, error) {
	var r Resume
	var dataJSON []byte
	if err := row.Scan(&r.ID, &r.UserID, &r.Title, &r.TemplateID, &dataJSON, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(dataJSON, &r.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume data: %w", err)
	}
	return &r, nil
}

func marshalData(input *ResumeInput) ([]byte, error) {
	data, err := json.Marshal(input.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume data: %w", err)
	}
	return data, nil
}

// CreateResume stores a new resume for a user.
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, input *ResumeInput) (*Resume, error) {
	dataJSON, err := marshalData(input)
	if err != nil {
		return nil, err
	}

	r, err := scanResume(db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, title, template_id, data)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+resumeColumns,
		userID, input.Title, input.Data.TemplateID, dataJSON,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return r, nil
}

// GetResume retrieves a resume by ID. Returns (nil, nil) when absent.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// UpdateResume replaces a resume's title and data.
func (db *DB) UpdateResume(ctx context.Context, id uuid.UUID, input *ResumeInput) (*Resume, error) {
	dataJSON, err := marshalData(input)
	if err != nil {
		return nil, err
	}

	r, err := scanResume(db.pool.QueryRow(ctx,
		`UPDATE resumes SET title = $2, template_id = $3, data = $4, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+resumeColumns,
		id, input.Title, input.Data.TemplateID, dataJSON,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return r, nil
}

// DeleteResume removes a resume.
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListResumesByUser returns a user's resumes, most recently updated first.
func (db *DB) ListResumesByUser(ctx context.Context, userID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes
		 WHERE user_id = $1
		 ORDER BY updated_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []Resume{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resumes: %w", err)
	}
	return resumes, nil
}
