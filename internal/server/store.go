package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
)

// Store is the persistence the HTTP layer needs. *db.DB satisfies it.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, email, name string) (*db.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	SetSubscription(ctx context.Context, id uuid.UUID, subscribed bool) (*db.User, error)
	IsSubscribed(ctx context.Context, id uuid.UUID) (bool, error)

	CreateResume(ctx context.Context, userID uuid.UUID, input *db.ResumeInput) (*db.Resume, error)
	GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error)
	UpdateResume(ctx context.Context, id uuid.UUID, input *db.ResumeInput) (*db.Resume, error)
	DeleteResume(ctx context.Context, id uuid.UUID) error
	ListResumesByUser(ctx context.Context, userID uuid.UUID) ([]db.Resume, error)
}

var _ Store = (*db.DB)(nil)
