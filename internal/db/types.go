package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
)

// User is an account. IsSubscribed decides whether premium templates render
// without a watermark.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	IsSubscribed bool      `json:"isSubscribed"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Resume is a saved resume owned by a user.
type Resume struct {
	ID         uuid.UUID        `json:"id"`
	UserID     uuid.UUID        `json:"userId"`
	Title      string           `json:"title"`
	TemplateID string           `json:"templateId"`
	Data       types.ResumeData `json:"data"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// ResumeInput holds the writable fields of a resume. The template is taken
// from Data.TemplateID.
type ResumeInput struct {
	Title string
	Data  types.ResumeData
}
