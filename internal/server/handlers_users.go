package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/server/middleware"
)

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateUserResponse returns the new account and a bearer token for it.
type CreateUserResponse struct {
	User  *db.User `json:"user"`
	Token string   `json:"token"`
}

// SubscriptionRequest is the body of PUT /users/{id}/subscription.
type SubscriptionRequest struct {
	Subscribed *bool `json:"subscribed"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.fail(w, &ErrValidation{Field: "(root)", Message: "invalid request body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" {
		s.fail(w, &ErrValidation{Field: "name", Message: "is required"})
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil || strings.ContainsAny(req.Email, "<> ") {
		s.fail(w, &ErrValidation{Field: "email", Message: "must be a valid email address"})
		return
	}

	user, err := s.store.CreateUser(r.Context(), req.Email, req.Name)
	if err != nil {
		s.fail(w, err)
		return
	}
	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, CreateUserResponse{User: user, Token: token})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := s.selfPathID(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		s.fail(w, err)
		return
	}
	if user == nil {
		s.fail(w, &ErrUserNotFound{UserID: userID})
		return
	}
	s.jsonResponse(w, http.StatusOK, user)
}

func (s *Server) handleSetSubscription(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "id")
	if err != nil {
		s.fail(w, err)
		return
	}

	var req SubscriptionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil || req.Subscribed == nil {
		s.fail(w, &ErrValidation{Field: "subscribed", Message: "must be true or false"})
		return
	}

	user, err := s.store.SetSubscription(r.Context(), userID, *req.Subscribed)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			err = &ErrUserNotFound{UserID: userID}
		}
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, user)
}

// pathUUID parses a path parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: "must be a UUID"}
	}
	return id, nil
}

// selfPathID parses {id} and checks it is the authenticated caller.
func (s *Server) selfPathID(r *http.Request) (uuid.UUID, error) {
	userID, err := pathUUID(r, "id")
	if err != nil {
		return uuid.Nil, err
	}
	caller, err := middleware.GetUserID(r)
	if err != nil {
		return uuid.Nil, &ErrUnauthorized{}
	}
	if caller != userID {
		return uuid.Nil, &ErrForbidden{Resource: "user " + userID.String()}
	}
	return userID, nil
}
