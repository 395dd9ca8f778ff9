package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/middleware"
)

// ResumeRequest is the body of POST /resumes and PUT /resumes/{id}.
type ResumeRequest struct {
	Title string          `json:"title"`
	Data  json.RawMessage `json:"data"`
}

type resumeListResponse struct {
	Resumes []db.Resume `json:"resumes"`
	Count   int         `json:"count"`
}

// readResumeInput decodes and validates a resume write. The template must
// exist in the catalog so every stored resume can be rendered.
func (s *Server) readResumeInput(w http.ResponseWriter, r *http.Request) (*db.ResumeInput, error) {
	raw, err := readBody(w, r)
	if err != nil {
		return nil, err
	}
	var req ResumeRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, &ErrValidation{Field: "(root)", Message: "invalid request body"}
	}
	data, err := decodeResume(req.Data)
	if err != nil {
		return nil, err
	}
	if _, err := s.renderer.Catalog().Get(data.TemplateID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = data.PersonalInfo.FullName()
	}
	return &db.ResumeInput{Title: title, Data: *data}, nil
}

// ownedResume loads {id} and checks the caller owns it. Someone else's
// resume is reported as not found.
func (s *Server) ownedResume(r *http.Request) (*db.Resume, error) {
	resumeID, err := pathUUID(r, "id")
	if err != nil {
		return nil, err
	}
	caller, err := middleware.GetUserID(r)
	if err != nil {
		return nil, &ErrUnauthorized{}
	}

	resume, err := s.store.GetResume(r.Context(), resumeID)
	if err != nil {
		return nil, err
	}
	if resume == nil || resume.UserID != caller {
		return nil, &ErrResumeNotFound{ResumeID: resumeID}
	}
	return resume, nil
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.GetUserID(r)
	if err != nil {
		s.fail(w, &ErrUnauthorized{})
		return
	}
	input, err := s.readResumeInput(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	resume, err := s.store.CreateResume(r.Context(), caller, input)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Location", "/resumes/"+resume.ID.String())
	s.jsonResponse(w, http.StatusCreated, resume)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resume, err := s.ownedResume(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	resume, err := s.ownedResume(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	input, err := s.readResumeInput(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	updated, err := s.store.UpdateResume(r.Context(), resume.ID, input)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			err = &ErrResumeNotFound{ResumeID: resume.ID}
		}
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	resume, err := s.ownedResume(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.store.DeleteResume(r.Context(), resume.ID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			err = &ErrResumeNotFound{ResumeID: resume.ID}
		}
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := s.selfPathID(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	resumes, err := s.store.ListResumesByUser(r.Context(), userID)
	if err != nil {
		s.fail(w, err)
		return
	}
	if resumes == nil {
		resumes = []db.Resume{}
	}
	s.jsonResponse(w, http.StatusOK, resumeListResponse{Resumes: resumes, Count: len(resumes)})
}

// storedRenderRequest builds a render request for a stored resume.
// ?template= switches the layout without saving.
func (s *Server) storedRenderRequest(r *http.Request) (rendering.Request, error) {
	resume, err := s.ownedResume(r)
	if err != nil {
		return rendering.Request{}, err
	}
	subscribed, err := s.subscribed(r)
	if err != nil {
		return rendering.Request{}, err
	}
	data := resume.Data
	return rendering.Request{
		Data:       &data,
		TemplateID: r.URL.Query().Get("template"),
		Subscribed: subscribed,
	}, nil
}

func (s *Server) handleResumePreview(w http.ResponseWriter, r *http.Request) {
	req, err := s.storedRenderRequest(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writePreview(w, req)
}

func (s *Server) handleResumeDownload(w http.ResponseWriter, r *http.Request) {
	req, err := s.storedRenderRequest(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeDownload(w, req)
}
