package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/access"
	"github.com/jonathan/resume-builder/internal/catalog"
)

// templateView is a catalog entry as seen by the caller.
type templateView struct {
	catalog.Template
	Watermarked bool `json:"watermarked"`
}

type templateListResponse struct {
	Templates []templateView `json:"templates"`
	Count     int            `json:"count"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := catalog.Filter{
		Category: q.Get("category"),
		Query:    q.Get("q"),
	}
	if v := q.Get("premium"); v != "" {
		premium, err := strconv.ParseBool(v)
		if err != nil {
			s.fail(w, &ErrValidation{Field: "premium", Message: "must be true or false"})
			return
		}
		filter.Premium = &premium
	}

	subscribed, err := s.subscribed(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	templates := s.renderer.Catalog().List(filter)
	resp := templateListResponse{Templates: make([]templateView, 0, len(templates)), Count: len(templates)}
	for _, t := range templates {
		resp.Templates = append(resp.Templates, templateView{Template: t, Watermarked: access.ShouldWatermark(t, subscribed)})
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := s.renderer.Catalog().Get(r.PathValue("id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	subscribed, err := s.subscribed(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, templateView{Template: t, Watermarked: access.ShouldWatermark(t, subscribed)})
}
