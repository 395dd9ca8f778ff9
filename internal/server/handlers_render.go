package server

import (
	"fmt"
	"log"
	"mime"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// handlePreview renders the posted resume data as HTML. The template comes
// from ?template= or, when absent, from the data's templateId.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	data, subscribed, ok := s.readRenderRequest(w, r)
	if !ok {
		return
	}
	s.writePreview(w, rendering.Request{
		Data:       data,
		TemplateID: r.URL.Query().Get("template"),
		Subscribed: subscribed,
	})
}

// handleRender renders the posted resume data as a PDF attachment.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	data, subscribed, ok := s.readRenderRequest(w, r)
	if !ok {
		return
	}
	s.writeDownload(w, rendering.Request{
		Data:       data,
		TemplateID: r.URL.Query().Get("template"),
		Subscribed: subscribed,
	})
}

func (s *Server) readRenderRequest(w http.ResponseWriter, r *http.Request) (*types.ResumeData, bool, bool) {
	raw, err := readBody(w, r)
	if err != nil {
		s.fail(w, err)
		return nil, false, false
	}
	data, err := decodeResume(raw)
	if err != nil {
		s.fail(w, err)
		return nil, false, false
	}
	subscribed, err := s.subscribed(r)
	if err != nil {
		s.fail(w, err)
		return nil, false, false
	}
	return data, subscribed, true
}

func (s *Server) writePreview(w http.ResponseWriter, req rendering.Request) {
	html, err := s.renderer.Preview(req)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", rendering.ContentTypeHTML)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Printf("[server] failed to write preview: %v", err)
	}
}

// writeDownload renders the PDF fully before writing anything, so a failed
// render never sends a partial document.
func (s *Server) writeDownload(w http.ResponseWriter, req rendering.Request) {
	out, err := s.renderer.Download(req)
	if err != nil {
		s.fail(w, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", out.ContentType)
	h.Set("Content-Length", strconv.Itoa(len(out.Body)))
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": out.Filename}))
	h.Set("X-Resume-Pages", strconv.Itoa(out.Pages))
	h.Set("X-Resume-Watermark", fmt.Sprintf("%t", out.Watermark))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.Body); err != nil {
		log.Printf("[server] failed to write pdf: %v", err)
	}
}
