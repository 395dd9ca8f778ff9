package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/types"
)

// maxBodyBytes caps request bodies. A resume is a few kilobytes.
const maxBodyBytes = 1 << 20

// Config holds server configuration. Store, JWT and AdminKey are optional:
// without Store and JWT the account routes are not mounted, and without
// AdminKey subscriptions cannot be changed over HTTP.
type Config struct {
	Port       int
	CORSOrigin string
	AdminKey   string

	Renderer  *rendering.Renderer
	Store     Store
	JWT       *JWTService
	Metrics   *observability.Metrics
	RateLimit *ratelimit.Config
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	renderer    *rendering.Renderer
	store       Store
	jwtService  *JWTService
	metrics     *observability.Metrics
	rateLimiter *ratelimit.Limiter
	corsOrigin  string
	adminKey    string
}

// New wires the routes and middleware. It does not open any connection.
func New(cfg Config) (*Server, error) {
	if cfg.Renderer == nil {
		return nil, errors.New("server requires a renderer")
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.DefaultMetrics()
	}

	s := &Server{
		renderer:    cfg.Renderer,
		store:       cfg.Store,
		jwtService:  cfg.JWT,
		metrics:     cfg.Metrics,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		corsOrigin:  cfg.CORSOrigin,
		adminKey:    cfg.AdminKey,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	// Catalog and stateless rendering
	mux.Handle("GET /templates", s.optionalAuth(http.HandlerFunc(s.handleListTemplates)))
	mux.Handle("GET /templates/{id}", s.optionalAuth(http.HandlerFunc(s.handleGetTemplate)))
	mux.Handle("POST /preview", s.optionalAuth(http.HandlerFunc(s.handlePreview)))
	mux.Handle("POST /render", s.optionalAuth(http.HandlerFunc(s.handleRender)))

	if s.store != nil && s.jwtService != nil {
		mux.HandleFunc("POST /users", s.handleCreateUser)
		mux.Handle("GET /users/{id}", s.requireAuth(http.HandlerFunc(s.handleGetUser)))
		mux.Handle("GET /users/{id}/resumes", s.requireAuth(http.HandlerFunc(s.handleListResumes)))
		if s.adminKey != "" {
			mux.Handle("PUT /users/{id}/subscription", s.requireAdmin(http.HandlerFunc(s.handleSetSubscription)))
		}

		mux.Handle("POST /resumes", s.requireAuth(http.HandlerFunc(s.handleCreateResume)))
		mux.Handle("GET /resumes/{id}", s.requireAuth(http.HandlerFunc(s.handleGetResume)))
		mux.Handle("PUT /resumes/{id}", s.requireAuth(http.HandlerFunc(s.handleUpdateResume)))
		mux.Handle("DELETE /resumes/{id}", s.requireAuth(http.HandlerFunc(s.handleDeleteResume)))
		mux.Handle("GET /resumes/{id}/preview", s.requireAuth(http.HandlerFunc(s.handleResumePreview)))
		mux.Handle("GET /resumes/{id}/download", s.requireAuth(http.HandlerFunc(s.handleResumeDownload)))
	} else {
		log.Printf("[server] account routes disabled (store=%t, jwt=%t)", s.store != nil, s.jwtService != nil)
	}

	// The metrics middleware reads r.Pattern after the mux has matched, so
	// nothing between it and the mux may replace the request.
	s.handler = s.withRateLimit(s.metrics.Middleware(s.withLogging(s.withCORS(mux))))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the full middleware chain, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("[server] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()
	log.Println("[server] stopped")
	return nil
}

// Close releases background resources without serving. Start calls it
// implicitly on shutdown.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Resume-Pages, X-Resume-Watermark")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their token bucket with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) optionalAuth(next http.Handler) http.Handler {
	if s.jwtService == nil {
		return next
	}
	return middleware.OptionalAuth(s.jwtService.AsTokenValidator())(next)
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return middleware.RequireAuth(s.jwtService.AsTokenValidator())(next)
}

// requireAdmin guards billing operations with the shared admin key.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) != 1 {
			s.errorResponse(w, http.StatusUnauthorized, "Invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// subscribed reports the caller's plan. Anonymous callers are unsubscribed.
func (s *Server) subscribed(r *http.Request) (bool, error) {
	userID, err := middleware.GetUserID(r)
	if err != nil || s.store == nil {
		return false, nil
	}
	ok, err := s.store.IsSubscribed(r.Context(), userID)
	if err != nil {
		return false, fmt.Errorf("failed to look up subscription: %w", err)
	}
	return ok, nil
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":    "ok",
		"templates": s.renderer.Catalog().Len(),
		"database":  "disabled",
	}
	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			log.Printf("[server] health: database ping failed: %v", err)
			resp["status"] = "degraded"
			resp["database"] = "unavailable"
		} else {
			resp["database"] = "ok"
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// decodeResume reads a raw ResumeData payload, checks it against the JSON
// schema and decodes it. Skills are de-duplicated.
func decodeResume(raw []byte) (*types.ResumeData, error) {
	if len(raw) == 0 {
		return nil, &ErrValidation{Field: "data", Message: "resume data is required"}
	}
	if err := schemas.ValidateResume(raw); err != nil {
		var malformed *schemas.MalformedError
		if errors.As(err, &malformed) {
			return nil, &ErrValidation{Field: "(root)", Message: "body is not valid JSON"}
		}
		return nil, err
	}

	var data types.ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &ErrValidation{Field: "(root)", Message: err.Error()}
	}
	data.Skills = types.NormalizeSkills(data.Skills)
	return &data, nil
}

// readBody reads a size-limited request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = body.Close() }()

	var buf json.RawMessage
	if err := json.NewDecoder(body).Decode(&buf); err != nil {
		return nil, &ErrValidation{Field: "(root)", Message: "invalid request body"}
	}
	return buf, nil
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

type errorBody struct {
	Error   string        `json:"error"`
	Details []errorDetail `json:"details,omitempty"`
}

type errorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fail maps err to a status and writes it. Internal errors are logged and
// reported without detail.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[server] internal error: %v", err)
		s.errorResponse(w, status, "Internal server error")
		return
	}

	body := errorBody{Error: err.Error()}
	var schemaErr *schemas.ValidationError
	var dataErr *types.ValidationError
	switch {
	case errors.As(err, &schemaErr):
		body.Error = "resume data does not match schema"
		for _, fe := range schemaErr.Errors {
			body.Details = append(body.Details, errorDetail{Field: fe.Field, Message: fe.Message})
		}
	case errors.As(err, &dataErr):
		body.Error = "invalid resume data"
		for _, fe := range dataErr.Fields {
			body.Details = append(body.Details, errorDetail{Field: fe.Field, Message: fe.Rule})
		}
	}
	s.jsonResponse(w, status, body)
}

// extractClientID returns the remote IP of the connection.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second).Seconds())
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] limit exceeded: limit=%d remaining=%d", info.Limit, info.Remaining)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
