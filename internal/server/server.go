// Package server provides the HTTP surface of the resume builder: the wizard
// and preview pages, the document and edit APIs, export and auth.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/pdf"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/tailoring"
	"github.com/jonathan/resume-builder/internal/workspace"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	cfg         *config.Config
	logger      *logrus.Logger
	workspaces  *workspace.Manager
	users       db.UserStore
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	authHandler *AuthHandler
	pdfRenderer pdf.Renderer
	extractor   *export.Extractor
	tailor      *tailoring.Service
	closers     []func(context.Context) error
}

// Deps are the collaborators of a Server. Config, Storage, Users, Passwords,
// JWT and PDF are required; a nil LLM disables tailoring.
type Deps struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Storage   storage.Storage
	Users     db.UserStore
	Passwords *config.PasswordConfig
	JWT       *config.JWTConfig
	PDF       pdf.Renderer
	LLM       llm.Client
	RateLimit *ratelimit.Config
	Workspace []workspace.Option
}

// New creates a server from deps.
func New(deps Deps) (*Server, error) {
	switch {
	case deps.Config == nil:
		return nil, errors.New("server: config is required")
	case deps.Storage == nil:
		return nil, errors.New("server: storage is required")
	case deps.Users == nil:
		return nil, errors.New("server: user store is required")
	case deps.Passwords == nil || deps.JWT == nil:
		return nil, errors.New("server: password and JWT configs are required")
	case deps.PDF == nil:
		return nil, errors.New("server: PDF renderer is required")
	}

	logger := logging.OrStandard(deps.Logger)
	s := &Server{
		cfg:         deps.Config,
		logger:      logger,
		workspaces:  workspace.NewManager(deps.Storage, logger, deps.Workspace...),
		users:       deps.Users,
		rateLimiter: ratelimit.NewLimiter(deps.RateLimit),
		jwtService:  NewJWTService(deps.JWT),
		pdfRenderer: deps.PDF,
		extractor:   export.NewExtractor(nil, logger),
	}
	s.authHandler = NewAuthHandler(NewUserService(deps.Users, deps.Passwords), s.jwtService, logger)
	if deps.LLM != nil {
		s.tailor = tailoring.NewService(deps.LLM, logger)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", deps.Config.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF rendering
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Open builds every collaborator from cfg and returns a ready server.
// Close releases them.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	logger = logging.OrStandard(logger)

	store, err := storage.Open(ctx, storage.Options{
		Backend:  cfg.Storage.Backend,
		Dir:      cfg.Storage.Dir,
		RedisURL: cfg.Storage.RedisURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	users, err := db.Open(ctx, db.Options{
		Backend:       cfg.Users.Backend,
		DatabaseURL:   cfg.Users.DatabaseURL,
		MongoURI:      cfg.Users.MongoURI,
		MongoDatabase: cfg.Users.MongoDatabase,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open user store: %w", err)
	}

	passwords, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	renderer, err := pdf.New(pdf.Options{Engine: cfg.PDF.Engine, ChromePath: cfg.PDF.ChromePath})
	if err != nil {
		return nil, err
	}

	var client llm.Client
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, llm.ConfigFromEnv(), cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		client = gemini
	} else {
		logger.Info("GEMINI_API_KEY not set, tailoring disabled")
	}

	s, err := New(Deps{
		Config:    cfg,
		Logger:    logger,
		Storage:   store,
		Users:     users,
		Passwords: passwords,
		JWT:       jwtConfig,
		PDF:       renderer,
		LLM:       client,
		RateLimit: ratelimit.LoadConfig(),
	})
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, users.Close)
	if client != nil {
		s.closers = append(s.closers, func(context.Context) error { return client.Close() })
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		s.closers = append(s.closers, func(context.Context) error { return closer.Close() })
	}
	return s, nil
}

// Handler returns the full middleware chain over the router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.routes(mux)
	return s.withRateLimit(s.withLogging(s.withCORS(s.withSession(mux))))
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)

	// Pages
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /resume", s.handleResumePage)
	mux.HandleFunc("GET /templates", s.handleTemplatesPage)
	mux.HandleFunc("GET /preview", s.handlePreviewPage)
	mux.HandleFunc("GET /api/templates", s.handleListTemplates)

	// Document
	mux.HandleFunc("GET /api/resume", s.handleGetResume)
	mux.HandleFunc("PATCH /api/resume/personal-info", s.handleUpdatePersonalInfo)
	mux.HandleFunc("POST /api/resume/experience", s.handleAddExperience)
	mux.HandleFunc("PATCH /api/resume/experience/{id}", s.handleUpdateExperience)
	mux.HandleFunc("DELETE /api/resume/experience/{id}", s.handleDeleteExperience)
	mux.HandleFunc("POST /api/resume/education", s.handleAddEducation)
	mux.HandleFunc("PATCH /api/resume/education/{id}", s.handleUpdateEducation)
	mux.HandleFunc("DELETE /api/resume/education/{id}", s.handleDeleteEducation)
	mux.HandleFunc("POST /api/resume/skills", s.handleAddSkill)
	mux.HandleFunc("PATCH /api/resume/skills/{id}", s.handleUpdateSkill)
	mux.HandleFunc("DELETE /api/resume/skills/{id}", s.handleDeleteSkill)
	mux.HandleFunc("PUT /api/resume/fresher", s.handleSetFresher)
	mux.HandleFunc("POST /api/resume/reset", s.handleResetResume)

	// Wizard
	mux.HandleFunc("GET /api/wizard", s.handleGetWizard)
	mux.HandleFunc("PUT /api/wizard/personal-info", s.handleWizardPersonalInfo)
	mux.HandleFunc("POST /api/wizard/{section}/pending", s.handleAddPending)
	mux.HandleFunc("DELETE /api/wizard/{section}/pending/{id}", s.handleRemovePending)
	mux.HandleFunc("POST /api/wizard/{section}/save", s.handleSaveSection)

	// Inline editing
	mux.HandleFunc("GET /api/edit", s.handleEditState)
	mux.HandleFunc("POST /api/edit/begin", s.handleEditBegin)
	mux.HandleFunc("POST /api/edit/draft", s.handleEditDraft)
	mux.HandleFunc("POST /api/edit/commit", s.handleEditCommit)
	mux.HandleFunc("POST /api/edit/cancel", s.handleEditCancel)
	mux.HandleFunc("POST /api/edit/key", s.handleEditKey)
	mux.HandleFunc("POST /api/edit/placeholder", s.handleEditPlaceholder)

	// Export
	mux.HandleFunc("POST /api/export", s.handleExport)
	mux.HandleFunc("POST /api/generate-pdf", s.handleGeneratePDF)
	mux.HandleFunc("POST /api/tailor", s.handleTailor)

	// Auth
	validator := s.jwtService.AsTokenValidator()
	mux.HandleFunc("POST /api/register", s.authHandler.Register)
	mux.HandleFunc("POST /api/login", s.authHandler.Login)
	mux.Handle("GET /api/session", middleware.OptionalAuth(validator)(http.HandlerFunc(s.authHandler.Session)))
	mux.Handle("GET /api/me", middleware.AuthMiddleware(validator)(http.HandlerFunc(s.authHandler.Me)))
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.httpServer.Addr).Info("Server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	s.logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if err := s.Close(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("Server stopped")
	return nil
}

// Close stops the rate limiter and releases the collaborators opened by Open.
func (s *Server) Close(ctx context.Context) error {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	var errs []error
	for _, c := range s.closers {
		if err := c(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// withCORS allows the configured origins, or any origin when none are configured.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(s.cfg.AllowedOrigins) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(s.cfg.AllowedOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Page-Count")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
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

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"remote":   r.RemoteAddr,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("Error encoding JSON response")
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status with HTTPStatus. Field errors carry their
// per-field messages; internal errors are logged and hidden.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	var fields resume.FieldErrors
	switch {
	case errors.As(err, &fields):
		s.jsonResponse(w, status, map[string]any{"error": "validation failed", "fields": fields})
	case status == http.StatusInternalServerError:
		s.logger.WithError(err).Error("Request failed")
		s.errorResponse(w, status, "internal server error")
	default:
		s.errorResponse(w, status, err.Error())
	}
}

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Message: "Invalid request body: " + err.Error()}
	}
	return nil
}

// extractClientID returns the client IP from RemoteAddr.
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

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.WithFields(logrus.Fields{
		"limit":    info.Limit,
		"reset_at": info.ResetTime.Format(time.RFC3339),
	}).Warn("Rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
