// Package handler implements the HTTP handlers for the PostBot campaign API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, draft.go, campaign.go, export.go) but share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/postbot/backend/internal/domain"
	"github.com/pkordes/postbot/backend/internal/service"
)

// FormServicer defines the form-view operations the draft handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching storage.
type FormServicer interface {
	Create(ctx context.Context) (uuid.UUID, domain.Draft, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Draft, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields domain.CampaignFields) (domain.Draft, error)
	AddAudienceTag(ctx context.Context, id uuid.UUID, raw string) (domain.Draft, error)
	RemoveAudienceTag(ctx context.Context, id uuid.UUID, value string) (domain.Draft, error)
	TogglePlatform(ctx context.Context, id uuid.UUID, p domain.Platform) (domain.Draft, error)
	Generate(ctx context.Context, id uuid.UUID) (service.GenerateResult, error)
}

// ResultsServicer defines the results-view operations.
type ResultsServicer interface {
	Open(ctx context.Context, id uuid.UUID) (service.CampaignView, error)
	EditPost(ctx context.Context, id uuid.UUID, p domain.Platform, edit domain.PostEdit) (domain.Post, error)
	AddHashtag(ctx context.Context, id uuid.UUID, p domain.Platform, raw string) (domain.Post, error)
	RemoveHashtag(ctx context.Context, id uuid.UUID, p domain.Platform, value string) (domain.Post, error)
	RegeneratePost(ctx context.Context, id uuid.UUID, p domain.Platform) (domain.Post, error)
	Publish(ctx context.Context, id uuid.UUID) (service.CampaignView, error)
}

// ExportServicer produces the review export for a session.
type ExportServicer interface {
	Export(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error)
}

// Server serves every API endpoint.
type Server struct {
	forms   FormServicer
	results ResultsServicer
	export  ExportServicer
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// Nil services are allowed in tests that never reach them.
func NewServer(forms FormServicer, results ResultsServicer, export ExportServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{forms: forms, results: results, export: export, log: log}
}

// Routes returns the API router. submitLimit wraps the generate and publish
// routes (rate limiting); pass nil for none.
func (s *Server) Routes(submitLimit func(http.Handler) http.Handler) http.Handler {
	if submitLimit == nil {
		submitLimit = func(next http.Handler) http.Handler { return next }
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)

		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/draft", s.GetDraft)
			r.Patch("/draft", s.UpdateDraft)
			r.Post("/draft/audience", s.AddAudienceTag)
			r.Delete("/draft/audience", s.RemoveAudienceTag)
			r.Post("/draft/platforms/{platform}/toggle", s.TogglePlatform)
			r.With(submitLimit).Post("/generate", s.Generate)

			r.Get("/campaign", s.GetCampaign)
			r.Get("/campaign/export", s.GetExport)
			r.With(submitLimit).Post("/campaign/publish", s.Publish)
			r.Put("/campaign/posts/{platform}", s.EditPost)
			r.Post("/campaign/posts/{platform}/hashtags", s.AddHashtag)
			r.Delete("/campaign/posts/{platform}/hashtags", s.RemoveHashtag)
			r.Post("/campaign/posts/{platform}/regenerate", s.RegeneratePost)
		})
	})
	return r
}
