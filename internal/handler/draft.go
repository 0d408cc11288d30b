package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/postbot/backend/internal/domain"
)

// DraftResponse is the form view as returned by every draft endpoint.
type DraftResponse struct {
	SessionID  uuid.UUID             `json:"sessionId"`
	Record     domain.CampaignRecord `json:"record"`
	Platforms  []string              `json:"platforms"`
	Generating bool                  `json:"generating"`
}

// UpdateDraftRequest is the body of PATCH /sessions/{sessionId}/draft.
// Omitted fields are left untouched.
type UpdateDraftRequest struct {
	BusinessName        *string `json:"businessName"`
	BusinessDescription *string `json:"businessDescription"`
	CampaignTitle       *string `json:"campaignTitle"`
	CampaignGoals       *string `json:"campaignGoals"`
	IntendedImpact      *string `json:"intendedImpact"`
}

// TagRequest is the body of the audience-tag and hashtag add endpoints.
type TagRequest struct {
	Tag string `json:"tag"`
}

// GenerateResponse tells the client where the generated campaign lives.
type GenerateResponse struct {
	SessionID uuid.UUID             `json:"sessionId"`
	Record    domain.CampaignRecord `json:"record"`
	Platforms []string              `json:"platforms"`
	Next      string                `json:"next"`
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, draft, err := s.forms.Create(r.Context())
	if err != nil {
		s.writeError(w, r, err, "session not found")
		return
	}
	w.Header().Set("Location", "/sessions/"+id.String()+"/draft")
	writeJSON(w, http.StatusCreated, draftToResponse(id, draft))
}

// GetDraft handles GET /sessions/{sessionId}/draft.
func (s *Server) GetDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := withSession(w, r)
	if !ok {
		return
	}
	draft, err := s.forms.Get(r.Context(), id)
	s.respondDraft(w, r, id, draft, err)
}

// UpdateDraft handles PATCH /sessions/{sessionId}/draft.
func (s *Server) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := withSession(w, r)
	if !ok {
		return
	}
	var body UpdateDraftRequest
	if !decodeBody(w, r, &body) {
		return
	}

	draft, err := s.forms.UpdateFields(r.Context(), id, domain.CampaignFields{
		BusinessName:        body.BusinessName,
		BusinessDescription: body.BusinessDescription,
		CampaignTitle:       body.CampaignTitle,
		CampaignGoals:       body.CampaignGoals,
		IntendedImpact:      body.IntendedImpact,
	})
	s.respondDraft(w, r, id, draft, err)
}

// AddAudienceTag handles POST /sessions/{sessionId}/draft/audience.
// A blank tag is accepted and ignored, matching the form's Enter-key behaviour.
func (s *Server) AddAudienceTag(w http.ResponseWriter, r *http.Request) {
	id, ok := withSession(w, r)
	if !ok {
		return
	}
	var body TagRequest
	if !decodeBody(w, r, &body) {
		return
	}
	draft, err := s.forms.AddAudienceTag(r.Context(), id, body.Tag)
	s.respondDraft(w, r, id, draft, err)
}

// RemoveAudienceTag handles DELETE /sessions/{sessionId}/draft/audience?value=.
func (s *Server) RemoveAudienceTag(w http.ResponseWriter, r *http.Request) {
	id, ok := withSession(w, r)
	if !ok {
		return
	}
	draft, err := s.forms.RemoveAudienceTag(r.Context(), id, r.URL.Query().Get("value"))
	s.respondDraft(w, r, id, draft, err)
}

// TogglePlatform handles POST /sessions/{sessionId}/draft/platforms/{platform}/toggle.
func (s *Server) TogglePlatform(w http.ResponseWriter, r *http.Request) {
	id, p, ok := withSessionAndPlatform(w, r)
	if !ok {
		return
	}
	draft, err := s.forms.TogglePlatform(r.Context(), id, p)
	s.respondDraft(w, r, id, draft, err)
}

// Generate handles POST /sessions/{sessionId}/generate.
// The results view notices the new save on its own and reloads.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	id, ok := withSession(w, r)
	if !ok {
		return
	}
	res, err := s.forms.Generate(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "session not found")
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{
		SessionID: res.SessionID,
		Record:    res.Record,
		Platforms: res.Platforms.Strings(),
		Next:      "/sessions/" + id.String() + "/campaign",
	})
}

func (s *Server) respondDraft(w http.ResponseWriter, r *http.Request, id uuid.UUID, draft domain.Draft, err error) {
	if err != nil {
		s.writeError(w, r, err, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, draftToResponse(id, draft))
}

// draftToResponse converts a domain.Draft into its wire form.
func draftToResponse(id uuid.UUID, d domain.Draft) DraftResponse {
	return DraftResponse{
		SessionID:  id,
		Record:     d.Record.Normalized(),
		Platforms:  d.Platforms.Strings(),
		Generating: d.Generating,
	}
}
