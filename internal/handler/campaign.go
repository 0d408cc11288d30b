package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/postbot/backend/internal/domain"
	"github.com/pkordes/postbot/backend/internal/service"
)

// CampaignResponse is the results view.
type CampaignResponse struct {
	SessionID  uuid.UUID      `json:"sessionId"`
	Summary    domain.Summary `json:"summary"`
	Platforms  []string       `json:"platforms"`
	Posts      []PostResponse `json:"posts"`
	Publishing bool           `json:"publishing"`
}

// PostResponse is one platform's post.
type PostResponse struct {
	Platform string   `json:"platform"`
	Title    *string  `json:"title,omitempty"`
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
}

// EditPostRequest is the body of PUT /sessions/{sessionId}/campaign/posts/{platform}.
type EditPostRequest struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	Hashtags []string `json:"hashtags"`
}

// GetCampaign handles GET /sessions/{sessionId}/campaign.
func (s *Server) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := withSession(w, r)
	if !ok {
		return
	}
	view, err := s.results.Open(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "campaign not found")
		return
	}
	writeJSON(w, http.StatusOK, viewToResponse(view))
}

// EditPost handles PUT /sessions/{sessionId}/campaign/posts/{platform}.
func (s *Server) EditPost(w http.ResponseWriter, r *http.Request) {
	id, p, ok := withSessionAndPlatform(w, r)
	if !ok {
		return
	}
	var body EditPostRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Content == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("content is required"))
		return
	}

	post, err := s.results.EditPost(r.Context(), id, p, domain.PostEdit{
		Title:    body.Title,
		Content:  *body.Content,
		Hashtags: body.Hashtags,
	})
	s.respondPost(w, r, post, err)
}

// AddHashtag handles POST /sessions/{sessionId}/campaign/posts/{platform}/hashtags.
func (s *Server) AddHashtag(w http.ResponseWriter, r *http.Request) {
	id, p, ok := withSessionAndPlatform(w, r)
	if !ok {
		return
	}
	var body TagRequest
	if !decodeBody(w, r, &body) {
		return
	}
	post, err := s.results.AddHashtag(r.Context(), id, p, body.Tag)
	s.respondPost(w, r, post, err)
}

// RemoveHashtag handles DELETE /sessions/{sessionId}/campaign/posts/{platform}/hashtags?value=.
// The value travels in the query string because "#" cannot appear in a path.
func (s *Server) RemoveHashtag(w http.ResponseWriter, r *http.Request) {
	id, p, ok := withSessionAndPlatform(w, r)
	if !ok {
		return
	}
	post, err := s.results.RemoveHashtag(r.Context(), id, p, r.URL.Query().Get("value"))
	s.respondPost(w, r, post, err)
}

// RegeneratePost handles POST /sessions/{sessionId}/campaign/posts/{platform}/regenerate.
func (s *Server) RegeneratePost(w http.ResponseWriter, r *http.Request) {
	id, p, ok := withSessionAndPlatform(w, r)
	if !ok {
		return
	}
	post, err := s.results.RegeneratePost(r.Context(), id, p)
	s.respondPost(w, r, post, err)
}

// Publish handles POST /sessions/{sessionId}/campaign/publish.
func (s *Server) Publish(w http.ResponseWriter, r *http.Request) {
	id, ok := withSession(w, r)
	if !ok {
		return
	}
	view, err := s.results.Publish(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "campaign not found")
		return
	}
	writeJSON(w, http.StatusOK, viewToResponse(view))
}

func (s *Server) respondPost(w http.ResponseWriter, r *http.Request, post domain.Post, err error) {
	if err != nil {
		s.writeError(w, r, err, "platform not part of this campaign")
		return
	}
	writeJSON(w, http.StatusOK, postToResponse(post))
}

// --- mapping helpers --------------------------------------------------------

func viewToResponse(v service.CampaignView) CampaignResponse {
	resp := CampaignResponse{
		SessionID:  v.SessionID,
		Summary:    v.Summary,
		Platforms:  v.Platforms.Strings(),
		Posts:      make([]PostResponse, len(v.Posts)),
		Publishing: v.Publishing,
	}
	for i, p := range v.Posts {
		resp.Posts[i] = postToResponse(p)
	}
	return resp
}

// postToResponse omits the title for platforms that do not carry one.
func postToResponse(p domain.Post) PostResponse {
	resp := PostResponse{
		Platform: string(p.Platform),
		Content:  p.Content,
		Hashtags: p.Hashtags,
	}
	if resp.Hashtags == nil {
		resp.Hashtags = []string{}
	}
	if p.Platform.SupportsTitle() {
		title := p.Title
		resp.Title = &title
	}
	return resp
}
