package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/postbot/backend/internal/domain"
	"github.com/pkordes/postbot/backend/internal/handler"
	"github.com/pkordes/postbot/backend/internal/service"
)

func viewFixture(id uuid.UUID) service.CampaignView {
	rec := domain.DefaultDraftRecord()
	return service.CampaignView{
		SessionID: id,
		Summary:   domain.SummaryOf(&rec),
		Platforms: domain.PlatformSelection{domain.PlatformInstagram, domain.PlatformLinkedIn},
		Posts: []domain.Post{
			domain.DefaultPost(domain.PlatformInstagram),
			domain.DefaultPost(domain.PlatformLinkedIn),
		},
	}
}

// ---- GET /sessions/{id}/campaign ------------------------------------------

func TestGetCampaign_200_TitleOnlyForLinkedIn(t *testing.T) {
	id := uuid.New()
	results := &mockResultsServicer{
		open: func(_ context.Context, _ uuid.UUID) (service.CampaignView, error) {
			return viewFixture(id), nil
		},
	}

	rec := httptest.NewRecorder()
	newHTTPHandler(nil, results, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/"+id.String()+"/campaign", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.CampaignResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "VIA", resp.Summary.BusinessName)
	require.Len(t, resp.Posts, 2)
	assert.Nil(t, resp.Posts[0].Title)
	require.NotNil(t, resp.Posts[1].Title)
	assert.NotEmpty(t, resp.Posts[1].Content)
	assert.Len(t, resp.Posts[0].Hashtags, 5)
}

// ---- PUT /sessions/{id}/campaign/posts/{platform} -------------------------

func TestEditPost_200(t *testing.T) {
	var got domain.PostEdit
	results := &mockResultsServicer{
		editPost: func(_ context.Context, _ uuid.UUID, p domain.Platform, e domain.PostEdit) (domain.Post, error) {
			got = e
			return domain.Post{Platform: p, Title: *e.Title, Content: e.Content, Hashtags: e.Hashtags}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/sessions/"+uuid.NewString()+"/campaign/posts/LinkedIn",
		jsonBody(t, map[string]any{"title": "New title", "content": "Body", "hashtags": []string{"#a"}}))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, results, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Body", got.Content)

	var resp handler.PostResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Title)
	assert.Equal(t, "New title", *resp.Title)
	assert.Equal(t, []string{"#a"}, resp.Hashtags)
}

func TestEditPost_422_MissingContent(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/sessions/"+uuid.NewString()+"/campaign/posts/Instagram",
		jsonBody(t, map[string]any{"hashtags": []string{}}))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, &mockResultsServicer{}, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "content is required", decodeError(t, rec.Body).Error.Message)
}

func TestEditPost_404_PlatformNotInCampaign(t *testing.T) {
	results := &mockResultsServicer{
		editPost: func(_ context.Context, _ uuid.UUID, _ domain.Platform, _ domain.PostEdit) (domain.Post, error) {
			return domain.Post{}, fmt.Errorf("service.ResultsService.EditPost: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/sessions/"+uuid.NewString()+"/campaign/posts/LinkedIn",
		strings.NewReader(`{"content":"x"}`))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, results, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "platform not part of this campaign", decodeError(t, rec.Body).Error.Message)
}

// ---- hashtags ---------------------------------------------------------------

func TestAddHashtag_200(t *testing.T) {
	results := &mockResultsServicer{
		addHashtag: func(_ context.Context, _ uuid.UUID, p domain.Platform, raw string) (domain.Post, error) {
			assert.Equal(t, domain.PlatformInstagram, p)
			assert.Equal(t, "launch", raw)
			return domain.Post{Platform: p, Content: "c", Hashtags: []string{"#launch"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+uuid.NewString()+"/campaign/posts/instagram/hashtags",
		jsonBody(t, handler.TagRequest{Tag: "launch"}))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, results, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.PostResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Nil(t, resp.Title)
	assert.Equal(t, []string{"#launch"}, resp.Hashtags)
}

func TestRemoveHashtag_DecodesHashInQuery(t *testing.T) {
	var got string
	results := &mockResultsServicer{
		removeHashtag: func(_ context.Context, _ uuid.UUID, p domain.Platform, value string) (domain.Post, error) {
			got = value
			return domain.Post{Platform: p}, nil
		},
	}

	target := "/sessions/" + uuid.NewString() + "/campaign/posts/Instagram/hashtags?value=" + url.QueryEscape("#TechForGood")
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, results, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, target, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "#TechForGood", got)

	var resp handler.PostResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotNil(t, resp.Hashtags)
}

// ---- regenerate / publish -------------------------------------------------

func TestRegeneratePost_200(t *testing.T) {
	results := &mockResultsServicer{
		regenerate: func(_ context.Context, _ uuid.UUID, p domain.Platform) (domain.Post, error) {
			return domain.DefaultPost(p), nil
		},
	}

	rec := httptest.NewRecorder()
	newHTTPHandler(nil, results, nil).ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/sessions/"+uuid.NewString()+"/campaign/posts/LinkedIn/regenerate", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.PostResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "LinkedIn", resp.Platform)
}

func TestPublish_409_WhileInFlight(t *testing.T) {
	results := &mockResultsServicer{
		publish: func(_ context.Context, _ uuid.UUID) (service.CampaignView, error) {
			return service.CampaignView{}, fmt.Errorf("service.ResultsService.Publish: %w", domain.ErrSubmissionInProgress)
		},
	}

	rec := httptest.NewRecorder()
	newHTTPHandler(nil, results, nil).ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/sessions/"+uuid.NewString()+"/campaign/publish", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "submission_in_progress", decodeError(t, rec.Body).Error.Code)
}

func TestPublish_200(t *testing.T) {
	id := uuid.New()
	results := &mockResultsServicer{
		publish: func(_ context.Context, _ uuid.UUID) (service.CampaignView, error) {
			return viewFixture(id), nil
		},
	}

	rec := httptest.NewRecorder()
	newHTTPHandler(nil, results, nil).ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/sessions/"+id.String()+"/campaign/publish", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.CampaignResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, id, resp.SessionID)
	assert.False(t, resp.Publishing)
}
