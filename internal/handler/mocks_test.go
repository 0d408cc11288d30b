package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/postbot/backend/internal/domain"
	"github.com/pkordes/postbot/backend/internal/handler"
	"github.com/pkordes/postbot/backend/internal/service"
)

// mockFormServicer is a test double for handler.FormServicer.
// Set only the method fields your test needs.
type mockFormServicer struct {
	create         func(ctx context.Context) (uuid.UUID, domain.Draft, error)
	get            func(ctx context.Context, id uuid.UUID) (domain.Draft, error)
	updateFields   func(ctx context.Context, id uuid.UUID, f domain.CampaignFields) (domain.Draft, error)
	addAudience    func(ctx context.Context, id uuid.UUID, raw string) (domain.Draft, error)
	removeAudience func(ctx context.Context, id uuid.UUID, value string) (domain.Draft, error)
	toggle         func(ctx context.Context, id uuid.UUID, p domain.Platform) (domain.Draft, error)
	generate       func(ctx context.Context, id uuid.UUID) (service.GenerateResult, error)
}

func (m *mockFormServicer) Create(ctx context.Context) (uuid.UUID, domain.Draft, error) {
	return m.create(ctx)
}
func (m *mockFormServicer) Get(ctx context.Context, id uuid.UUID) (domain.Draft, error) {
	return m.get(ctx, id)
}
func (m *mockFormServicer) UpdateFields(ctx context.Context, id uuid.UUID, f domain.CampaignFields) (domain.Draft, error) {
	return m.updateFields(ctx, id, f)
}
func (m *mockFormServicer) AddAudienceTag(ctx context.Context, id uuid.UUID, raw string) (domain.Draft, error) {
	return m.addAudience(ctx, id, raw)
}
func (m *mockFormServicer) RemoveAudienceTag(ctx context.Context, id uuid.UUID, value string) (domain.Draft, error) {
	return m.removeAudience(ctx, id, value)
}
func (m *mockFormServicer) TogglePlatform(ctx context.Context, id uuid.UUID, p domain.Platform) (domain.Draft, error) {
	return m.toggle(ctx, id, p)
}
func (m *mockFormServicer) Generate(ctx context.Context, id uuid.UUID) (service.GenerateResult, error) {
	return m.generate(ctx, id)
}

// mockResultsServicer is a test double for handler.ResultsServicer.
type mockResultsServicer struct {
	open          func(ctx context.Context, id uuid.UUID) (service.CampaignView, error)
	editPost      func(ctx context.Context, id uuid.UUID, p domain.Platform, e domain.PostEdit) (domain.Post, error)
	addHashtag    func(ctx context.Context, id uuid.UUID, p domain.Platform, raw string) (domain.Post, error)
	removeHashtag func(ctx context.Context, id uuid.UUID, p domain.Platform, value string) (domain.Post, error)
	regenerate    func(ctx context.Context, id uuid.UUID, p domain.Platform) (domain.Post, error)
	publish       func(ctx context.Context, id uuid.UUID) (service.CampaignView, error)
}

func (m *mockResultsServicer) Open(ctx context.Context, id uuid.UUID) (service.CampaignView, error) {
	return m.open(ctx, id)
}
func (m *mockResultsServicer) EditPost(ctx context.Context, id uuid.UUID, p domain.Platform, e domain.PostEdit) (domain.Post, error) {
	return m.editPost(ctx, id, p, e)
}
func (m *mockResultsServicer) AddHashtag(ctx context.Context, id uuid.UUID, p domain.Platform, raw string) (domain.Post, error) {
	return m.addHashtag(ctx, id, p, raw)
}
func (m *mockResultsServicer) RemoveHashtag(ctx context.Context, id uuid.UUID, p domain.Platform, value string) (domain.Post, error) {
	return m.removeHashtag(ctx, id, p, value)
}
func (m *mockResultsServicer) RegeneratePost(ctx context.Context, id uuid.UUID, p domain.Platform) (domain.Post, error) {
	return m.regenerate(ctx, id, p)
}
func (m *mockResultsServicer) Publish(ctx context.Context, id uuid.UUID) (service.CampaignView, error) {
	return m.publish(ctx, id)
}

// mockExportServicer is a test double for handler.ExportServicer.
type mockExportServicer struct {
	export func(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, id)
}

// compile-time checks
var (
	_ handler.FormServicer    = (*mockFormServicer)(nil)
	_ handler.ResultsServicer = (*mockResultsServicer)(nil)
	_ handler.ExportServicer  = (*mockExportServicer)(nil)
	_ handler.FormServicer    = (*service.FormService)(nil)
	_ handler.ResultsServicer = (*service.ResultsService)(nil)
	_ handler.ExportServicer  = (*service.ExportService)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks the same way main.go
// does, minus rate limiting.
func newHTTPHandler(forms handler.FormServicer, results handler.ResultsServicer, export handler.ExportServicer) http.Handler {
	return handler.NewServer(forms, results, export, nil).Routes(nil)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, body *bytes.Buffer) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func draftFixture() domain.Draft {
	return domain.Draft{
		Record:    domain.DefaultDraftRecord(),
		Platforms: domain.DefaultDraftPlatforms(),
	}
}
