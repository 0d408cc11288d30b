package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/postbot/backend/internal/domain"
)

// CampaignOpener is the part of ResultsService the export depends on.
type CampaignOpener interface {
	Open(ctx context.Context, id uuid.UUID) (CampaignView, error)
}

// ExportService flattens a session's results view for review.
type ExportService struct {
	campaigns CampaignOpener
}

// NewExportService constructs an ExportService reading from campaigns.
func NewExportService(campaigns CampaignOpener) *ExportService {
	return &ExportService{campaigns: campaigns}
}

// Export returns one ExportRow per post, in platform selection order.
// The current (possibly edited) post content is exported, not the defaults.
func (s *ExportService) Export(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error) {
	view, err := s.campaigns.Open(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(view.Posts))
	for _, p := range view.Posts {
		rows = append(rows, domain.ExportRow{
			BusinessName:  view.Summary.BusinessName,
			CampaignTitle: view.Summary.CampaignTitle,
			CampaignGoals: view.Summary.CampaignGoals,
			Audience:      view.Summary.TargetAudience,
			Platform:      string(p.Platform),
			Title:         p.Title,
			Content:       p.Content,
			Hashtags:      p.Hashtags,
		})
	}
	return rows, nil
}
