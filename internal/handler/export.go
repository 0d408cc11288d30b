// Package handler: export.go implements GET /sessions/{sessionId}/campaign/export.
// Returns one row per post for offline review, as JSON by default or CSV
// with ?format=csv.
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strings"

	"github.com/pkordes/postbot/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"business_name", "campaign_title", "campaign_goals", "audience",
	"platform", "title", "content", "hashtags",
}

// ExportRow is the JSON shape of one export row.
type ExportRow struct {
	BusinessName  string   `json:"businessName"`
	CampaignTitle string   `json:"campaignTitle"`
	CampaignGoals string   `json:"campaignGoals"`
	Audience      []string `json:"audience"`
	Platform      string   `json:"platform"`
	Title         string   `json:"title,omitempty"`
	Content       string   `json:"content"`
	Hashtags      []string `json:"hashtags"`
}

// GetExport handles GET /sessions/{sessionId}/campaign/export.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	id, ok := withSession(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("format must be json or csv"))
		return
	}

	rows, err := s.export.Export(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "campaign not found")
		return
	}

	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="campaign-`+id.String()+`.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buildCSV(rows))
		return
	}
	writeJSON(w, http.StatusOK, buildJSONRows(rows))
}

func buildJSONRows(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ExportRow{
			BusinessName:  r.BusinessName,
			CampaignTitle: r.CampaignTitle,
			CampaignGoals: r.CampaignGoals,
			Audience:      nonNil(r.Audience),
			Platform:      r.Platform,
			Title:         r.Title,
			Content:       r.Content,
			Hashtags:      nonNil(r.Hashtags),
		})
	}
	return out
}

// buildCSV encodes rows as CSV. Audience tags are joined with "|" (they may
// contain spaces); hashtags are space-separated as they would be posted.
func buildCSV(rows []domain.ExportRow) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write([]string{
			r.BusinessName,
			r.CampaignTitle,
			r.CampaignGoals,
			strings.Join(r.Audience, "|"),
			r.Platform,
			r.Title,
			r.Content,
			strings.Join(r.Hashtags, " "),
		})
	}
	w.Flush()
	return buf.Bytes()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
