package domain

// ExportRow is a single row in the "export for review" download.
// It is a flat, denormalized view: one row per post, with the campaign
// summary repeated on every row.
//
// Hashtags keep their display order. Callers that need a joined string
// (e.g. CSV) should join with " ".
type ExportRow struct {
	// Campaign fields, repeated for every post.
	BusinessName  string
	CampaignTitle string
	CampaignGoals string
	Audience      []string

	// Post fields.
	Platform string
	Title    string
	Content  string
	Hashtags []string
}
