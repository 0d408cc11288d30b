// Package domain contains the core data types for the PostBot campaign API.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

// CampaignRecord is the descriptive part of a campaign, as edited on the form
// and persisted under the campaignFormData slot.
// JSON field names match the persisted layout and must not change.
type CampaignRecord struct {
	BusinessName        string   `json:"businessName"`
	BusinessDescription string   `json:"businessDescription"`
	CampaignTitle       string   `json:"campaignTitle"`
	CampaignGoals       string   `json:"campaignGoals"`
	TargetAudience      []string `json:"targetAudience"`
	IntendedImpact      string   `json:"intendedImpact"`
}

// Normalized returns a copy of r that owns its TargetAudience slice and never
// carries a nil one. A stored record is either absent or fully populated.
func (r CampaignRecord) Normalized() CampaignRecord {
	out := r
	out.TargetAudience = make([]string, len(r.TargetAudience))
	copy(out.TargetAudience, r.TargetAudience)
	return out
}

// CampaignFields is a partial update of the scalar CampaignRecord fields.
// Nil pointers leave the corresponding field untouched.
type CampaignFields struct {
	BusinessName        *string
	BusinessDescription *string
	CampaignTitle       *string
	CampaignGoals       *string
	IntendedImpact      *string
}

// Apply replaces exactly the fields set in f and returns the result.
func (f CampaignFields) Apply(r CampaignRecord) CampaignRecord {
	if f.BusinessName != nil {
		r.BusinessName = *f.BusinessName
	}
	if f.BusinessDescription != nil {
		r.BusinessDescription = *f.BusinessDescription
	}
	if f.CampaignTitle != nil {
		r.CampaignTitle = *f.CampaignTitle
	}
	if f.CampaignGoals != nil {
		r.CampaignGoals = *f.CampaignGoals
	}
	if f.IntendedImpact != nil {
		r.IntendedImpact = *f.IntendedImpact
	}
	return r
}

// Summary is the read-only campaign description shown on the results view.
// Empty fields are replaced with display fallbacks by SummaryOf.
type Summary struct {
	BusinessName   string   `json:"businessName"`
	CampaignTitle  string   `json:"campaignTitle"`
	CampaignGoals  string   `json:"campaignGoals"`
	TargetAudience []string `json:"targetAudience"`
	IntendedImpact string   `json:"intendedImpact"`
}

// SummaryOf builds the display summary for an optional stored record.
func SummaryOf(r *CampaignRecord) Summary {
	var rec CampaignRecord
	if r != nil {
		rec = r.Normalized()
	} else {
		rec = CampaignRecord{TargetAudience: []string{}}
	}
	return Summary{
		BusinessName:   orDefault(rec.BusinessName, "VIA"),
		CampaignTitle:  orDefault(rec.CampaignTitle, "2025 Tech Immersive Launch"),
		CampaignGoals:  orDefault(rec.CampaignGoals, "Promote Tech Immersive Launch and build partnerships"),
		TargetAudience: rec.TargetAudience,
		IntendedImpact: orDefault(rec.IntendedImpact, "Empower students to become global tech leaders"),
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
