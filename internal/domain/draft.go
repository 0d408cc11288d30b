package domain

// Draft is a snapshot of the form view: the record fields, the audience tags,
// and the platform selection. It is what the form endpoints return.
type Draft struct {
	Record     CampaignRecord    `json:"record"`
	Platforms  PlatformSelection `json:"platforms"`
	Generating bool              `json:"generating"`
}

// DefaultDraftRecord returns the prefilled form a new session starts with.
func DefaultDraftRecord() CampaignRecord {
	return CampaignRecord{
		BusinessName: "VIA",
		BusinessDescription: "A nonprofit empowering underrepresented students to become global tech " +
			"leaders through immersive experiences",
		CampaignTitle:  "VIA Tech Immersive Launch",
		CampaignGoals:  "Announce 2025 Tech Immersive and attract sponsors and partners",
		TargetAudience: []string{"Sponsors", "Universities", "Tech Leaders"},
		IntendedImpact: "Raise awareness of VIA's mission and showcase 2025 program kickoff",
	}
}

// DefaultDraftPlatforms returns the platforms preselected on a new form.
func DefaultDraftPlatforms() PlatformSelection {
	return PlatformSelection{PlatformInstagram, PlatformLinkedIn}
}
