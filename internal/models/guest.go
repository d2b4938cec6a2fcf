package models

import "time"

// Platform identifies where a guest profile was sourced from.
type Platform string

const (
	PlatformTwitter  Platform = "twitter"
	PlatformLinkedIn Platform = "linkedin"
	PlatformYouTube  Platform = "youtube"
	PlatformOther    Platform = "other"
)

// GuestProfile is a structured summary of a prospective guest's public social
// presence. Immutable once fetched; created per request.
type GuestProfile struct {
	Name                string            `json:"name"`
	SourceURL           string            `json:"sourceUrl"`
	Platform            Platform          `json:"platform"`
	Designation         string            `json:"currentDesignation,omitempty"`
	Company             string            `json:"company,omitempty"`
	Industry            string            `json:"industry,omitempty"`
	ExpertiseAreas      []string          `json:"expertiseAreas,omitempty"`
	KeyTopics           []string          `json:"keyTopics,omitempty"`
	SocialFollowing     map[string]string `json:"socialFollowing,omitempty"` // platform -> "45K"
	AuthorityIndicators []string          `json:"authorityIndicators,omitempty"`
	PreviousPodcasts    []string          `json:"previousPodcasts,omitempty"`
	RecentActivities    []string          `json:"recentActivities,omitempty"`
	BioSummary          string            `json:"bioSummary,omitempty"`
	FetchedAt           time.Time         `json:"fetchedAt"`
}
