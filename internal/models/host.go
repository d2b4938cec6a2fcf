package models

import "time"

// ChannelVideo is one recent upload on the host's channel, most-recent-first
// in HostChannelProfile.RecentVideos.
type ChannelVideo struct {
	Title      string `json:"title"`
	ViewCount  int64  `json:"viewCount"`
	UploadDate string `json:"uploadDate,omitempty"` // YYYYMMDD as reported upstream
}

// HostChannelProfile is a structured summary of the host's YouTube channel and
// episode history. Immutable once fetched; created per request.
type HostChannelProfile struct {
	ChannelURL        string         `json:"channelUrl"`
	SubscriberCount   int64          `json:"subscriberCount"`
	RecentVideos      []ChannelVideo `json:"recentVideos,omitempty"`
	PrimaryTopics     []string       `json:"primaryTopics,omitempty"`
	AudienceProfile   string         `json:"audienceProfile,omitempty"`
	EngagementDrivers []string       `json:"engagementDrivers,omitempty"`
	AverageViews      int64          `json:"averageViews"`
	EngagementRate    float64        `json:"engagementRate"` // percent, per video average
	FetchedAt         time.Time      `json:"fetchedAt"`
}
