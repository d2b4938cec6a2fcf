// Package features normalizes fetched profiles into a bounded feature set so
// prompt size stays deterministic regardless of upstream data volume.
package features

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	apperrors "podcast-guest-tracker/internal/common/errors"
	"podcast-guest-tracker/internal/models"
)

// FeatureSet is the bounded, deterministic summary the scoring prompt is built
// from.
type FeatureSet struct {
	GuestName        string
	Platform         models.Platform
	Designation      string
	Company          string
	Industry         string
	Expertise        []string
	KeyTopics        []string
	FollowerSummary  []string // "twitter: 45K", sorted by platform name
	Authority        []string
	RecentActivities []string
	PreviousPodcasts int
	Bio              string

	ChannelURL        string
	Subscribers       string // formatted, e.g. "1.2M"
	RecentVideoTitles []string
	PrimaryTopics     []string
	AudienceProfile   string
	EngagementDrivers []string
	AverageViews      string
	EngagementRate    float64
}

// Aggregator caps list-valued fields and formats counts consistently.
// Truncation is deterministic: most-recent-first, never silent beyond the cap.
type Aggregator struct {
	maxVideos     int
	maxActivities int
	maxTopics     int
}

func NewAggregator(maxVideos, maxActivities, maxTopics int) *Aggregator {
	return &Aggregator{
		maxVideos:     maxVideos,
		maxActivities: maxActivities,
		maxTopics:     maxTopics,
	}
}

// Aggregate is a pure function of its inputs. Missing required fields indicate
// an upstream contract violation and return an INVALID_PROFILE error.
func (a *Aggregator) Aggregate(guest *models.GuestProfile, host *models.HostChannelProfile) (*FeatureSet, error) {
	if guest == nil || host == nil {
		return nil, apperrors.NewInvalidProfileError("guest and host profiles are required")
	}
	if strings.TrimSpace(guest.Name) == "" {
		return nil, apperrors.NewInvalidProfileError("guest profile has no name")
	}
	if strings.TrimSpace(guest.SourceURL) == "" {
		return nil, apperrors.NewInvalidProfileError("guest profile has no source URL")
	}
	if strings.TrimSpace(host.ChannelURL) == "" {
		return nil, apperrors.NewInvalidProfileError("host profile has no channel URL")
	}

	titles := make([]string, 0, a.maxVideos)
	for _, v := range host.RecentVideos {
		if len(titles) == a.maxVideos {
			break
		}
		titles = append(titles, v.Title)
	}

	fs := &FeatureSet{
		GuestName:        guest.Name,
		Platform:         guest.Platform,
		Designation:      guest.Designation,
		Company:          guest.Company,
		Industry:         guest.Industry,
		Expertise:        capList(guest.ExpertiseAreas, a.maxTopics),
		KeyTopics:        capList(guest.KeyTopics, a.maxTopics),
		FollowerSummary:  formatFollowing(guest.SocialFollowing),
		Authority:        capList(guest.AuthorityIndicators, a.maxTopics),
		RecentActivities: capList(guest.RecentActivities, a.maxActivities),
		PreviousPodcasts: len(guest.PreviousPodcasts),
		Bio:              guest.BioSummary,

		ChannelURL:        host.ChannelURL,
		Subscribers:       FormatCount(host.SubscriberCount),
		RecentVideoTitles: titles,
		PrimaryTopics:     capList(host.PrimaryTopics, a.maxTopics),
		AudienceProfile:   host.AudienceProfile,
		EngagementDrivers: capList(host.EngagementDrivers, a.maxTopics),
		AverageViews:      FormatCount(host.AverageViews),
		EngagementRate:    host.EngagementRate,
	}
	return fs, nil
}

func capList(in []string, max int) []string {
	if max <= 0 || len(in) <= max {
		return in
	}
	return in[:max]
}

func formatFollowing(following map[string]string) []string {
	if len(following) == 0 {
		return nil
	}
	keys := make([]string, 0, len(following))
	for k := range following {
		keys = append(keys, k)
	}
	// Sorted so identical inputs always yield identical prompt text.
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if v := strings.TrimSpace(following[k]); v != "" && v != "unknown" {
			out = append(out, fmt.Sprintf("%s: %s", k, v))
		}
	}
	return out
}

// FormatCount renders follower/subscriber counts the way upstream scrapers
// report them: 45000 -> "45K", 2500000 -> "2.5M".
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return trimZero(float64(n)/1_000_000) + "M"
	case n >= 1_000:
		return trimZero(float64(n)/1_000) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}

func trimZero(f float64) string {
	s := strconv.FormatFloat(f, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

// ParseCount is the inverse of the scraper formatting: "45K" -> 45000,
// "2.5M" -> 2500000. Unparsable input yields 0.
func ParseCount(s string) int64 {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "unknown" {
		return 0
	}
	mult := int64(1)
	switch {
	case strings.HasSuffix(s, "m"):
		mult = 1_000_000
		s = strings.TrimSuffix(s, "m")
	case strings.HasSuffix(s, "k"):
		mult = 1_000
		s = strings.TrimSuffix(s, "k")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "+")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(f * float64(mult))
}
