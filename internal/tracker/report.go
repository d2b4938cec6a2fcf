package tracker

import (
	"fmt"
	"sort"
	"strings"

	"podcast-guest-tracker/internal/features"
	"podcast-guest-tracker/internal/models"
)

// RenderReport produces the human-readable markdown report for a completed
// analysis.
func RenderReport(guest *models.GuestProfile, host *models.HostChannelProfile, rec *models.Recommendation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# PODCAST GUEST ANALYSIS REPORT\n")
	fmt.Fprintf(&b, "**Generated on: %s**\n\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "## EXECUTIVE SUMMARY\n")
	fmt.Fprintf(&b, "**Guest:** %s  \n", rec.GuestName)
	if guest.Designation != "" || guest.Company != "" {
		fmt.Fprintf(&b, "**Current Role:** %s at %s  \n", fallback(guest.Designation, "Unknown Role"), fallback(guest.Company, "Unknown Company"))
	}
	fmt.Fprintf(&b, "**Overall Score:** %d/100  \n", rec.Score)
	fmt.Fprintf(&b, "**Verdict:** %s  \n", rec.Verdict)
	fmt.Fprintf(&b, "**Confidence:** %s  \n\n", rec.Confidence)

	if len(rec.Explanations) > 0 {
		for _, e := range rec.Explanations {
			fmt.Fprintf(&b, "- %s\n", e)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## GUEST PROFILE\n")
	if guest.Industry != "" {
		fmt.Fprintf(&b, "- **Industry:** %s\n", guest.Industry)
	}
	if len(guest.ExpertiseAreas) > 0 {
		fmt.Fprintf(&b, "- **Expertise:** %s\n", strings.Join(guest.ExpertiseAreas, ", "))
	}
	platforms := make([]string, 0, len(guest.SocialFollowing))
	for platform := range guest.SocialFollowing {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)
	for _, platform := range platforms {
		if count := guest.SocialFollowing[platform]; count != "" && count != "unknown" {
			fmt.Fprintf(&b, "- **%s:** %s followers\n", capitalize(platform), count)
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## HOST CHANNEL\n")
	fmt.Fprintf(&b, "- **Channel:** %s\n", host.ChannelURL)
	fmt.Fprintf(&b, "- **Subscribers:** %s\n", features.FormatCount(host.SubscriberCount))
	fmt.Fprintf(&b, "- **Average Views:** %s per video\n", features.FormatCount(host.AverageViews))
	if len(host.PrimaryTopics) > 0 {
		fmt.Fprintf(&b, "- **Primary Topics:** %s\n", strings.Join(host.PrimaryTopics, ", "))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## SIGNAL BREAKDOWN\n")
	fmt.Fprintf(&b, "- Topic Alignment: %d/100\n", rec.Breakdown.TopicAlignment)
	fmt.Fprintf(&b, "- Authority: %d/100\n", rec.Breakdown.Authority)
	fmt.Fprintf(&b, "- Audience Appeal: %d/100\n", rec.Breakdown.AudienceAppeal)
	fmt.Fprintf(&b, "- Uniqueness: %d/100\n", rec.Breakdown.Uniqueness)
	fmt.Fprintf(&b, "- Engagement Potential: %d/100\n\n", rec.Breakdown.EngagementPotential)

	if len(rec.KeyStrengths) > 0 {
		fmt.Fprintf(&b, "### Key Strengths\n")
		for _, s := range rec.KeyStrengths {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}
	if len(rec.AreasOfConcern) > 0 {
		fmt.Fprintf(&b, "### Areas of Concern\n")
		for _, c := range rec.AreasOfConcern {
			fmt.Fprintf(&b, "- %s\n", c)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n*Scored by %s*\n", rec.Model)
	return b.String()
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
