package scoring

import (
	"fmt"
	"strings"

	"podcast-guest-tracker/internal/features"
	"podcast-guest-tracker/internal/models"
)

// promptVersion tags the output grammar the parser expects. Bump it whenever
// the instructions below change shape.
const promptVersion = "v1"

// BuildPrompt renders the fixed scoring prompt. The template is deterministic:
// identical feature sets always produce identical prompt text.
func BuildPrompt(fs *features.FeatureSet, breakdown models.ScoreBreakdown) string {
	var parts []string

	parts = append(parts, "You are an expert podcast consultant. Decide whether the guest below should be booked on the host's podcast.")

	parts = append(parts, "\nGUEST:")
	parts = append(parts, fmt.Sprintf("- Name: %s", fs.GuestName))
	if fs.Designation != "" || fs.Company != "" {
		parts = append(parts, fmt.Sprintf("- Role: %s at %s", orUnknown(fs.Designation), orUnknown(fs.Company)))
	}
	if fs.Industry != "" {
		parts = append(parts, fmt.Sprintf("- Industry: %s", fs.Industry))
	}
	if len(fs.Expertise) > 0 {
		parts = append(parts, fmt.Sprintf("- Expertise: %s", strings.Join(fs.Expertise, ", ")))
	}
	if len(fs.KeyTopics) > 0 {
		parts = append(parts, fmt.Sprintf("- Key topics: %s", strings.Join(fs.KeyTopics, ", ")))
	}
	if len(fs.FollowerSummary) > 0 {
		parts = append(parts, fmt.Sprintf("- Following: %s", strings.Join(fs.FollowerSummary, ", ")))
	}
	if len(fs.Authority) > 0 {
		parts = append(parts, fmt.Sprintf("- Authority: %s", strings.Join(fs.Authority, "; ")))
	}
	if len(fs.RecentActivities) > 0 {
		parts = append(parts, fmt.Sprintf("- Recent activity: %s", strings.Join(fs.RecentActivities, "; ")))
	}
	if fs.PreviousPodcasts > 0 {
		parts = append(parts, fmt.Sprintf("- Previous podcast appearances: %d", fs.PreviousPodcasts))
	}
	if fs.Bio != "" {
		parts = append(parts, fmt.Sprintf("- Bio: %s", fs.Bio))
	}

	parts = append(parts, "\nHOST CHANNEL:")
	parts = append(parts, fmt.Sprintf("- URL: %s", fs.ChannelURL))
	parts = append(parts, fmt.Sprintf("- Subscribers: %s", fs.Subscribers))
	if len(fs.PrimaryTopics) > 0 {
		parts = append(parts, fmt.Sprintf("- Primary topics: %s", strings.Join(fs.PrimaryTopics, ", ")))
	}
	if fs.AudienceProfile != "" {
		parts = append(parts, fmt.Sprintf("- Audience: %s", fs.AudienceProfile))
	}
	if len(fs.RecentVideoTitles) > 0 {
		parts = append(parts, fmt.Sprintf("- Recent videos: %s", strings.Join(fs.RecentVideoTitles, " | ")))
	}
	if len(fs.EngagementDrivers) > 0 {
		parts = append(parts, fmt.Sprintf("- Engagement drivers: %s", strings.Join(fs.EngagementDrivers, ", ")))
	}
	parts = append(parts, fmt.Sprintf("- Average views: %s, engagement rate: %.1f%%", fs.AverageViews, fs.EngagementRate))

	parts = append(parts, "\nADVISORY SIGNALS (heuristic, 0-100):")
	parts = append(parts, fmt.Sprintf("- Topic alignment: %d (weight %.2f)", breakdown.TopicAlignment, weightTopicAlignment))
	parts = append(parts, fmt.Sprintf("- Authority: %d (weight %.2f)", breakdown.Authority, weightAuthority))
	parts = append(parts, fmt.Sprintf("- Audience appeal: %d (weight %.2f)", breakdown.AudienceAppeal, weightAudienceAppeal))
	parts = append(parts, fmt.Sprintf("- Uniqueness: %d (weight %.2f)", breakdown.Uniqueness, weightUniqueness))
	parts = append(parts, fmt.Sprintf("- Engagement potential: %d (weight %.2f)", breakdown.EngagementPotential, weightEngagement))

	parts = append(parts, "\nRespond in exactly this format:")
	parts = append(parts, "Score: <integer 0-100>")
	parts = append(parts, "Verdict: <book|maybe|pass>")
	parts = append(parts, "- <explanation point>")
	parts = append(parts, "- <explanation point>")
	parts = append(parts, "\nUse 'book' for a score of 70 or above, 'maybe' for 40-69, 'pass' below 40. Give 2-4 explanation points.")
	parts = append(parts, fmt.Sprintf("\n[format:%s]", promptVersion))

	return strings.Join(parts, "\n")
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
