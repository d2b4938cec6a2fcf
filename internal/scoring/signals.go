package scoring

import (
	"strings"

	"podcast-guest-tracker/internal/features"
	"podcast-guest-tracker/internal/models"
)

// Signal weights, kept from the original heuristic scorer. They shape the
// advisory breakdown shown to the model, not the final score.
const (
	weightTopicAlignment = 0.35
	weightAuthority      = 0.25
	weightAudienceAppeal = 0.20
	weightUniqueness     = 0.10
	weightEngagement     = 0.10
)

var authorityTerms = []string{"founder", "ceo", "author", "expert", "award", "professor", "phd", "leader"}

var timelyTerms = []string{"recent", "new", "launch", "announce", "publish", "release"}

// ComputeBreakdown derives the advisory per-signal scores from the feature
// set. Each signal is 0-100.
func ComputeBreakdown(fs *features.FeatureSet) models.ScoreBreakdown {
	return models.ScoreBreakdown{
		TopicAlignment:      toPercent(topicAlignment(fs)),
		Authority:           toPercent(authority(fs)),
		AudienceAppeal:      toPercent(audienceAppeal(fs)),
		Uniqueness:          toPercent(uniqueness(fs)),
		EngagementPotential: toPercent(engagementPotential(fs)),
	}
}

// topicAlignment measures keyword overlap between guest expertise and channel
// topics. Neutral 0.5 when either side is missing.
func topicAlignment(fs *features.FeatureSet) float64 {
	guestTerms := keywords(append(append([]string{}, fs.Expertise...), fs.KeyTopics...))
	channelTerms := keywords(fs.PrimaryTopics)
	if len(guestTerms) == 0 || len(channelTerms) == 0 {
		return 0.5
	}

	matches := 0
	for g := range guestTerms {
		for c := range channelTerms {
			if strings.Contains(c, g) || strings.Contains(g, c) {
				matches++
				break
			}
		}
	}

	score := float64(matches) / float64(len(channelTerms))
	if score > 1 {
		score = 1
	}

	// Direct expertise/topic hits get a boost beyond word-level overlap.
	for _, e := range fs.Expertise {
		for _, t := range fs.PrimaryTopics {
			el, tl := strings.ToLower(e), strings.ToLower(t)
			if strings.Contains(tl, el) || strings.Contains(el, tl) {
				score += 0.2
				if score > 1 {
					return 1
				}
			}
		}
	}
	return score
}

func authority(fs *features.FeatureSet) float64 {
	score := 0.5

	strong := 0
	for _, indicator := range fs.Authority {
		l := strings.ToLower(indicator)
		for _, term := range authorityTerms {
			if strings.Contains(l, term) {
				strong++
				break
			}
		}
	}
	score += minF(0.3, float64(strong)*0.1)

	var followers int64
	for _, entry := range fs.FollowerSummary {
		if _, v, ok := strings.Cut(entry, ": "); ok {
			if n := features.ParseCount(v); n > followers {
				followers = n
			}
		}
	}
	switch {
	case followers > 1_000_000:
		score += 0.2
	case followers > 100_000:
		score += 0.15
	case followers > 10_000:
		score += 0.1
	case followers > 1_000:
		score += 0.05
	}

	score += minF(0.1, float64(fs.PreviousPodcasts)*0.02)
	return minF(1, score)
}

func audienceAppeal(fs *features.FeatureSet) float64 {
	score := 0.6

	score += minF(0.2, float64(len(fs.FollowerSummary))*0.05)

	if fs.AudienceProfile != "" && (fs.Industry != "" || fs.Bio != "") {
		guestText := strings.ToLower(fs.Industry + " " + fs.Bio)
		matches := 0
		for _, word := range strings.Fields(strings.ToLower(fs.AudienceProfile)) {
			if len(word) > 3 && strings.Contains(guestText, word) {
				matches++
			}
		}
		score += minF(0.2, float64(matches)*0.04)
	}

	return minF(1, score)
}

// uniqueness penalizes repeat guests and already-covered topics, and rewards
// an industry the channel has not touched.
func uniqueness(fs *features.FeatureSet) float64 {
	score := 0.7
	name := strings.ToLower(fs.GuestName)

	similar := 0
	for _, title := range fs.RecentVideoTitles {
		t := strings.ToLower(title)
		if name != "" && strings.Contains(t, name) {
			score -= 0.3
			break
		}
		for _, e := range fs.Expertise {
			if strings.Contains(t, strings.ToLower(e)) {
				similar++
				break
			}
		}
	}
	score -= minF(0.3, float64(similar)*0.05)

	if industry := strings.ToLower(fs.Industry); industry != "" {
		covered := false
		for _, t := range fs.PrimaryTopics {
			if strings.Contains(strings.ToLower(t), industry) {
				covered = true
				break
			}
		}
		if !covered {
			score += 0.1
		}
	}

	return maxF(0.1, minF(1, score))
}

func engagementPotential(fs *features.FeatureSet) float64 {
	score := 0.5

	timely := 0
	for _, activity := range fs.RecentActivities {
		l := strings.ToLower(activity)
		for _, term := range timelyTerms {
			if strings.Contains(l, term) {
				timely++
				break
			}
		}
	}
	score += minF(0.2, float64(timely)*0.05)

	if len(fs.EngagementDrivers) > 0 && len(fs.KeyTopics) > 0 {
		matches := 0
		for _, driver := range fs.EngagementDrivers {
			d := strings.ToLower(driver)
			for _, topic := range fs.KeyTopics {
				t := strings.ToLower(topic)
				if strings.Contains(t, d) || strings.Contains(d, t) {
					matches++
					break
				}
			}
		}
		score += minF(0.3, float64(matches)*0.1)
	}

	score += minF(0.1, float64(fs.PreviousPodcasts)*0.02)
	return minF(1, score)
}

// Strengths lists signals scoring high enough to call out.
func Strengths(b models.ScoreBreakdown) []string {
	var out []string
	if b.TopicAlignment >= 80 {
		out = append(out, "Strong alignment with channel topics")
	}
	if b.Authority >= 80 {
		out = append(out, "High authority and credibility in their field")
	}
	if b.AudienceAppeal >= 80 {
		out = append(out, "Strong potential audience appeal")
	}
	if b.Uniqueness >= 80 {
		out = append(out, "Brings a fresh perspective to the channel")
	}
	if b.EngagementPotential >= 80 {
		out = append(out, "High potential for audience engagement")
	}
	return out
}

// Concerns lists signals low enough to flag.
func Concerns(b models.ScoreBreakdown) []string {
	var out []string
	if b.TopicAlignment <= 40 {
		out = append(out, "Limited alignment with channel topics")
	}
	if b.Authority <= 40 {
		out = append(out, "Limited authority or credibility in relevant fields")
	}
	if b.AudienceAppeal <= 40 {
		out = append(out, "May not appeal to the channel audience")
	}
	if b.Uniqueness <= 40 {
		out = append(out, "Similar to previous guests or content")
	}
	if b.EngagementPotential <= 40 {
		out = append(out, "Limited potential for audience engagement")
	}
	return out
}

// ConfidenceFor grades how complete the profile data backing the analysis was.
func ConfidenceFor(fs *features.FeatureSet) models.Confidence {
	populated := 0
	if len(fs.Expertise) > 0 {
		populated++
	}
	if len(fs.FollowerSummary) > 0 {
		populated++
	}
	if len(fs.Authority) > 0 {
		populated++
	}
	if fs.Bio != "" {
		populated++
	}
	videoData := len(fs.RecentVideoTitles) > 0 && len(fs.PrimaryTopics) > 0

	switch {
	case populated >= 3 && videoData:
		return models.ConfidenceHigh
	case populated >= 2:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func keywords(items []string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, item := range items {
		for _, word := range strings.Fields(strings.ToLower(item)) {
			if len(word) > 3 {
				out[word] = struct{}{}
			}
		}
	}
	return out
}

func toPercent(f float64) int {
	return int(f*100 + 0.5)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
