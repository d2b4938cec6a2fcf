// internal/scoring/signals_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"podcast-guest-tracker/internal/features"
	"podcast-guest-tracker/internal/models"
)

func TestComputeBreakdown_Bounds(t *testing.T) {
	tests := []struct {
		name string
		fs   *features.FeatureSet
	}{
		{name: "empty feature set", fs: &features.FeatureSet{GuestName: "X"}},
		{name: "rich feature set", fs: testFeatureSet()},
		{
			name: "maximal guest",
			fs: &features.FeatureSet{
				GuestName:        "Jane Doe",
				Industry:         "Technology",
				Expertise:        []string{"Technology", "Science", "Entrepreneurship"},
				KeyTopics:        []string{"Technology", "Science"},
				FollowerSummary:  []string{"twitter: 5M", "youtube: 2M"},
				Authority:        []string{"Founder and CEO", "Award-winning author", "Professor"},
				RecentActivities: []string{"Launched a new product", "Published new research"},
				PreviousPodcasts: 20,
				Bio:              "Technology leader.",
				PrimaryTopics:    []string{"Technology", "Science"},
				AudienceProfile:  "Technology professionals",
				RecentVideoTitles: []string{
					"History of Mathematics", "Space Exploration Today",
				},
				EngagementDrivers: []string{"Technology", "Science"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ComputeBreakdown(tt.fs)
			for name, v := range map[string]int{
				"topicAlignment":      b.TopicAlignment,
				"authority":           b.Authority,
				"audienceAppeal":      b.AudienceAppeal,
				"uniqueness":          b.Uniqueness,
				"engagementPotential": b.EngagementPotential,
			} {
				assert.GreaterOrEqual(t, v, 0, name)
				assert.LessOrEqual(t, v, 100, name)
			}
		})
	}
}

func TestTopicAlignment_NeutralWhenMissing(t *testing.T) {
	b := ComputeBreakdown(&features.FeatureSet{GuestName: "X"})
	assert.Equal(t, 50, b.TopicAlignment)
}

func TestUniqueness_PenalizesRepeatGuest(t *testing.T) {
	base := &features.FeatureSet{
		GuestName:         "John Smith",
		RecentVideoTitles: []string{"Quantum Computing Deep Dive"},
	}
	repeat := &features.FeatureSet{
		GuestName:         "John Smith",
		RecentVideoTitles: []string{"John Smith on AI and Startups"},
	}

	assert.Greater(t, ComputeBreakdown(base).Uniqueness, ComputeBreakdown(repeat).Uniqueness)
}

func TestStrengthsAndConcerns(t *testing.T) {
	b := models.ScoreBreakdown{
		TopicAlignment:      90,
		Authority:           85,
		AudienceAppeal:      60,
		Uniqueness:          30,
		EngagementPotential: 40,
	}

	strengths := Strengths(b)
	assert.Len(t, strengths, 2)
	assert.Contains(t, strengths[0], "alignment")

	concerns := Concerns(b)
	assert.Len(t, concerns, 2)
}

func TestConfidenceFor(t *testing.T) {
	assert.Equal(t, models.ConfidenceLow, ConfidenceFor(&features.FeatureSet{GuestName: "X"}))

	assert.Equal(t, models.ConfidenceMedium, ConfidenceFor(&features.FeatureSet{
		GuestName:       "X",
		Expertise:       []string{"AI"},
		FollowerSummary: []string{"twitter: 10K"},
	}))

	assert.Equal(t, models.ConfidenceHigh, ConfidenceFor(testFeatureSet()))
}
