package models

import "time"

// Verdict is the categorical recommendation derived from the numeric score.
type Verdict string

const (
	VerdictBook  Verdict = "book"
	VerdictMaybe Verdict = "maybe"
	VerdictPass  Verdict = "pass"
)

// Score bounds and verdict thresholds. The mapping is fixed: a verdict never
// contradicts its score.
const (
	ScoreMin = 0
	ScoreMax = 100

	BookThreshold  = 70 // score >= 70 -> book
	MaybeThreshold = 40 // 40 <= score < 70 -> maybe, below -> pass
)

// VerdictForScore maps a score to its verdict using the fixed thresholds.
func VerdictForScore(score int) Verdict {
	switch {
	case score >= BookThreshold:
		return VerdictBook
	case score >= MaybeThreshold:
		return VerdictMaybe
	default:
		return VerdictPass
	}
}

// ScoreBreakdown carries the advisory per-signal scores (0-100) computed from
// the feature set before prompting. The overall score comes from the model,
// not from these.
type ScoreBreakdown struct {
	TopicAlignment      int `json:"topicAlignment"`
	Authority           int `json:"authority"`
	AudienceAppeal      int `json:"audienceAppeal"`
	Uniqueness          int `json:"uniqueness"`
	EngagementPotential int `json:"engagementPotential"`
}

// Confidence reflects how complete the underlying profile data was.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Recommendation is the engine's result for one analysis request. Immutable
// once produced.
type Recommendation struct {
	ID             string         `json:"id"`
	GuestName      string         `json:"guestName"`
	Score          int            `json:"score"`
	Verdict        Verdict        `json:"verdict"`
	Explanations   []string       `json:"explanations"`
	Breakdown      ScoreBreakdown `json:"breakdown"`
	KeyStrengths   []string       `json:"keyStrengths,omitempty"`
	AreasOfConcern []string       `json:"areasOfConcern,omitempty"`
	Confidence     Confidence     `json:"confidence"`
	Model          string         `json:"model"`
	CreatedAt      time.Time      `json:"createdAt"`
}
