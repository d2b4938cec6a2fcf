package scoring

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"podcast-guest-tracker/internal/models"
)

// The output grammar is a versioned contract (see promptVersion): a
// "Score:" line with an integer, a "Verdict:" line, and "-"/"*" bullet
// explanation points. Model output is free text, so everything here validates
// defensively.

var (
	ErrNoScore = errors.New("no score found in generated text")

	scoreRe = regexp.MustCompile(`(?im)^[^\w]*score\s*[:=]\s*(-?\d+)`)
)

// parsedResult is the raw extraction before the pipeline stamps metadata.
type parsedResult struct {
	Score        int
	Verdict      models.Verdict
	Explanations []string
}

// parseGenerated extracts score, verdict and explanation points. A parsed
// number just outside the bounds clamps to the nearest boundary; text with no
// discernible score is a hard failure. Any "Verdict:" line in the output is
// ignored: the verdict is derived from the score so the threshold mapping
// always holds, including when the model names a different one.
func parseGenerated(text string) (*parsedResult, error) {
	m := scoreRe.FindStringSubmatch(text)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoScore, truncate(text, 120))
	}
	score, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNoScore, m[1])
	}
	score = clampScore(score)

	return &parsedResult{
		Score:        score,
		Verdict:      models.VerdictForScore(score),
		Explanations: parseBullets(text),
	}, nil
}

func clampScore(score int) int {
	if score < models.ScoreMin {
		return models.ScoreMin
	}
	if score > models.ScoreMax {
		return models.ScoreMax
	}
	return score
}

func parseBullets(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		var point string
		switch {
		case strings.HasPrefix(line, "- "):
			point = strings.TrimSpace(line[2:])
		case strings.HasPrefix(line, "* "):
			point = strings.TrimSpace(line[2:])
		}
		if point != "" {
			out = append(out, point)
		}
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
