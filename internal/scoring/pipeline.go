// Package scoring builds the recommendation prompt, invokes the model backend
// and parses its output into a validated Recommendation.
package scoring

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "podcast-guest-tracker/internal/common/errors"
	"podcast-guest-tracker/internal/common/logger"
	"podcast-guest-tracker/internal/features"
	"podcast-guest-tracker/internal/llm"
	"podcast-guest-tracker/internal/models"
)

// Generator abstracts the LLM client for the pipeline.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (*llm.GeneratedText, error)
}

type Config struct {
	MaxTokens   int
	Temperature float64 // nonzero: identical inputs may score differently, accepted
}

type Pipeline struct {
	gen    Generator
	config Config
	logger logger.Logger
	now    func() time.Time
}

func NewPipeline(gen Generator, config Config, log logger.Logger) *Pipeline {
	return &Pipeline{
		gen:    gen,
		config: config,
		logger: log.WithFields(map[string]interface{}{"component": "scoring-pipeline"}),
		now:    time.Now,
	}
}

// Score produces a Recommendation for the feature set. On a parse failure the
// pipeline regenerates once with the same prompt, then surfaces
// SCORE_PARSE_FAILED. It never substitutes a default score. Generation errors
// propagate without a pipeline-level retry; endpoint exhaustion surfaces as
// LLM_UNAVAILABLE.
func (p *Pipeline) Score(ctx context.Context, fs *features.FeatureSet) (*models.Recommendation, error) {
	breakdown := ComputeBreakdown(fs)
	prompt := BuildPrompt(fs, breakdown)

	var lastParseErr error
	for attempt := 0; attempt < 2; attempt++ {
		out, err := p.gen.Generate(ctx, prompt, p.config.MaxTokens, p.config.Temperature)
		if err != nil {
			if errors.Is(err, llm.ErrUnavailable) {
				return nil, apperrors.NewLLMUnavailableError(err)
			}
			return nil, err
		}

		parsed, perr := parseGenerated(out.Text)
		if perr != nil {
			lastParseErr = perr
			p.logger.Warn("unparsable generation, retrying once", map[string]interface{}{
				"guest":   fs.GuestName,
				"attempt": attempt + 1,
				"error":   perr.Error(),
			})
			continue
		}

		rec := &models.Recommendation{
			ID:             uuid.NewString(),
			GuestName:      fs.GuestName,
			Score:          parsed.Score,
			Verdict:        parsed.Verdict,
			Explanations:   parsed.Explanations,
			Breakdown:      breakdown,
			KeyStrengths:   Strengths(breakdown),
			AreasOfConcern: Concerns(breakdown),
			Confidence:     ConfidenceFor(fs),
			Model:          out.Model,
			CreatedAt:      p.now().UTC(),
		}

		p.logger.Info("recommendation produced", map[string]interface{}{
			"guest":   fs.GuestName,
			"score":   rec.Score,
			"verdict": rec.Verdict,
			"model":   rec.Model,
		})
		return rec, nil
	}

	return nil, apperrors.NewScoreParseError(lastParseErr)
}
