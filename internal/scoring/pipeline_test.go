// internal/scoring/pipeline_test.go
package scoring

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "podcast-guest-tracker/internal/common/errors"
	"podcast-guest-tracker/internal/common/logger"
	"podcast-guest-tracker/internal/features"
	"podcast-guest-tracker/internal/llm"
)

// fakeGenerator returns queued responses in order, recording every call.
type fakeGenerator struct {
	responses []*llm.GeneratedText
	err       error
	calls     int
	prompts   []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, _ int, _ float64) (*llm.GeneratedText, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	i := f.calls - 1
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return f.responses[i], nil
}

func testFeatureSet() *features.FeatureSet {
	return &features.FeatureSet{
		GuestName:         "John Smith",
		Industry:          "Technology",
		Expertise:         []string{"Artificial Intelligence", "Entrepreneurship"},
		KeyTopics:         []string{"AI Ethics", "Technology Trends"},
		FollowerSummary:   []string{"twitter: 45K"},
		Authority:         []string{"Published author"},
		PreviousPodcasts:  2,
		ChannelURL:        "https://youtube.com/@lexfridman",
		Subscribers:       "2.5M",
		RecentVideoTitles: []string{"AI and the Future of Work"},
		PrimaryTopics:     []string{"Technology", "Science"},
		AudienceProfile:   "Tech-savvy professionals",
		EngagementDrivers: []string{"Technical depth"},
		AverageViews:      "950K",
	}
}

func newTestPipeline(gen Generator, t *testing.T) *Pipeline {
	return NewPipeline(gen, Config{MaxTokens: 500, Temperature: 0.7}, logger.NewTestLogger(t))
}

func TestScore_Success(t *testing.T) {
	gen := &fakeGenerator{responses: []*llm.GeneratedText{{
		Text:  "Score: 85\nVerdict: book\n- high engagement\n- topical fit",
		Model: "llama-3.1-70b",
	}}}

	rec, err := newTestPipeline(gen, t).Score(context.Background(), testFeatureSet())
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "John Smith", rec.GuestName)
	assert.Equal(t, 85, rec.Score)
	assert.Equal(t, "book", string(rec.Verdict))
	assert.Equal(t, []string{"high engagement", "topical fit"}, rec.Explanations)
	assert.Equal(t, "llama-3.1-70b", rec.Model)
	assert.Equal(t, "UTC", rec.CreatedAt.Location().String())
	assert.NotZero(t, rec.Breakdown.TopicAlignment)
}

func TestScore_RetriesOnceOnParseFailure(t *testing.T) {
	gen := &fakeGenerator{responses: []*llm.GeneratedText{
		{Text: "the model rambled with no usable score", Model: "llama-3.1-70b"},
		{Text: "Score: 62\nVerdict: maybe\n- decent fit", Model: "llama-3.1-70b"},
	}}

	rec, err := newTestPipeline(gen, t).Score(context.Background(), testFeatureSet())
	require.NoError(t, err)

	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, 62, rec.Score)
	// Regeneration reuses the identical prompt.
	assert.Equal(t, gen.prompts[0], gen.prompts[1])
}

func TestScore_ParseFailureAfterRetry(t *testing.T) {
	gen := &fakeGenerator{responses: []*llm.GeneratedText{
		{Text: "nothing parsable here", Model: "llama-3.1-70b"},
	}}

	rec, err := newTestPipeline(gen, t).Score(context.Background(), testFeatureSet())
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, apperrors.ErrCodeScoreParseFailed, apperrors.CodeOf(err))
}

func TestScore_GenerationErrorPropagates(t *testing.T) {
	genErr := errors.New("all endpoints exhausted")
	gen := &fakeGenerator{err: genErr}

	rec, err := newTestPipeline(gen, t).Score(context.Background(), testFeatureSet())
	require.Error(t, err)
	assert.Nil(t, rec)
	// No pipeline-level retry for transport failures; the client already
	// retried per endpoint.
	assert.Equal(t, 1, gen.calls)
	assert.True(t, errors.Is(err, genErr))
}

func TestScore_EndpointExhaustionSurfacesUnavailableCode(t *testing.T) {
	// Healthy backend whose generation always fails, so the real client
	// exhausts every attempt.
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer backend.Close()

	client := llm.NewClient(
		[]llm.Endpoint{{Model: "llama-3.1-70b", BaseURL: backend.URL}},
		time.Second, 0, logger.NewTestLogger(t),
	)

	rec, err := newTestPipeline(client, t).Score(context.Background(), testFeatureSet())
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.True(t, errors.Is(err, llm.ErrUnavailable))
	assert.Equal(t, apperrors.ErrCodeLLMUnavailable, apperrors.CodeOf(err))
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	fs := testFeatureSet()
	breakdown := ComputeBreakdown(fs)

	p1 := BuildPrompt(fs, breakdown)
	p2 := BuildPrompt(fs, breakdown)
	assert.Equal(t, p1, p2)

	assert.Contains(t, p1, "John Smith")
	assert.Contains(t, p1, "2.5M")
	assert.Contains(t, p1, "Score: <integer 0-100>")
	assert.Contains(t, p1, "[format:v1]")
}
