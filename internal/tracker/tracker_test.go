// internal/tracker/tracker_test.go
package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podcast-guest-tracker/internal/cache"
	apperrors "podcast-guest-tracker/internal/common/errors"
	"podcast-guest-tracker/internal/common/logger"
	"podcast-guest-tracker/internal/features"
	"podcast-guest-tracker/internal/models"
)

type fakeGuestSource struct {
	profile *models.GuestProfile
	err     error
	calls   int
}

func (f *fakeGuestSource) FetchGuest(_ context.Context, name, profileURL string) (*models.GuestProfile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p := *f.profile
	p.Name = name
	p.SourceURL = profileURL
	return &p, nil
}

type fakeHostSource struct {
	profile *models.HostChannelProfile
	err     error
	calls   int
}

func (f *fakeHostSource) FetchHost(_ context.Context, channelURL string) (*models.HostChannelProfile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p := *f.profile
	p.ChannelURL = channelURL
	return &p, nil
}

type fakeScorer struct {
	recs  map[string]*models.Recommendation
	rec   *models.Recommendation
	err   error
	calls int
}

func (f *fakeScorer) Score(_ context.Context, fs *features.FeatureSet) (*models.Recommendation, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.recs[fs.GuestName]; ok {
		out := *r
		return &out, nil
	}
	out := *f.rec
	out.GuestName = fs.GuestName
	return &out, nil
}

func guestFixture() *models.GuestProfile {
	return &models.GuestProfile{
		Name:           "Elon Musk",
		SourceURL:      "https://twitter.com/elonmusk",
		Platform:       models.PlatformTwitter,
		Industry:       "Technology",
		ExpertiseAreas: []string{"Space", "Electric Vehicles"},
		SocialFollowing: map[string]string{
			"twitter": "150M",
		},
	}
}

func hostFixture() *models.HostChannelProfile {
	return &models.HostChannelProfile{
		ChannelURL:      "https://youtube.com/@lexfridman",
		SubscriberCount: 2_500_000,
		RecentVideos: []models.ChannelVideo{
			{Title: "AI and the Future of Work", ViewCount: 1_200_000},
		},
		PrimaryTopics: []string{"Technology", "Science"},
		AverageViews:  950_000,
	}
}

func recFixture(score int) *models.Recommendation {
	return &models.Recommendation{
		ID:           "rec-1",
		GuestName:    "Elon Musk",
		Score:        score,
		Verdict:      models.VerdictForScore(score),
		Explanations: []string{"high engagement", "topical fit"},
		Model:        "llama-3.1-70b",
		CreatedAt:    time.Now().UTC(),
	}
}

func requestFixture() models.AnalysisRequest {
	return models.AnalysisRequest{
		GuestName:      "Elon Musk",
		GuestURL:       "https://twitter.com/elonmusk",
		HostChannelURL: "https://youtube.com/@lexfridman",
	}
}

func newTestTracker(t *testing.T, guests *fakeGuestSource, hosts *fakeHostSource, scorer *fakeScorer, store cache.Store) *Tracker {
	t.Helper()
	if store == nil {
		store = cache.NewMemoryStore(24 * time.Hour)
	}
	return New(guests, hosts, features.NewAggregator(10, 5, 5), scorer, store, logger.NewTestLogger(t))
}

func TestAnalyze_EndToEnd(t *testing.T) {
	guests := &fakeGuestSource{profile: guestFixture()}
	hosts := &fakeHostSource{profile: hostFixture()}
	scorer := &fakeScorer{rec: recFixture(85)}

	tr := newTestTracker(t, guests, hosts, scorer, nil)

	rec, err := tr.Analyze(context.Background(), requestFixture())
	require.NoError(t, err)

	assert.Equal(t, "Elon Musk", rec.GuestName)
	assert.Equal(t, 85, rec.Score)
	assert.Equal(t, models.VerdictBook, rec.Verdict)
	assert.Len(t, rec.Explanations, 2)
	assert.Equal(t, "llama-3.1-70b", rec.Model)
	assert.Equal(t, 1, guests.calls)
	assert.Equal(t, 1, hosts.calls)
	assert.Equal(t, 1, scorer.calls)
}

func TestAnalyze_CacheHitSkipsScoring(t *testing.T) {
	guests := &fakeGuestSource{profile: guestFixture()}
	hosts := &fakeHostSource{profile: hostFixture()}
	scorer := &fakeScorer{rec: recFixture(85)}

	tr := newTestTracker(t, guests, hosts, scorer, nil)
	ctx := context.Background()

	first, err := tr.Analyze(ctx, requestFixture())
	require.NoError(t, err)

	second, err := tr.Analyze(ctx, requestFixture())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	// Second call is served entirely from the cache.
	assert.Equal(t, 1, guests.calls)
	assert.Equal(t, 1, hosts.calls)
	assert.Equal(t, 1, scorer.calls)
}

func TestAnalyze_InvalidRequest(t *testing.T) {
	tr := newTestTracker(t, &fakeGuestSource{}, &fakeHostSource{}, &fakeScorer{}, nil)

	tests := []struct {
		name string
		req  models.AnalysisRequest
	}{
		{name: "empty guest name", req: models.AnalysisRequest{GuestURL: "u", HostChannelURL: "h"}},
		{name: "empty guest URL", req: models.AnalysisRequest{GuestName: "n", HostChannelURL: "h"}},
		{name: "empty host URL", req: models.AnalysisRequest{GuestName: "n", GuestURL: "u"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := tr.Analyze(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, rec)
			assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
		})
	}
}

func TestAnalyze_FetchFailureFailsWholeRequest(t *testing.T) {
	fetchErr := apperrors.NewProfileFetchError("guest", assert.AnError)

	guests := &fakeGuestSource{err: fetchErr}
	hosts := &fakeHostSource{profile: hostFixture()}
	scorer := &fakeScorer{rec: recFixture(85)}
	store := cache.NewMemoryStore(24 * time.Hour)

	tr := newTestTracker(t, guests, hosts, scorer, store)

	rec, err := tr.Analyze(context.Background(), requestFixture())
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, apperrors.ErrCodeProfileFetchFailed, apperrors.CodeOf(err))
	assert.Equal(t, 0, scorer.calls)
	// Failures never reach the cache.
	assert.Equal(t, 0, store.Len())
}

func TestAnalyze_ScoringFailureNotCached(t *testing.T) {
	guests := &fakeGuestSource{profile: guestFixture()}
	hosts := &fakeHostSource{profile: hostFixture()}
	scorer := &fakeScorer{err: apperrors.NewScoreParseError(assert.AnError)}
	store := cache.NewMemoryStore(24 * time.Hour)

	tr := newTestTracker(t, guests, hosts, scorer, store)

	rec, err := tr.Analyze(context.Background(), requestFixture())
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, apperrors.ErrCodeScoreParseFailed, apperrors.CodeOf(err))
	assert.Equal(t, 0, store.Len())
}

// brokenStore fails every operation, simulating a down cache backend.
type brokenStore struct{}

func (brokenStore) Get(context.Context, models.AnalysisRequest) (*models.Recommendation, error) {
	return nil, apperrors.NewCacheUnavailableError(assert.AnError)
}

func (brokenStore) Put(context.Context, models.AnalysisRequest, models.Recommendation) error {
	return apperrors.NewCacheUnavailableError(assert.AnError)
}

func TestAnalyze_BrokenCacheDegradesToMiss(t *testing.T) {
	guests := &fakeGuestSource{profile: guestFixture()}
	hosts := &fakeHostSource{profile: hostFixture()}
	scorer := &fakeScorer{rec: recFixture(85)}

	tr := newTestTracker(t, guests, hosts, scorer, brokenStore{})

	rec, err := tr.Analyze(context.Background(), requestFixture())
	require.NoError(t, err)
	assert.Equal(t, 85, rec.Score)
}

func TestAnalyzeWithReport(t *testing.T) {
	guests := &fakeGuestSource{profile: guestFixture()}
	hosts := &fakeHostSource{profile: hostFixture()}
	scorer := &fakeScorer{rec: recFixture(85)}

	tr := newTestTracker(t, guests, hosts, scorer, nil)

	rec, report, err := tr.AnalyzeWithReport(context.Background(), requestFixture())
	require.NoError(t, err)
	assert.Equal(t, 85, rec.Score)
	assert.Contains(t, report, "Elon Musk")
	assert.Contains(t, report, "85/100")
	assert.Contains(t, report, "llama-3.1-70b")
}

func TestAnalyzeBatch_RanksByScore(t *testing.T) {
	guests := &fakeGuestSource{profile: guestFixture()}
	hosts := &fakeHostSource{profile: hostFixture()}
	scorer := &fakeScorer{
		rec: recFixture(50),
		recs: map[string]*models.Recommendation{
			"Alice": {ID: "a", GuestName: "Alice", Score: 40, Verdict: models.VerdictMaybe},
			"Bob":   {ID: "b", GuestName: "Bob", Score: 90, Verdict: models.VerdictBook},
			"Carol": {ID: "c", GuestName: "Carol", Score: 65, Verdict: models.VerdictMaybe},
		},
	}

	tr := newTestTracker(t, guests, hosts, scorer, nil)

	result, err := tr.AnalyzeBatch(context.Background(), []GuestRef{
		{Name: "Alice", URL: "https://twitter.com/alice"},
		{Name: "Bob", URL: "https://twitter.com/bob"},
		{Name: "Carol", URL: "https://twitter.com/carol"},
	}, "https://youtube.com/@lexfridman")
	require.NoError(t, err)

	require.Len(t, result.Recommendations, 3)
	assert.Equal(t, "Bob", result.Recommendations[0].GuestName)
	assert.Equal(t, "Carol", result.Recommendations[1].GuestName)
	assert.Equal(t, "Alice", result.Recommendations[2].GuestName)
	assert.Empty(t, result.Failures)
}

func TestAnalyzeBatch_FailuresAreIndependent(t *testing.T) {
	guests := &fakeGuestSource{profile: guestFixture()}
	hosts := &fakeHostSource{profile: hostFixture()}
	scorer := &fakeScorer{rec: recFixture(70)}

	tr := newTestTracker(t, guests, hosts, scorer, nil)

	result, err := tr.AnalyzeBatch(context.Background(), []GuestRef{
		{Name: "Alice", URL: "https://twitter.com/alice"},
		{Name: "", URL: "https://twitter.com/broken"}, // invalid: no name
		{Name: "Carol", URL: "https://twitter.com/carol"},
	}, "https://youtube.com/@lexfridman")
	require.NoError(t, err)

	assert.Len(t, result.Recommendations, 2)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "https://twitter.com/broken", result.Failures[0].Guest.URL)
}
