// Package tracker sequences one guest fit analysis: cache lookup, concurrent
// profile fetch, aggregation, scoring, cache store.
package tracker

import (
	"context"
	"sort"
	"strings"
	"time"

	"podcast-guest-tracker/internal/cache"
	apperrors "podcast-guest-tracker/internal/common/errors"
	"podcast-guest-tracker/internal/common/logger"
	"podcast-guest-tracker/internal/common/metrics"
	"podcast-guest-tracker/internal/features"
	"podcast-guest-tracker/internal/fetch"
	"podcast-guest-tracker/internal/models"
)

// Scorer abstracts the scoring pipeline.
type Scorer interface {
	Score(ctx context.Context, fs *features.FeatureSet) (*models.Recommendation, error)
}

type Tracker struct {
	guests fetch.GuestSource
	hosts  fetch.HostSource
	agg    *features.Aggregator
	scorer Scorer
	cache  cache.Store
	logger logger.Logger
}

func New(guests fetch.GuestSource, hosts fetch.HostSource, agg *features.Aggregator, scorer Scorer, store cache.Store, log logger.Logger) *Tracker {
	return &Tracker{
		guests: guests,
		hosts:  hosts,
		agg:    agg,
		scorer: scorer,
		cache:  store,
		logger: log.WithFields(map[string]interface{}{"component": "tracker"}),
	}
}

type fetchResult[T any] struct {
	profile *T
	err     error
}

// Analyze runs the full pipeline for one request. The cache is written only
// on full success, so abandoned or failed requests never corrupt cached
// state. Either profile fetch failing fails the whole request; no degraded
// recommendation is produced from one side's data.
func (t *Tracker) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.Recommendation, error) {
	rec, _, _, err := t.analyze(ctx, req)
	return rec, err
}

// AnalyzeWithReport runs Analyze and renders the markdown briefing. A cache
// hit skips the profile fetch inside analyze, so the profiles are fetched
// again here purely for rendering.
func (t *Tracker) AnalyzeWithReport(ctx context.Context, req models.AnalysisRequest) (*models.Recommendation, string, error) {
	rec, guest, host, err := t.analyze(ctx, req)
	if err != nil {
		return nil, "", err
	}

	if guest == nil || host == nil {
		guest, host, err = t.fetchProfiles(ctx, req)
		if err != nil {
			return nil, "", t.fail(req, err)
		}
	}
	return rec, RenderReport(guest, host, rec), nil
}

func (t *Tracker) analyze(ctx context.Context, req models.AnalysisRequest) (*models.Recommendation, *models.GuestProfile, *models.HostChannelProfile, error) {
	if err := validateRequest(req); err != nil {
		return nil, nil, nil, err
	}

	start := time.Now()

	if rec, err := t.cache.Get(ctx, req); err != nil {
		// A broken cache backend degrades to a miss, not a failed analysis.
		t.logger.Warn("cache lookup failed", map[string]interface{}{
			"guest": req.GuestName,
			"error": err.Error(),
		})
	} else if rec != nil {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		t.logger.Info("cache hit", map[string]interface{}{
			"guest":   req.GuestName,
			"verdict": rec.Verdict,
		})
		return rec, nil, nil, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	guest, host, err := t.fetchProfiles(ctx, req)
	if err != nil {
		return nil, nil, nil, t.fail(req, err)
	}

	fs, err := t.agg.Aggregate(guest, host)
	if err != nil {
		return nil, nil, nil, t.fail(req, err)
	}

	rec, err := t.scorer.Score(ctx, fs)
	if err != nil {
		return nil, nil, nil, t.fail(req, err)
	}

	if err := t.cache.Put(ctx, req, *rec); err != nil {
		t.logger.Warn("cache store failed", map[string]interface{}{
			"guest": req.GuestName,
			"error": err.Error(),
		})
	}

	metrics.AnalysesCompleted.WithLabelValues(string(rec.Verdict)).Inc()
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	t.logger.Info("analysis complete", map[string]interface{}{
		"guest":    req.GuestName,
		"score":    rec.Score,
		"verdict":  rec.Verdict,
		"duration": time.Since(start).String(),
	})
	return rec, guest, host, nil
}

// fetchProfiles runs the two independent fetches concurrently and waits on both.
func (t *Tracker) fetchProfiles(ctx context.Context, req models.AnalysisRequest) (*models.GuestProfile, *models.HostChannelProfile, error) {
	guestCh := make(chan fetchResult[models.GuestProfile], 1)
	hostCh := make(chan fetchResult[models.HostChannelProfile], 1)

	go func() {
		p, err := t.guests.FetchGuest(ctx, req.GuestName, req.GuestURL)
		guestCh <- fetchResult[models.GuestProfile]{profile: p, err: err}
	}()
	go func() {
		p, err := t.hosts.FetchHost(ctx, req.HostChannelURL)
		hostCh <- fetchResult[models.HostChannelProfile]{profile: p, err: err}
	}()

	guestRes := <-guestCh
	hostRes := <-hostCh
	if guestRes.err != nil {
		return nil, nil, guestRes.err
	}
	if hostRes.err != nil {
		return nil, nil, hostRes.err
	}
	return guestRes.profile, hostRes.profile, nil
}

func (t *Tracker) fail(req models.AnalysisRequest, err error) error {
	code := apperrors.CodeOf(err)
	metrics.AnalysesFailed.WithLabelValues(string(code)).Inc()
	t.logger.Error("analysis failed", map[string]interface{}{
		"guest":     req.GuestName,
		"errorCode": string(code),
		"error":     err.Error(),
	})
	return err
}

func validateRequest(req models.AnalysisRequest) error {
	switch {
	case strings.TrimSpace(req.GuestName) == "":
		return apperrors.NewInvalidRequestError("guest name is required")
	case strings.TrimSpace(req.GuestURL) == "":
		return apperrors.NewInvalidRequestError("guest URL is required")
	case strings.TrimSpace(req.HostChannelURL) == "":
		return apperrors.NewInvalidRequestError("host channel URL is required")
	}
	return nil
}

// GuestRef identifies one guest in a batch run.
type GuestRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// BatchFailure records one guest whose analysis did not complete.
type BatchFailure struct {
	Guest GuestRef `json:"guest"`
	Error string   `json:"error"`
}

// BatchResult holds recommendations ranked by score, best first.
type BatchResult struct {
	Recommendations []*models.Recommendation `json:"recommendations"`
	Failures        []BatchFailure           `json:"failures,omitempty"`
}

// AnalyzeBatch scores a guest list against one host channel. Guests fail
// independently; one bad profile never aborts the rest of the batch.
func (t *Tracker) AnalyzeBatch(ctx context.Context, guests []GuestRef, hostChannelURL string) (*BatchResult, error) {
	result := &BatchResult{}

	for _, g := range guests {
		rec, err := t.Analyze(ctx, models.AnalysisRequest{
			GuestName:      g.Name,
			GuestURL:       g.URL,
			HostChannelURL: hostChannelURL,
		})
		if err != nil {
			result.Failures = append(result.Failures, BatchFailure{Guest: g, Error: err.Error()})
			continue
		}
		result.Recommendations = append(result.Recommendations, rec)
	}

	sort.SliceStable(result.Recommendations, func(i, j int) bool {
		return result.Recommendations[i].Score > result.Recommendations[j].Score
	})
	return result, nil
}
