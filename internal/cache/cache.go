// Package cache stores recommendations keyed by normalized (guest URL, host
// URL) pairs for a bounded duration, so repeat requests skip the LLM entirely.
package cache

import (
	"context"

	"podcast-guest-tracker/internal/models"
)

// Store is the result cache contract. Get returns (nil, nil) on a miss or an
// expired entry; Put overwrites unconditionally (last-write-wins per key).
type Store interface {
	Get(ctx context.Context, req models.AnalysisRequest) (*models.Recommendation, error)
	Put(ctx context.Context, req models.AnalysisRequest, rec models.Recommendation) error
}
