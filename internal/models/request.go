package models

import "strings"

// AnalysisRequest identifies one guest/host pairing to analyze. Value object;
// the cache key derives from its normalized URL fields.
type AnalysisRequest struct {
	GuestName      string `json:"guestName"`
	GuestURL       string `json:"guestUrl"`
	HostChannelURL string `json:"hostChannelUrl"`
}

// CacheKey returns the normalized (guest URL, host URL) pair: case-insensitive
// and trimmed, so trailing whitespace or casing never splits the cache.
func (r AnalysisRequest) CacheKey() string {
	return normalizeURL(r.GuestURL) + "|" + normalizeURL(r.HostChannelURL)
}

func normalizeURL(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
