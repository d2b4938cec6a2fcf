// Package fetch holds the profile source collaborators: thin HTTP clients
// that return structured guest and host records from the upstream scraper
// services. Records are schema-validated before they become typed profiles.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "podcast-guest-tracker/internal/common/errors"
	commonhttp "podcast-guest-tracker/internal/common/http"
	"podcast-guest-tracker/internal/common/logger"
	"podcast-guest-tracker/internal/common/validation"
	"podcast-guest-tracker/internal/models"
)

// GuestSource returns a guest's social profile given name and profile URL.
type GuestSource interface {
	FetchGuest(ctx context.Context, name, profileURL string) (*models.GuestProfile, error)
}

// HostSource returns a host's channel profile given the channel URL.
type HostSource interface {
	FetchHost(ctx context.Context, channelURL string) (*models.HostChannelProfile, error)
}

// DetectPlatform classifies a guest profile URL.
func DetectPlatform(profileURL string) models.Platform {
	u := strings.ToLower(profileURL)
	switch {
	case strings.Contains(u, "twitter.com"), strings.Contains(u, "x.com"):
		return models.PlatformTwitter
	case strings.Contains(u, "linkedin.com"):
		return models.PlatformLinkedIn
	case strings.Contains(u, "youtube.com"), strings.Contains(u, "youtu.be"):
		return models.PlatformYouTube
	default:
		return models.PlatformOther
	}
}

// HTTPGuestSource fetches guest records from the guest analyzer service.
type HTTPGuestSource struct {
	baseURL string
	client  *commonhttp.Client
	logger  logger.Logger
	now     func() time.Time
}

func NewHTTPGuestSource(baseURL string, timeout time.Duration, log logger.Logger) *HTTPGuestSource {
	return &HTTPGuestSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  commonhttp.NewClient(timeout),
		logger:  log.WithFields(map[string]interface{}{"component": "guest-source"}),
		now:     time.Now,
	}
}

func (s *HTTPGuestSource) FetchGuest(ctx context.Context, name, profileURL string) (*models.GuestProfile, error) {
	endpoint := fmt.Sprintf("%s/api/guest-profile?name=%s&url=%s",
		s.baseURL, url.QueryEscape(name), url.QueryEscape(profileURL))

	raw, err := s.fetchRecord(ctx, endpoint)
	if err != nil {
		return nil, apperrors.NewProfileFetchError("guest", err)
	}

	if err := validation.ValidateGuestRecord(raw); err != nil {
		return nil, apperrors.NewProfileMalformedError("guest", err.Error())
	}

	var profile models.GuestProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, apperrors.NewProfileMalformedError("guest", err.Error())
	}

	profile.Platform = DetectPlatform(profileURL)
	profile.FetchedAt = s.now().UTC()

	s.logger.Debug("guest profile fetched", map[string]interface{}{
		"name":     profile.Name,
		"platform": profile.Platform,
	})
	return &profile, nil
}

func (s *HTTPGuestSource) fetchRecord(ctx context.Context, endpoint string) ([]byte, error) {
	resp, err := s.client.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// HTTPHostSource fetches channel records from the host analyzer service.
type HTTPHostSource struct {
	baseURL string
	client  *commonhttp.Client
	logger  logger.Logger
	now     func() time.Time
}

func NewHTTPHostSource(baseURL string, timeout time.Duration, log logger.Logger) *HTTPHostSource {
	return &HTTPHostSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  commonhttp.NewClient(timeout),
		logger:  log.WithFields(map[string]interface{}{"component": "host-source"}),
		now:     time.Now,
	}
}

func (s *HTTPHostSource) FetchHost(ctx context.Context, channelURL string) (*models.HostChannelProfile, error) {
	endpoint := fmt.Sprintf("%s/api/channel-profile?url=%s", s.baseURL, url.QueryEscape(channelURL))

	resp, err := s.client.Get(ctx, endpoint)
	if err != nil {
		return nil, apperrors.NewProfileFetchError("host", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewProfileFetchError("host", fmt.Errorf("status %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewProfileFetchError("host", err)
	}

	if err := validation.ValidateHostRecord(raw); err != nil {
		return nil, apperrors.NewProfileMalformedError("host", err.Error())
	}

	var profile models.HostChannelProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, apperrors.NewProfileMalformedError("host", err.Error())
	}

	profile.ChannelURL = channelURL
	profile.FetchedAt = s.now().UTC()

	s.logger.Debug("host channel fetched", map[string]interface{}{
		"channel": channelURL,
		"videos":  len(profile.RecentVideos),
	})
	return &profile, nil
}
