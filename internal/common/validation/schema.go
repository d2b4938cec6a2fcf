// Package validation checks upstream profile records against their JSON
// Schemas before they become typed profiles. Scraper output is untrusted.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const guestRecordSchema = `{
	"type": "object",
	"required": ["name", "sourceUrl"],
	"properties": {
		"name":                {"type": "string", "minLength": 1},
		"sourceUrl":           {"type": "string", "minLength": 1},
		"currentDesignation":  {"type": "string"},
		"company":             {"type": "string"},
		"industry":            {"type": "string"},
		"expertiseAreas":      {"type": "array", "items": {"type": "string"}},
		"keyTopics":           {"type": "array", "items": {"type": "string"}},
		"socialFollowing":     {"type": "object", "additionalProperties": {"type": "string"}},
		"authorityIndicators": {"type": "array", "items": {"type": "string"}},
		"previousPodcasts":    {"type": "array", "items": {"type": "string"}},
		"recentActivities":    {"type": "array", "items": {"type": "string"}},
		"bioSummary":          {"type": "string"}
	}
}`

const hostRecordSchema = `{
	"type": "object",
	"required": ["channelUrl"],
	"properties": {
		"channelUrl":      {"type": "string", "minLength": 1},
		"subscriberCount": {"type": "integer", "minimum": 0},
		"recentVideos": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["title"],
				"properties": {
					"title":      {"type": "string"},
					"viewCount":  {"type": "integer", "minimum": 0},
					"uploadDate": {"type": "string"}
				}
			}
		},
		"primaryTopics":     {"type": "array", "items": {"type": "string"}},
		"audienceProfile":   {"type": "string"},
		"engagementDrivers": {"type": "array", "items": {"type": "string"}},
		"averageViews":      {"type": "integer", "minimum": 0},
		"engagementRate":    {"type": "number", "minimum": 0}
	}
}`

var (
	guestLoader = gojsonschema.NewStringLoader(guestRecordSchema)
	hostLoader  = gojsonschema.NewStringLoader(hostRecordSchema)
)

// ValidateGuestRecord validates a raw guest profile document.
func ValidateGuestRecord(data []byte) error {
	return validate(guestLoader, data)
}

// ValidateHostRecord validates a raw host channel document.
func ValidateHostRecord(data []byte) error {
	return validate(hostLoader, data)
}

func validate(schema gojsonschema.JSONLoader, data []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("record validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}
