package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpdateFeedQuery struct {
	Source   string `query:"source"`
	Tag      string `query:"tag"`
	Type     string `query:"type"`
	Priority string `query:"priority"`
	Search   string `query:"search"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

type RegulatoryUpdateResponse struct {
	Id          uuid.UUID `json:"id"`
	Source      string    `json:"source"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Tags        []string  `json:"tags,omitempty"`
	Type        string    `json:"type"`
	Priority    string    `json:"priority"`
	Regulation  string    `json:"regulation,omitempty"`
}

type UpdateFeedResponse struct {
	Items []RegulatoryUpdateResponse `json:"items"`
	Total int64                      `json:"total"`
}

// IngestUpdateRequest publishes a new item onto the feed, typically from
// a connector or an admin.
type IngestUpdateRequest struct {
	Source      string    `json:"source" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Summary     string    `json:"summary,omitempty"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Tags        []string  `json:"tags,omitempty"`
	Type        string    `json:"type" validate:"required,oneof=guideline rts guidance circular guide"`
	Priority    string    `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	Regulation  string    `json:"regulation,omitempty"`
}
