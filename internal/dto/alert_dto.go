package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAlertRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description,omitempty"`
	Frequency   string   `json:"frequency,omitempty" validate:"omitempty,oneof=immediate daily weekly"`
	Channels    []string `json:"channels,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Sources     []string `json:"sources,omitempty"`
}

type UpdateAlertRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
	Frequency   *string   `json:"frequency,omitempty" validate:"omitempty,oneof=immediate daily weekly"`
	Channels    *[]string `json:"channels,omitempty"`
	Keywords    *[]string `json:"keywords,omitempty"`
	Sources     *[]string `json:"sources,omitempty"`
}

type AlertResponse struct {
	Id              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	IsActive        bool       `json:"is_active"`
	Frequency       string     `json:"frequency"`
	Channels        []string   `json:"channels,omitempty"`
	Keywords        []string   `json:"keywords,omitempty"`
	Sources         []string   `json:"sources,omitempty"`
	LastTriggeredAt *time.Time `json:"last_triggered_at,omitempty"`
	TriggeredCount  int        `json:"triggered_count"`
	CreatedAt       time.Time  `json:"created_at"`
}
