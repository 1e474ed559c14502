package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateReportRequest carries the wizard inputs.
type CreateReportRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"type" validate:"required,oneof=regulatory compliance assessment"`
	Tags        []string   `json:"tags,omitempty"`
	Regulation  string     `json:"regulation,omitempty"`
	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`
}

type ReportResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Tags        []string   `json:"tags,omitempty"`
	Author      string     `json:"author,omitempty"`
	Regulation  string     `json:"regulation,omitempty"`
	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`
	Content     string     `json:"content,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
