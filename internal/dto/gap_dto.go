package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateGapAnalysisRequest struct {
	Normative string `json:"normative" validate:"required"`
	Policy    string `json:"policy" validate:"required"`
}

type GapFindingDTO struct {
	Id              uuid.UUID  `json:"id"`
	Requirement     string     `json:"requirement"`
	Clause          string     `json:"clause,omitempty"`
	PolicyReference string     `json:"policy_reference,omitempty"`
	Status          string     `json:"status"`
	Severity        string     `json:"severity"`
	Description     string     `json:"description,omitempty"`
	Recommendation  string     `json:"recommendation,omitempty"`
	Owner           string     `json:"owner,omitempty"`
	TargetDate      *time.Time `json:"target_date,omitempty"`
	Evidence        string     `json:"evidence,omitempty"`
}

type GapSummaryDTO struct {
	TotalRequirements  int `json:"total_requirements"`
	Compliant          int `json:"compliant"`
	PartiallyCompliant int `json:"partially_compliant"`
	NonCompliant       int `json:"non_compliant"`
	OverallScore       int `json:"overall_score"`
}

type GapAnalysisResponse struct {
	Id          uuid.UUID       `json:"id"`
	Normative   string          `json:"normative"`
	Policy      string          `json:"policy"`
	Status      string          `json:"status"`
	Summary     GapSummaryDTO   `json:"summary"`
	Findings    []GapFindingDTO `json:"findings"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
