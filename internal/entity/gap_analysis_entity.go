package entity

import (
	"time"

	"github.com/google/uuid"
)

type GapStatus string
type GapSeverity string

const (
	GapStatusCompliant    GapStatus = "compliant"
	GapStatusPartial      GapStatus = "partial"
	GapStatusNonCompliant GapStatus = "non_compliant"

	GapSeverityLow    GapSeverity = "low"
	GapSeverityMedium GapSeverity = "medium"
	GapSeverityHigh   GapSeverity = "high"
)

// GapAnalysis compares one normative text against one internal policy.
// Summary figures are always derived from the findings, never stored.
type GapAnalysis struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Normative   string    `gorm:"type:text;not null"`
	Policy      string    `gorm:"type:text;not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'completed'"`
	CompletedAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	Findings []GapFinding `gorm:"foreignKey:AnalysisId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (GapAnalysis) TableName() string {
	return "gap_analyses"
}

// GapFinding is one requirement-level verdict inside an analysis.
type GapFinding struct {
	Id              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	AnalysisId      uuid.UUID   `gorm:"type:uuid;not null;index"`
	Requirement     string      `gorm:"type:text;not null"`
	Clause          string      `gorm:"type:varchar(100)"`
	PolicyReference string      `gorm:"type:varchar(200)"`
	Status          GapStatus   `gorm:"type:varchar(20);not null"`
	Severity        GapSeverity `gorm:"type:varchar(10);not null"`
	Description     string      `gorm:"type:text"`
	Recommendation  string      `gorm:"type:text"`
	Owner           string      `gorm:"type:varchar(200)"`
	TargetDate      *time.Time
	Evidence        string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (GapFinding) TableName() string {
	return "gap_findings"
}

// GapSummary is computed from findings.
type GapSummary struct {
	TotalRequirements  int
	Compliant          int
	PartiallyCompliant int
	NonCompliant       int
	OverallScore       int // percentage
}

// Summarize derives the summary block: compliant counts full, partial
// counts half, rounded down.
func Summarize(findings []GapFinding) GapSummary {
	s := GapSummary{TotalRequirements: len(findings)}
	for _, f := range findings {
		switch f.Status {
		case GapStatusCompliant:
			s.Compliant++
		case GapStatusPartial:
			s.PartiallyCompliant++
		case GapStatusNonCompliant:
			s.NonCompliant++
		}
	}
	if s.TotalRequirements > 0 {
		s.OverallScore = (s.Compliant*100 + s.PartiallyCompliant*50) / s.TotalRequirements
	}
	return s
}
