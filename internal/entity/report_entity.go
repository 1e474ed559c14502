package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ReportStatus string
type ReportType string

const (
	ReportStatusDraft      ReportStatus = "draft"
	ReportStatusGenerating ReportStatus = "generating"
	ReportStatusCompleted  ReportStatus = "completed"
	ReportStatusFailed     ReportStatus = "failed"

	ReportTypeRegulatory ReportType = "regulatory"
	ReportTypeCompliance ReportType = "compliance"
	ReportTypeAssessment ReportType = "assessment"
)

// Report is a generated compliance document. Generation happens on the
// background worker; Status tracks the lifecycle.
type Report struct {
	Id          uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Title       string                      `gorm:"type:text;not null"`
	Description string                      `gorm:"type:text"`
	Type        ReportType                  `gorm:"type:varchar(20);not null"`
	Status      ReportStatus                `gorm:"type:varchar(20);not null;default:'draft'"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Author      string                      `gorm:"type:varchar(200)"`
	// Wizard inputs: regulation scope and reporting period.
	Regulation  string `gorm:"type:varchar(100)"`
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Content     string `gorm:"type:text"`
	CompletedAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Report) TableName() string {
	return "reports"
}
