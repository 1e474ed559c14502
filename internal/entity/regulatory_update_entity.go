package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UpdateType string
type UpdatePriority string

const (
	UpdateTypeGuideline UpdateType = "guideline"
	UpdateTypeRTS       UpdateType = "rts"
	UpdateTypeGuidance  UpdateType = "guidance"
	UpdateTypeCircular  UpdateType = "circular"
	UpdateTypeGuide     UpdateType = "guide"

	UpdatePriorityHigh   UpdatePriority = "high"
	UpdatePriorityMedium UpdatePriority = "medium"
	UpdatePriorityLow    UpdatePriority = "low"
)

// RegulatoryUpdate is one item on the regulatory-updates feed (ESMA, EBA,
// ECB, CNMV, BdE publications).
type RegulatoryUpdate struct {
	Id          uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Source      string                      `gorm:"type:varchar(50);not null;index"`
	Title       string                      `gorm:"type:text;not null"`
	Summary     string                      `gorm:"type:text"`
	URL         string                      `gorm:"type:text"`
	PublishedAt time.Time                   `gorm:"not null;index"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Type        UpdateType                  `gorm:"type:varchar(20);not null"`
	Priority    UpdatePriority              `gorm:"type:varchar(10);not null;default:'medium'"`
	Regulation  string                      `gorm:"type:varchar(100)"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime"`
}

func (RegulatoryUpdate) TableName() string {
	return "regulatory_updates"
}
