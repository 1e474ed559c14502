package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AlertFrequency string

const (
	AlertFrequencyImmediate AlertFrequency = "immediate"
	AlertFrequencyDaily     AlertFrequency = "daily"
	AlertFrequencyWeekly    AlertFrequency = "weekly"

	AlertChannelEmail = "email"
	AlertChannelWeb   = "browser"
)

// AlertRule watches the updates feed for a user. A rule matches when any
// keyword appears in an update's title, summary or tags, or when the
// update's source is on the rule's source list.
type AlertRule struct {
	Id              uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	UserId          uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Title           string                      `gorm:"type:text;not null"`
	Description     string                      `gorm:"type:text"`
	IsActive        bool                        `gorm:"default:true"`
	Frequency       AlertFrequency              `gorm:"type:varchar(20);not null;default:'immediate'"`
	Channels        datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Keywords        datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Sources         datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	LastTriggeredAt *time.Time
	TriggeredCount  int       `gorm:"default:0"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (AlertRule) TableName() string {
	return "alert_rules"
}
