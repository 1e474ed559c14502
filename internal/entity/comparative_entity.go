package entity

import (
	"time"

	"github.com/google/uuid"
)

type ComparativeStatus string

const (
	ComparativeStatusAligned   ComparativeStatus = "aligned"
	ComparativeStatusDivergent ComparativeStatus = "divergent"
	ComparativeStatusStricter  ComparativeStatus = "stricter"
	ComparativeStatusUnknown   ComparativeStatus = "unknown"
)

// ComparativeEntry is one cell of the jurisdiction matrix: how a given
// jurisdiction treats a requirement within a regulatory topic.
type ComparativeEntry struct {
	Id           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Topic        string            `gorm:"type:varchar(50);not null;index:idx_comparative_topic_jurisdiction"`
	Jurisdiction string            `gorm:"type:varchar(5);not null;index:idx_comparative_topic_jurisdiction"`
	Requirement  string            `gorm:"type:text;not null"`
	Status       ComparativeStatus `gorm:"type:varchar(20);not null"`
	Value        string            `gorm:"type:text"`
	Notes        string            `gorm:"type:text"`
	CreatedAt    time.Time         `gorm:"autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime"`
}

func (ComparativeEntry) TableName() string {
	return "comparative_entries"
}

// Jurisdictions and topics the matrix covers. Seeded data stays within
// these sets but the schema does not enforce it.
var (
	ComparativeJurisdictions = []string{"ES", "FR", "DE", "UK", "US"}
	ComparativeTopics        = []string{"solvency", "liquidity", "conduct", "esg"}
)
