package specification

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type BySource struct {
	Source string
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source = ?", s.Source)
}

type ByUpdateType struct {
	Type string
}

func (s ByUpdateType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

type ByPriority struct {
	Priority string
}

func (s ByPriority) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("priority = ?", s.Priority)
}

type PublishedAfter struct {
	After time.Time
}

func (s PublishedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("published_at >= ?", s.After)
}

// HasTag matches items whose jsonb tag array contains the tag.
type HasTag struct {
	Tag string
}

func (s HasTag) Apply(db *gorm.DB) *gorm.DB {
	value, _ := json.Marshal([]string{s.Tag})
	return db.Where("tags @> ?", string(value))
}

// SearchUpdates matches the query against title and summary.
type SearchUpdates struct {
	Query string
}

func (s SearchUpdates) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title ILIKE ? OR summary ILIKE ?", pattern, pattern)
}
