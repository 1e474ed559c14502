package specification

import "gorm.io/gorm"

type ByTopic struct {
	Topic string
}

func (s ByTopic) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("topic = ?", s.Topic)
}

type ByJurisdictions struct {
	Jurisdictions []string
}

func (s ByJurisdictions) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("jurisdiction IN ?", s.Jurisdictions)
}
