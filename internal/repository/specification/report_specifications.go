package specification

import "gorm.io/gorm"

// SearchReports matches the query against title and description.
type SearchReports struct {
	Query string
}

func (s SearchReports) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
}
