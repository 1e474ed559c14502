package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserPreference is the persisted counterpart of the in-memory
// preference state: theme, language and sidebar visibility.
type UserPreference struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Theme       string    `gorm:"type:varchar(10);not null;default:'system'"`
	Language    string    `gorm:"type:varchar(5);not null;default:'es'"`
	SidebarOpen bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}
