package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatCitation is a scored reference attached to an assistant message at
// creation time, never mutated afterwards.
type ChatCitation struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChatMessageId uuid.UUID `gorm:"type:uuid;not null;index"`
	Source        string    `gorm:"type:text;not null"`
	URL           string    `gorm:"type:text"`
	Score         float64   `gorm:"type:double precision;not null"` // [0,1]
	CreatedAt     time.Time `gorm:"autoCreateTime"`

	ChatMessage *ChatMessage `gorm:"foreignKey:ChatMessageId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (ChatCitation) TableName() string {
	return "chat_citations"
}
