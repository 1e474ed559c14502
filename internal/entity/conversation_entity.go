package entity

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is one chat thread owned by a user.
type Conversation struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Tags      []string
	Pinned    bool
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
