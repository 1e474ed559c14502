package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateConversationRequest struct {
	Title string   `json:"title,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

type CreateConversationResponse struct {
	Id    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type ConversationResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Tags      []string   `json:"tags,omitempty"`
	Pinned    bool       `json:"pinned"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type UpdateConversationRequest struct {
	Title  *string   `json:"title,omitempty"`
	Tags   *[]string `json:"tags,omitempty"`
	Pinned *bool     `json:"pinned,omitempty"`
}

type CitationDTO struct {
	Source string  `json:"source"`
	URL    string  `json:"url,omitempty"`
	Score  float64 `json:"score"`
}

type ChatHistoryResponse struct {
	Id        uuid.UUID     `json:"id"`
	Role      string        `json:"role"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	Citations []CitationDTO `json:"citations,omitempty"`
}

type SendChatRequest struct {
	ConversationId uuid.UUID `json:"conversation_id" validate:"required"`
	Content        string    `json:"content" validate:"required"`
}

type SendChatResponseMessage struct {
	Id        uuid.UUID     `json:"id"`
	Role      string        `json:"role"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	Citations []CitationDTO `json:"citations,omitempty"`
}

type SendChatResponse struct {
	ConversationId    uuid.UUID                `json:"conversation_id"`
	ConversationTitle string                   `json:"title"`
	Sent              *SendChatResponseMessage `json:"sent"`
	Reply             *SendChatResponseMessage `json:"reply"`
}

// ChatStateResponse hydrates a client after login: the full conversation
// working state as one snapshot.
type ChatStateResponse struct {
	Conversations []ConversationStateDTO `json:"conversations"`
	ActiveId      string                 `json:"active_conversation_id,omitempty"`
}

type ConversationStateDTO struct {
	Id        string            `json:"id"`
	Title     string            `json:"title"`
	Tags      []string          `json:"tags,omitempty"`
	Pinned    bool              `json:"pinned"`
	UpdatedAt time.Time         `json:"updated_at"`
	Messages  []MessageStateDTO `json:"messages"`
}

type MessageStateDTO struct {
	Id        string        `json:"id"`
	Role      string        `json:"role"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	Citations []CitationDTO `json:"citations,omitempty"`
}
