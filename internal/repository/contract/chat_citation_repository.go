package contract

import (
	"context"

	"banking-rag-be/internal/entity"

	"github.com/google/uuid"
)

type ChatCitationRepository interface {
	Create(ctx context.Context, citation *entity.ChatCitation) error
	CreateBulk(ctx context.Context, citations []*entity.ChatCitation) error
	FindAllByMessageIds(ctx context.Context, messageIds []uuid.UUID) ([]*entity.ChatCitation, error)
	DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error
}
