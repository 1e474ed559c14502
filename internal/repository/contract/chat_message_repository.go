package contract

import (
	"context"

	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	CreateBulk(ctx context.Context, messages []*entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	FindAllByConversationIds(ctx context.Context, conversationIds []uuid.UUID) ([]*entity.ChatMessage, error)
	DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
