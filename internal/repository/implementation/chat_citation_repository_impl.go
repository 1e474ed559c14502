package implementation

import (
	"context"

	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatCitationRepositoryImpl struct {
	db *gorm.DB
}

func NewChatCitationRepository(db *gorm.DB) contract.ChatCitationRepository {
	return &ChatCitationRepositoryImpl{
		db: db,
	}
}

func (r *ChatCitationRepositoryImpl) Create(ctx context.Context, citation *entity.ChatCitation) error {
	return r.db.WithContext(ctx).Create(citation).Error
}

func (r *ChatCitationRepositoryImpl) CreateBulk(ctx context.Context, citations []*entity.ChatCitation) error {
	if len(citations) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&citations).Error
}

func (r *ChatCitationRepositoryImpl) FindAllByMessageIds(ctx context.Context, messageIds []uuid.UUID) ([]*entity.ChatCitation, error) {
	if len(messageIds) == 0 {
		return []*entity.ChatCitation{}, nil
	}
	var citations []*entity.ChatCitation
	err := r.db.WithContext(ctx).
		Where("chat_message_id IN ?", messageIds).
		Order("score DESC").
		Find(&citations).Error
	if err != nil {
		return nil, err
	}
	return citations, nil
}

func (r *ChatCitationRepositoryImpl) DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error {
	// Subquery delete strategy
	return r.db.WithContext(ctx).
		Where("chat_message_id IN (?)", r.db.Table("chat_messages").Select("id").Where("conversation_id = ?", conversationId)).
		Delete(&entity.ChatCitation{}).Error
}
