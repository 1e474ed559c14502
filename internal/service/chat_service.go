package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"banking-rag-be/internal/dto"
	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/pkg/logger"
	"banking-rag-be/internal/repository/memory"
	"banking-rag-be/internal/repository/specification"
	"banking-rag-be/internal/repository/unitofwork"
	"banking-rag-be/pkg/assistant"
	"banking-rag-be/pkg/store"

	"github.com/google/uuid"
)

const defaultConversationTitle = "Nueva Conversación"

const maxDerivedTitleLen = 60

func titleFromPrompt(prompt string) string {
	title := strings.TrimSpace(prompt)
	if title == "" {
		return defaultConversationTitle
	}
	runes := []rune(title)
	if len(runes) > maxDerivedTitleLen {
		title = strings.TrimSpace(string(runes[:maxDerivedTitleLen])) + "…"
	}
	return title
}

type IChatService interface {
	CreateConversation(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error)
	GetAllConversations(ctx context.Context, userId uuid.UUID) ([]dto.ConversationResponse, error)
	UpdateConversation(ctx context.Context, userId, conversationId uuid.UUID, req *dto.UpdateConversationRequest) (*dto.ConversationResponse, error)
	DeleteConversation(ctx context.Context, userId, conversationId uuid.UUID) error
	GetChatHistory(ctx context.Context, userId, conversationId uuid.UUID) ([]dto.ChatHistoryResponse, error)
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	SetActiveConversation(ctx context.Context, userId, conversationId uuid.UUID) error
	GetState(ctx context.Context, userId uuid.UUID) (*dto.ChatStateResponse, error)
	ClearState(ctx context.Context, userId uuid.UUID) error
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	stateRepo  *memory.StateRepository
	persistor  store.Persistor
	responder  assistant.Responder
	logger     logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	stateRepo *memory.StateRepository,
	persistor store.Persistor,
	responder assistant.Responder,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		stateRepo:  stateRepo,
		persistor:  persistor,
		responder:  responder,
		logger:     log,
	}
}

// mirror returns the per-user conversation working state, rebuilding it
// from the persisted snapshot or the database on a cold start.
func (s *chatService) mirror(ctx context.Context, userId uuid.UUID) *store.ConversationStore {
	if st, ok := s.stateRepo.Get(userId.String()); ok {
		return st
	}

	st := store.NewConversationStore()

	key := store.UserKey(store.KeyChat, userId.String())
	if err := store.LoadSnapshot(ctx, s.persistor, key, st); err != nil {
		s.logger.Warn("chat", "failed to load state snapshot", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}

	if len(st.Conversations()) == 0 {
		if err := s.rebuildFromDB(ctx, userId, st); err != nil {
			s.logger.Warn("chat", "failed to rebuild state from db", map[string]interface{}{
				"user_id": userId.String(),
				"error":   err.Error(),
			})
		}
	}

	s.stateRepo.Save(userId.String(), st)
	return st
}

func (s *chatService) rebuildFromDB(ctx context.Context, userId uuid.UUID, st *store.ConversationStore) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: false},
	)
	if err != nil {
		return err
	}

	ids := make([]uuid.UUID, len(conversations))
	for i, c := range conversations {
		ids[i] = c.Id
	}

	messages, err := uow.ChatMessageRepository().FindAllByConversationIds(ctx, ids)
	if err != nil {
		return err
	}

	messageIds := make([]uuid.UUID, len(messages))
	for i, m := range messages {
		messageIds[i] = m.Id
	}
	citations, err := uow.ChatCitationRepository().FindAllByMessageIds(ctx, messageIds)
	if err != nil {
		return err
	}

	citationsByMessage := make(map[uuid.UUID][]store.Citation)
	for _, c := range citations {
		citationsByMessage[c.ChatMessageId] = append(citationsByMessage[c.ChatMessageId], store.Citation{
			Source: c.Source,
			URL:    c.URL,
			Score:  c.Score,
		})
	}

	messagesByConversation := make(map[uuid.UUID][]store.Message)
	for _, m := range messages {
		tokens := 0
		if m.Tokens != nil {
			tokens = *m.Tokens
		}
		messagesByConversation[m.ConversationId] = append(messagesByConversation[m.ConversationId], store.Message{
			ID:        m.Id.String(),
			Role:      m.Role,
			Content:   m.Content,
			Citations: citationsByMessage[m.Id],
			CreatedAt: m.CreatedAt,
			Tokens:    tokens,
		})
	}

	// Oldest first so that prepending leaves the newest conversation on top.
	for _, c := range conversations {
		updatedAt := c.CreatedAt
		if c.UpdatedAt != nil {
			updatedAt = *c.UpdatedAt
		}
		st.AddConversation(store.Conversation{
			ID:        c.Id.String(),
			Title:     c.Title,
			Messages:  messagesByConversation[c.Id],
			Tags:      c.Tags,
			UpdatedAt: updatedAt,
			Pinned:    c.Pinned,
		})
	}
	return nil
}

func (s *chatService) persistState(ctx context.Context, userId uuid.UUID, st *store.ConversationStore) {
	key := store.UserKey(store.KeyChat, userId.String())
	if err := store.SaveSnapshot(ctx, s.persistor, key, st); err != nil {
		s.logger.Warn("chat", "failed to persist state snapshot", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}
}

func (s *chatService) CreateConversation(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error) {
	title := req.Title
	if title == "" {
		title = defaultConversationTitle
	}

	conversation := &entity.Conversation{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		Tags:      req.Tags,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
		return nil, err
	}

	st := s.mirror(ctx, userId)
	st.AddConversation(store.Conversation{
		ID:        conversation.Id.String(),
		Title:     conversation.Title,
		Tags:      conversation.Tags,
		UpdatedAt: conversation.CreatedAt,
	})
	st.SetActiveConversation(conversation.Id.String())
	s.persistState(ctx, userId, st)

	return &dto.CreateConversationResponse{Id: conversation.Id, Title: conversation.Title}, nil
}

func (s *chatService) GetAllConversations(ctx context.Context, userId uuid.UUID) ([]dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.PinnedFirst{},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ConversationResponse, len(conversations))
	for i, c := range conversations {
		responses[i] = dto.ConversationResponse{
			Id:        c.Id,
			Title:     c.Title,
			Tags:      c.Tags,
			Pinned:    c.Pinned,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}
	}
	return responses, nil
}

func (s *chatService) UpdateConversation(ctx context.Context, userId, conversationId uuid.UUID, req *dto.UpdateConversationRequest) (*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, errors.New("conversation not found")
	}

	if req.Title != nil {
		conversation.Title = *req.Title
	}
	if req.Tags != nil {
		conversation.Tags = *req.Tags
	}
	if req.Pinned != nil {
		conversation.Pinned = *req.Pinned
	}

	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return nil, err
	}

	st := s.mirror(ctx, userId)
	st.UpdateConversation(conversationId.String(), store.ConversationPatch{
		Title:  req.Title,
		Tags:   req.Tags,
		Pinned: req.Pinned,
	})
	s.persistState(ctx, userId, st)

	return &dto.ConversationResponse{
		Id:        conversation.Id,
		Title:     conversation.Title,
		Tags:      conversation.Tags,
		Pinned:    conversation.Pinned,
		CreatedAt: conversation.CreatedAt,
		UpdatedAt: conversation.UpdatedAt,
	}, nil
}

func (s *chatService) DeleteConversation(ctx context.Context, userId, conversationId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if conversation == nil {
		return errors.New("conversation not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatCitationRepository().DeleteByConversationId(ctx, conversationId); err != nil {
		return err
	}
	if err := uow.ChatMessageRepository().DeleteByConversationId(ctx, conversationId); err != nil {
		return err
	}
	if err := uow.ConversationRepository().Delete(ctx, conversationId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	// Clears the active pointer too when it referenced this conversation.
	st := s.mirror(ctx, userId)
	st.DeleteConversation(conversationId.String())
	s.persistState(ctx, userId, st)

	return nil
}

func (s *chatService) GetChatHistory(ctx context.Context, userId, conversationId uuid.UUID) ([]dto.ChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, errors.New("conversation not found")
	}

	messages, err := uow.ChatMessageRepository().FindAllByConversationIds(ctx, []uuid.UUID{conversationId})
	if err != nil {
		return nil, err
	}

	messageIds := make([]uuid.UUID, len(messages))
	for i, m := range messages {
		messageIds[i] = m.Id
	}
	citations, err := uow.ChatCitationRepository().FindAllByMessageIds(ctx, messageIds)
	if err != nil {
		return nil, err
	}

	citationsByMessage := make(map[uuid.UUID][]dto.CitationDTO)
	for _, c := range citations {
		citationsByMessage[c.ChatMessageId] = append(citationsByMessage[c.ChatMessageId], dto.CitationDTO{
			Source: c.Source,
			URL:    c.URL,
			Score:  c.Score,
		})
	}

	history := make([]dto.ChatHistoryResponse, len(messages))
	for i, m := range messages {
		history[i] = dto.ChatHistoryResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
			Citations: citationsByMessage[m.Id],
		}
	}
	return history, nil
}

func (s *chatService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: req.ConversationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, errors.New("conversation not found")
	}

	st := s.mirror(ctx, userId)
	st.SetActiveConversation(conversation.Id.String())
	st.SetLoading(true)
	defer st.SetLoading(false)

	// 1. Persist the user turn
	userMessage := &entity.ChatMessage{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           entity.ChatMessageRoleUser,
		Content:        req.Content,
		CreatedAt:      time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		return nil, err
	}
	st.AddMessage(conversation.Id.String(), store.Message{
		ID:        userMessage.Id.String(),
		Role:      store.MessageRoleUser,
		Content:   userMessage.Content,
		CreatedAt: userMessage.CreatedAt,
	})

	// 2. Generate the assistant turn
	language := s.userLanguage(ctx, userId)
	reply, err := s.responder.Respond(ctx, req.Content, language)
	if err != nil {
		return nil, fmt.Errorf("assistant failed: %w", err)
	}

	tokens := reply.Tokens
	assistantMessage := &entity.ChatMessage{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           entity.ChatMessageRoleAssistant,
		Content:        reply.Content,
		Tokens:         &tokens,
		CreatedAt:      time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMessage); err != nil {
		return nil, err
	}

	citationEntities := make([]*entity.ChatCitation, len(reply.Citations))
	citationDTOs := make([]dto.CitationDTO, len(reply.Citations))
	storeCitations := make([]store.Citation, len(reply.Citations))
	for i, c := range reply.Citations {
		citationEntities[i] = &entity.ChatCitation{
			Id:            uuid.New(),
			ChatMessageId: assistantMessage.Id,
			Source:        c.Source,
			URL:           c.URL,
			Score:         c.Score,
			CreatedAt:     time.Now(),
		}
		citationDTOs[i] = dto.CitationDTO{Source: c.Source, URL: c.URL, Score: c.Score}
		storeCitations[i] = store.Citation{Source: c.Source, URL: c.URL, Score: c.Score}
	}
	if err := uow.ChatCitationRepository().CreateBulk(ctx, citationEntities); err != nil {
		return nil, err
	}

	st.AddMessage(conversation.Id.String(), store.Message{
		ID:        assistantMessage.Id.String(),
		Role:      store.MessageRoleAssistant,
		Content:   assistantMessage.Content,
		Citations: storeCitations,
		CreatedAt: assistantMessage.CreatedAt,
		Tokens:    reply.Tokens,
	})

	// 3. Touch the conversation so listings reorder. A still-untitled
	// conversation takes its title from the first user prompt.
	now := assistantMessage.CreatedAt
	conversation.UpdatedAt = &now
	if conversation.Title == defaultConversationTitle {
		conversation.Title = titleFromPrompt(req.Content)
	}
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return nil, err
	}

	s.persistState(ctx, userId, st)

	return &dto.SendChatResponse{
		ConversationId:    conversation.Id,
		ConversationTitle: conversation.Title,
		Sent: &dto.SendChatResponseMessage{
			Id:        userMessage.Id,
			Role:      userMessage.Role,
			Content:   userMessage.Content,
			CreatedAt: userMessage.CreatedAt,
		},
		Reply: &dto.SendChatResponseMessage{
			Id:        assistantMessage.Id,
			Role:      assistantMessage.Role,
			Content:   assistantMessage.Content,
			CreatedAt: assistantMessage.CreatedAt,
			Citations: citationDTOs,
		},
	}, nil
}

func (s *chatService) SetActiveConversation(ctx context.Context, userId, conversationId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if conversation == nil {
		return errors.New("conversation not found")
	}

	st := s.mirror(ctx, userId)
	st.SetActiveConversation(conversationId.String())
	s.persistState(ctx, userId, st)
	return nil
}

func (s *chatService) GetState(ctx context.Context, userId uuid.UUID) (*dto.ChatStateResponse, error) {
	st := s.mirror(ctx, userId)

	conversations := st.Conversations()
	resp := &dto.ChatStateResponse{
		Conversations: make([]dto.ConversationStateDTO, len(conversations)),
		ActiveId:      st.ActiveConversation(),
	}
	for i, c := range conversations {
		messages := make([]dto.MessageStateDTO, len(c.Messages))
		for j, m := range c.Messages {
			citations := make([]dto.CitationDTO, len(m.Citations))
			for k, cit := range m.Citations {
				citations[k] = dto.CitationDTO{Source: cit.Source, URL: cit.URL, Score: cit.Score}
			}
			messages[j] = dto.MessageStateDTO{
				Id:        m.ID,
				Role:      m.Role,
				Content:   m.Content,
				CreatedAt: m.CreatedAt,
				Citations: citations,
			}
		}
		resp.Conversations[i] = dto.ConversationStateDTO{
			Id:        c.ID,
			Title:     c.Title,
			Tags:      c.Tags,
			Pinned:    c.Pinned,
			UpdatedAt: c.UpdatedAt,
			Messages:  messages,
		}
	}
	return resp, nil
}

// ClearState drops the in-memory mirror and the persisted snapshot. Called
// on logout so the next session starts from zero state.
func (s *chatService) ClearState(ctx context.Context, userId uuid.UUID) error {
	s.stateRepo.Delete(userId.String())
	key := store.UserKey(store.KeyChat, userId.String())
	return s.persistor.Delete(ctx, key)
}

func (s *chatService) userLanguage(ctx context.Context, userId uuid.UUID) string {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	pref, err := uow.PreferenceRepository().FindByUserId(ctx, userId)
	if err != nil || pref == nil {
		return string(store.LanguageSpanish)
	}
	return pref.Language
}
