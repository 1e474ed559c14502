package unitofwork

import (
	"context"

	"banking-rag-be/internal/repository"
	"banking-rag-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	PreferenceRepository() contract.PreferenceRepository

	ConversationRepository() contract.ConversationRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ChatCitationRepository() contract.ChatCitationRepository

	RegulatoryUpdateRepository() contract.RegulatoryUpdateRepository
	AlertRuleRepository() contract.AlertRuleRepository
	ReportRepository() contract.ReportRepository
	GapAnalysisRepository() contract.GapAnalysisRepository
	ComparativeRepository() contract.ComparativeRepository

	NotificationRepository() repository.NotificationRepository
}
