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
	"banking-rag-be/internal/pkg/mailer"
	"banking-rag-be/internal/repository/specification"
	"banking-rag-be/internal/repository/unitofwork"
	"banking-rag-be/pkg/events"
	pktNats "banking-rag-be/pkg/nats"

	"github.com/google/uuid"
)

type IAlertService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateAlertRequest) (*dto.AlertResponse, error)
	Update(ctx context.Context, userId, alertId uuid.UUID, req *dto.UpdateAlertRequest) (*dto.AlertResponse, error)
	Delete(ctx context.Context, userId, alertId uuid.UUID) error
	GetAll(ctx context.Context, userId uuid.UUID) ([]dto.AlertResponse, error)
	Toggle(ctx context.Context, userId, alertId uuid.UUID) (*dto.AlertResponse, error)

	// EvaluateUpdate runs every active rule against a freshly ingested
	// update and fires the matching ones.
	EvaluateUpdate(ctx context.Context, update *entity.RegulatoryUpdate) error
}

type alertService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewAlertService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IAlertService {
	return &alertService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func toAlertResponse(rule *entity.AlertRule) *dto.AlertResponse {
	return &dto.AlertResponse{
		Id:              rule.Id,
		Title:           rule.Title,
		Description:     rule.Description,
		IsActive:        rule.IsActive,
		Frequency:       string(rule.Frequency),
		Channels:        rule.Channels,
		Keywords:        rule.Keywords,
		Sources:         rule.Sources,
		LastTriggeredAt: rule.LastTriggeredAt,
		TriggeredCount:  rule.TriggeredCount,
		CreatedAt:       rule.CreatedAt,
	}
}

func (s *alertService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateAlertRequest) (*dto.AlertResponse, error) {
	frequency := entity.AlertFrequency(req.Frequency)
	if frequency == "" {
		frequency = entity.AlertFrequencyImmediate
	}
	channels := req.Channels
	if len(channels) == 0 {
		channels = []string{entity.AlertChannelWeb}
	}

	rule := &entity.AlertRule{
		Id:          uuid.New(),
		UserId:      userId,
		Title:       req.Title,
		Description: req.Description,
		IsActive:    true,
		Frequency:   frequency,
		Channels:    channels,
		Keywords:    req.Keywords,
		Sources:     req.Sources,
		CreatedAt:   time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AlertRuleRepository().Create(ctx, rule); err != nil {
		return nil, err
	}
	return toAlertResponse(rule), nil
}

func (s *alertService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, alertId uuid.UUID) (*entity.AlertRule, error) {
	rule, err := uow.AlertRuleRepository().FindOne(ctx,
		specification.ByID{ID: alertId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, errors.New("alert not found")
	}
	return rule, nil
}

func (s *alertService) Update(ctx context.Context, userId, alertId uuid.UUID, req *dto.UpdateAlertRequest) (*dto.AlertResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rule, err := s.findOwned(ctx, uow, userId, alertId)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		rule.Title = *req.Title
	}
	if req.Description != nil {
		rule.Description = *req.Description
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if req.Frequency != nil {
		rule.Frequency = entity.AlertFrequency(*req.Frequency)
	}
	if req.Channels != nil {
		rule.Channels = *req.Channels
	}
	if req.Keywords != nil {
		rule.Keywords = *req.Keywords
	}
	if req.Sources != nil {
		rule.Sources = *req.Sources
	}
	rule.UpdatedAt = time.Now()

	if err := uow.AlertRuleRepository().Update(ctx, rule); err != nil {
		return nil, err
	}
	return toAlertResponse(rule), nil
}

func (s *alertService) Delete(ctx context.Context, userId, alertId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.findOwned(ctx, uow, userId, alertId); err != nil {
		return err
	}
	return uow.AlertRuleRepository().Delete(ctx, alertId)
}

func (s *alertService) GetAll(ctx context.Context, userId uuid.UUID) ([]dto.AlertResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rules, err := uow.AlertRuleRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.AlertResponse, len(rules))
	for i, rule := range rules {
		responses[i] = *toAlertResponse(rule)
	}
	return responses, nil
}

func (s *alertService) Toggle(ctx context.Context, userId, alertId uuid.UUID) (*dto.AlertResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rule, err := s.findOwned(ctx, uow, userId, alertId)
	if err != nil {
		return nil, err
	}
	rule.IsActive = !rule.IsActive
	rule.UpdatedAt = time.Now()
	if err := uow.AlertRuleRepository().Update(ctx, rule); err != nil {
		return nil, err
	}
	return toAlertResponse(rule), nil
}

// ruleMatches checks a rule against an update: any keyword hit in title,
// summary or tags, or a source-list hit, fires the rule.
func ruleMatches(rule *entity.AlertRule, update *entity.RegulatoryUpdate) bool {
	for _, src := range rule.Sources {
		if strings.EqualFold(src, update.Source) {
			return true
		}
	}

	haystack := strings.ToLower(update.Title + " " + update.Summary + " " + strings.Join(update.Tags, " "))
	for _, kw := range rule.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func (s *alertService) EvaluateUpdate(ctx context.Context, update *entity.RegulatoryUpdate) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rules, err := uow.AlertRuleRepository().FindAll(ctx, specification.Filter("is_active", true))
	if err != nil {
		return err
	}

	for _, rule := range rules {
		if !ruleMatches(rule, update) {
			continue
		}

		if err := uow.AlertRuleRepository().MarkTriggered(ctx, rule.Id); err != nil {
			s.logger.Error("alert", "failed to mark rule triggered", map[string]interface{}{
				"rule_id": rule.Id.String(),
				"error":   err.Error(),
			})
			continue
		}

		if s.eventPublisher != nil {
			event := events.BaseEvent{
				Type: events.TypeAlertTriggered,
				Data: map[string]interface{}{
					"user_id":      rule.UserId.String(),
					"alert_title":  rule.Title,
					"update_title": update.Title,
					"entity_type":  "update",
					"entity_id":    update.Id.String(),
				},
				OccurredAt: time.Now(),
			}
			if err := s.eventPublisher.Publish(ctx, event); err != nil {
				fmt.Printf("[WARN] Failed to publish ALERT_TRIGGERED event: %v\n", err)
			}
		}

		// Email delivery for rules that asked for it. Daily/weekly digests
		// are collapsed into immediate sends for now.
		// TODO: batch daily/weekly frequencies into digest emails
		for _, ch := range rule.Channels {
			if ch != entity.AlertChannelEmail {
				continue
			}
			user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: rule.UserId})
			if err != nil || user == nil {
				break
			}
			go func(email, alertTitle, updateTitle, url string) {
				if err := s.emailService.SendAlertEmail(email, alertTitle, updateTitle, url); err != nil {
					s.logger.Error("alert", "failed to send alert email", map[string]interface{}{"error": err.Error()})
				}
			}(user.Email, rule.Title, update.Title, update.URL)
			break
		}
	}

	return nil
}
