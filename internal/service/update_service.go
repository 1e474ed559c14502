package service

import (
	"context"
	"fmt"
	"time"

	"banking-rag-be/internal/dto"
	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/repository/specification"
	"banking-rag-be/internal/repository/unitofwork"
	"banking-rag-be/pkg/events"
	pktNats "banking-rag-be/pkg/nats"

	"github.com/google/uuid"
)

type IUpdateService interface {
	GetFeed(ctx context.Context, query *dto.UpdateFeedQuery) (*dto.UpdateFeedResponse, error)
	Ingest(ctx context.Context, req *dto.IngestUpdateRequest) (*dto.RegulatoryUpdateResponse, error)
}

type updateService struct {
	uowFactory     unitofwork.RepositoryFactory
	alertService   IAlertService
	eventPublisher *pktNats.Publisher
}

func NewUpdateService(uowFactory unitofwork.RepositoryFactory, alertService IAlertService, eventPublisher *pktNats.Publisher) IUpdateService {
	return &updateService{
		uowFactory:     uowFactory,
		alertService:   alertService,
		eventPublisher: eventPublisher,
	}
}

func toUpdateResponse(u *entity.RegulatoryUpdate) dto.RegulatoryUpdateResponse {
	return dto.RegulatoryUpdateResponse{
		Id:          u.Id,
		Source:      u.Source,
		Title:       u.Title,
		Summary:     u.Summary,
		URL:         u.URL,
		PublishedAt: u.PublishedAt,
		Tags:        u.Tags,
		Type:        string(u.Type),
		Priority:    string(u.Priority),
		Regulation:  u.Regulation,
	}
}

func (s *updateService) GetFeed(ctx context.Context, query *dto.UpdateFeedQuery) (*dto.UpdateFeedResponse, error) {
	specs := []specification.Specification{}
	if query.Source != "" {
		specs = append(specs, specification.BySource{Source: query.Source})
	}
	if query.Tag != "" {
		specs = append(specs, specification.HasTag{Tag: query.Tag})
	}
	if query.Type != "" {
		specs = append(specs, specification.ByUpdateType{Type: query.Type})
	}
	if query.Priority != "" {
		specs = append(specs, specification.ByPriority{Priority: query.Priority})
	}
	if query.Search != "" {
		specs = append(specs, specification.SearchUpdates{Query: query.Search})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.RegulatoryUpdateRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	specs = append(specs,
		specification.OrderBy{Field: "published_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: query.Offset},
	)

	items, err := uow.RegulatoryUpdateRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	resp := &dto.UpdateFeedResponse{
		Items: make([]dto.RegulatoryUpdateResponse, len(items)),
		Total: total,
	}
	for i, u := range items {
		resp.Items[i] = toUpdateResponse(u)
	}
	return resp, nil
}

func (s *updateService) Ingest(ctx context.Context, req *dto.IngestUpdateRequest) (*dto.RegulatoryUpdateResponse, error) {
	priority := entity.UpdatePriority(req.Priority)
	if priority == "" {
		priority = entity.UpdatePriorityMedium
	}
	publishedAt := req.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now()
	}

	update := &entity.RegulatoryUpdate{
		Id:          uuid.New(),
		Source:      req.Source,
		Title:       req.Title,
		Summary:     req.Summary,
		URL:         req.URL,
		PublishedAt: publishedAt,
		Tags:        req.Tags,
		Type:        entity.UpdateType(req.Type),
		Priority:    priority,
		Regulation:  req.Regulation,
		CreatedAt:   time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.RegulatoryUpdateRepository().Create(ctx, update); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeUpdatePublished,
			Data: map[string]interface{}{
				"title":       update.Title,
				"source":      update.Source,
				"priority":    string(update.Priority),
				"entity_type": "update",
				"entity_id":   update.Id.String(),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish UPDATE_PUBLISHED event: %v\n", err)
		}
	}

	// Fire matching alert rules synchronously; email sends run detached.
	if s.alertService != nil {
		if err := s.alertService.EvaluateUpdate(ctx, update); err != nil {
			fmt.Printf("[WARN] Failed to evaluate alerts for update %s: %v\n", update.Id, err)
		}
	}

	resp := toUpdateResponse(update)
	return &resp, nil
}
