package service

import (
	"context"

	"banking-rag-be/internal/dto"
	"banking-rag-be/internal/repository/unitofwork"
	"banking-rag-be/pkg/dashboard"
	pktNats "banking-rag-be/pkg/nats"

	"github.com/google/uuid"
)

type IDashboardService interface {
	GetOverview(ctx context.Context, userId uuid.UUID) (*dto.DashboardResponse, error)

	// Start attaches the presence tracker to the event bus.
	Start() error
}

type dashboardService struct {
	uowFactory unitofwork.RepositoryFactory
	aggregator *dashboard.Aggregator
	presence   *dashboard.PresenceTracker
	subscriber *pktNats.Subscriber
}

func NewDashboardService(
	uowFactory unitofwork.RepositoryFactory,
	aggregator *dashboard.Aggregator,
	presence *dashboard.PresenceTracker,
	subscriber *pktNats.Subscriber,
) IDashboardService {
	return &dashboardService{
		uowFactory: uowFactory,
		aggregator: aggregator,
		presence:   presence,
		subscriber: subscriber,
	}
}

func (s *dashboardService) Start() error {
	if s.subscriber == nil {
		return nil
	}
	return s.subscriber.Subscribe("events.>", "dashboard-presence", s.presence.HandleEvent)
}

func (s *dashboardService) GetOverview(ctx context.Context, userId uuid.UUID) (*dto.DashboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	overview, err := s.aggregator.GetOverview(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	s.presence.Touch(userId.String())
	overview.ActiveSessions = s.presence.ActiveCount()

	return overview, nil
}
