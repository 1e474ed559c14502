package service

import (
	"context"
	"sort"
	"strings"

	"banking-rag-be/internal/dto"
	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/repository/specification"
	"banking-rag-be/internal/repository/unitofwork"
)

type IComparativeService interface {
	GetMatrix(ctx context.Context, query *dto.ComparativeQuery) (*dto.ComparativeMatrixResponse, error)
}

type comparativeService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewComparativeService(uowFactory unitofwork.RepositoryFactory) IComparativeService {
	return &comparativeService{uowFactory: uowFactory}
}

func (s *comparativeService) GetMatrix(ctx context.Context, query *dto.ComparativeQuery) (*dto.ComparativeMatrixResponse, error) {
	topic := query.Topic
	if topic == "" {
		topic = entity.ComparativeTopics[0]
	}

	jurisdictions := parseJurisdictions(query.Jurisdictions)

	specs := []specification.Specification{
		specification.ByTopic{Topic: topic},
		specification.OrderBy{Field: "requirement", Desc: false},
	}
	if len(jurisdictions) > 0 {
		specs = append(specs, specification.ByJurisdictions{Jurisdictions: jurisdictions})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.ComparativeRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]dto.ComparativeEntryDTO)
	seen := make(map[string]bool)
	for _, e := range entries {
		grouped[e.Jurisdiction] = append(grouped[e.Jurisdiction], dto.ComparativeEntryDTO{
			Id:           e.Id,
			Jurisdiction: e.Jurisdiction,
			Requirement:  e.Requirement,
			Status:       string(e.Status),
			Value:        e.Value,
			Notes:        e.Notes,
		})
		seen[e.Jurisdiction] = true
	}

	// Jurisdiction order follows the request; unrequested ones that still
	// matched come after, sorted for stable output.
	ordered := make([]string, 0, len(seen))
	for _, j := range jurisdictions {
		if seen[j] {
			ordered = append(ordered, j)
			delete(seen, j)
		}
	}
	rest := make([]string, 0, len(seen))
	for j := range seen {
		rest = append(rest, j)
	}
	sort.Strings(rest)
	ordered = append(ordered, rest...)

	return &dto.ComparativeMatrixResponse{
		Topic:         topic,
		Jurisdictions: ordered,
		Entries:       grouped,
	}, nil
}

func parseJurisdictions(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		code := strings.ToUpper(strings.TrimSpace(p))
		if code != "" {
			out = append(out, code)
		}
	}
	return out
}
