package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"banking-rag-be/internal/dto"
	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/repository/specification"
	"banking-rag-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// GenerateReportMessage is the queue payload handed to the worker.
type GenerateReportMessage struct {
	ReportId uuid.UUID `json:"report_id"`
	UserId   uuid.UUID `json:"user_id"`
}

type IReportService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateReportRequest) (*dto.ReportResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID, search string) ([]dto.ReportResponse, error)
	GetOne(ctx context.Context, userId, reportId uuid.UUID) (*dto.ReportResponse, error)
	Delete(ctx context.Context, userId, reportId uuid.UUID) error
}

type reportService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewReportService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IReportService {
	return &reportService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func toReportResponse(r *entity.Report) *dto.ReportResponse {
	return &dto.ReportResponse{
		Id:          r.Id,
		Title:       r.Title,
		Description: r.Description,
		Type:        string(r.Type),
		Status:      string(r.Status),
		Tags:        r.Tags,
		Author:      r.Author,
		Regulation:  r.Regulation,
		PeriodStart: r.PeriodStart,
		PeriodEnd:   r.PeriodEnd,
		Content:     r.Content,
		CompletedAt: r.CompletedAt,
		CreatedAt:   r.CreatedAt,
	}
}

func (s *reportService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		return nil, errors.New("user not found")
	}

	report := &entity.Report{
		Id:          uuid.New(),
		UserId:      userId,
		Title:       req.Title,
		Description: req.Description,
		Type:        entity.ReportType(req.Type),
		Status:      entity.ReportStatusGenerating,
		Tags:        req.Tags,
		Author:      user.FullName,
		Regulation:  req.Regulation,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		CreatedAt:   time.Now(),
	}

	if err := uow.ReportRepository().Create(ctx, report); err != nil {
		return nil, err
	}

	// Hand generation to the background worker.
	payload, err := json.Marshal(GenerateReportMessage{ReportId: report.Id, UserId: userId})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		// Generation never started; surface the report as failed instead
		// of leaving it generating forever.
		_ = uow.ReportRepository().UpdateStatus(ctx, report.Id, entity.ReportStatusFailed)
		return nil, fmt.Errorf("failed to enqueue report generation: %w", err)
	}

	return toReportResponse(report), nil
}

func (s *reportService) GetAll(ctx context.Context, userId uuid.UUID, search string) ([]dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if search != "" {
		specs = append(specs, specification.SearchReports{Query: search})
	}
	reports, err := uow.ReportRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.ReportResponse, len(reports))
	for i, r := range reports {
		responses[i] = *toReportResponse(r)
	}
	return responses, nil
}

func (s *reportService) GetOne(ctx context.Context, userId, reportId uuid.UUID) (*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	report, err := uow.ReportRepository().FindOne(ctx,
		specification.ByID{ID: reportId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, errors.New("report not found")
	}
	return toReportResponse(report), nil
}

func (s *reportService) Delete(ctx context.Context, userId, reportId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	report, err := uow.ReportRepository().FindOne(ctx,
		specification.ByID{ID: reportId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if report == nil {
		return errors.New("report not found")
	}
	return uow.ReportRepository().Delete(ctx, reportId)
}
