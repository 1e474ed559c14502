package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"banking-rag-be/internal/dto"
	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/pkg/logger"
	"banking-rag-be/internal/repository/specification"
	"banking-rag-be/internal/repository/unitofwork"
	"banking-rag-be/pkg/events"
	pktNats "banking-rag-be/pkg/nats"

	"github.com/google/uuid"
)

type IGapService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateGapAnalysisRequest) (*dto.GapAnalysisResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]dto.GapAnalysisResponse, error)
	GetOne(ctx context.Context, userId, analysisId uuid.UUID) (*dto.GapAnalysisResponse, error)
	Delete(ctx context.Context, userId, analysisId uuid.UUID) error
}

type gapService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewGapService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IGapService {
	return &gapService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// requirementProbe drives the synthesized verdicts. Each probe checks the
// policy text for coverage keywords and downgrades the verdict when they
// are missing.
type requirementProbe struct {
	requirement    string
	clause         string
	keywords       []string
	severity       entity.GapSeverity
	recommendation string
}

var gapProbes = []requirementProbe{
	{
		requirement:    "Gobierno interno y responsabilidad del órgano de administración",
		clause:         "Art. 88 CRD IV",
		keywords:       []string{"gobierno", "consejo", "administración", "governance", "board"},
		severity:       entity.GapSeverityHigh,
		recommendation: "Documentar la asignación de responsabilidades del consejo sobre el marco de control.",
	},
	{
		requirement:    "Gestión y notificación de incidentes",
		clause:         "Art. 17-19 DORA",
		keywords:       []string{"incidente", "incident", "notificación", "notification", "reporte"},
		severity:       entity.GapSeverityHigh,
		recommendation: "Definir el procedimiento de clasificación y notificación de incidentes con plazos regulatorios.",
	},
	{
		requirement:    "Evaluación periódica de riesgos",
		clause:         "Pilar 2",
		keywords:       []string{"riesgo", "risk", "evaluación", "assessment"},
		severity:       entity.GapSeverityMedium,
		recommendation: "Incorporar un ciclo anual de evaluación de riesgos con evidencia documentada.",
	},
	{
		requirement:    "Registro y conservación de documentación",
		clause:         "Art. 16 MiFID II",
		keywords:       []string{"registro", "conservación", "record", "retention", "archivo"},
		severity:       entity.GapSeverityMedium,
		recommendation: "Establecer plazos mínimos de conservación y un repositorio auditable.",
	},
	{
		requirement:    "Formación y concienciación del personal",
		clause:         "EBA GL/2021/05",
		keywords:       []string{"formación", "training", "concienciación", "awareness"},
		severity:       entity.GapSeverityLow,
		recommendation: "Planificar formación anual obligatoria con seguimiento de asistencia.",
	},
	{
		requirement:    "Supervisión de proveedores externos críticos",
		clause:         "Art. 28 DORA",
		keywords:       []string{"proveedor", "tercero", "outsourcing", "vendor", "externaliza"},
		severity:       entity.GapSeverityHigh,
		recommendation: "Mantener un registro de acuerdos con terceros y cláusulas de auditoría y salida.",
	},
}

func toGapResponse(analysis *entity.GapAnalysis) *dto.GapAnalysisResponse {
	findings := make([]dto.GapFindingDTO, 0, len(analysis.Findings))
	for _, f := range analysis.Findings {
		findings = append(findings, dto.GapFindingDTO{
			Id:              f.Id,
			Requirement:     f.Requirement,
			Clause:          f.Clause,
			PolicyReference: f.PolicyReference,
			Status:          string(f.Status),
			Severity:        string(f.Severity),
			Description:     f.Description,
			Recommendation:  f.Recommendation,
			Owner:           f.Owner,
			TargetDate:      f.TargetDate,
			Evidence:        f.Evidence,
		})
	}

	summary := entity.Summarize(analysis.Findings)

	return &dto.GapAnalysisResponse{
		Id:        analysis.Id,
		Normative: analysis.Normative,
		Policy:    analysis.Policy,
		Status:    analysis.Status,
		Summary: dto.GapSummaryDTO{
			TotalRequirements:  summary.TotalRequirements,
			Compliant:          summary.Compliant,
			PartiallyCompliant: summary.PartiallyCompliant,
			NonCompliant:       summary.NonCompliant,
			OverallScore:       summary.OverallScore,
		},
		Findings:    findings,
		CompletedAt: analysis.CompletedAt,
		CreatedAt:   analysis.CreatedAt,
	}
}

func (s *gapService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateGapAnalysisRequest) (*dto.GapAnalysisResponse, error) {
	now := time.Now()
	analysis := &entity.GapAnalysis{
		Id:          uuid.New(),
		UserId:      userId,
		Normative:   req.Normative,
		Policy:      req.Policy,
		Status:      "completed",
		CompletedAt: &now,
		Findings:    synthesizeFindings(req.Normative, req.Policy),
	}
	for i := range analysis.Findings {
		analysis.Findings[i].Id = uuid.New()
		analysis.Findings[i].AnalysisId = analysis.Id
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.GapAnalysisRepository().Create(ctx, analysis); err != nil {
		s.logger.Error("gap", "Failed to create analysis", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	s.publishCompleted(ctx, analysis)

	return toGapResponse(analysis), nil
}

// synthesizeFindings scores the policy text against the probe catalogue.
// A keyword hit in both texts is compliant, a hit only in the normative
// side is partial, no hit at all is non compliant.
func synthesizeFindings(normative, policy string) []entity.GapFinding {
	normLower := strings.ToLower(normative)
	policyLower := strings.ToLower(policy)

	findings := make([]entity.GapFinding, 0, len(gapProbes))
	for _, probe := range gapProbes {
		inNorm := containsAny(normLower, probe.keywords)
		inPolicy := containsAny(policyLower, probe.keywords)

		var status entity.GapStatus
		var description string
		switch {
		case inPolicy:
			status = entity.GapStatusCompliant
			description = "La política interna cubre este requisito de forma explícita."
		case inNorm:
			status = entity.GapStatusPartial
			description = "El requisito figura en la normativa pero la política interna no lo desarrolla."
		default:
			status = entity.GapStatusNonCompliant
			description = "No se ha identificado cobertura en la política interna."
		}

		finding := entity.GapFinding{
			Requirement: probe.requirement,
			Clause:      probe.clause,
			Status:      status,
			Severity:    probe.severity,
			Description: description,
		}
		if status != entity.GapStatusCompliant {
			finding.Recommendation = probe.recommendation
		}
		if inPolicy {
			finding.PolicyReference = "Política interna, sección aplicable"
		}
		findings = append(findings, finding)
	}
	return findings
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func (s *gapService) publishCompleted(ctx context.Context, analysis *entity.GapAnalysis) {
	if s.eventPublisher == nil {
		return
	}
	summary := entity.Summarize(analysis.Findings)
	event := events.BaseEvent{
		Type: events.TypeGapCompleted,
		Data: map[string]interface{}{
			"user_id":       analysis.UserId.String(),
			"overall_score": summary.OverallScore,
			"entity_type":   "gap_analysis",
			"entity_id":     analysis.Id.String(),
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("gap", "Failed to publish completion event", map[string]interface{}{"error": err.Error()})
	}
}

func (s *gapService) GetAll(ctx context.Context, userId uuid.UUID) ([]dto.GapAnalysisResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	analyses, err := uow.GapAnalysisRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GapAnalysisResponse, 0, len(analyses))
	for _, analysis := range analyses {
		responses = append(responses, *toGapResponse(analysis))
	}
	return responses, nil
}

func (s *gapService) GetOne(ctx context.Context, userId, analysisId uuid.UUID) (*dto.GapAnalysisResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	analysis, err := uow.GapAnalysisRepository().FindOne(ctx,
		specification.ByID{ID: analysisId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if analysis == nil {
		return nil, errors.New("analysis not found")
	}
	return toGapResponse(analysis), nil
}

func (s *gapService) Delete(ctx context.Context, userId, analysisId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	analysis, err := uow.GapAnalysisRepository().FindOne(ctx,
		specification.ByID{ID: analysisId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if analysis == nil {
		return errors.New("analysis not found")
	}
	return uow.GapAnalysisRepository().Delete(ctx, analysis.Id)
}
