package contract

import (
	"context"

	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GapAnalysisRepository interface {
	// Create persists the analysis together with its findings.
	Create(ctx context.Context, analysis *entity.GapAnalysis) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GapAnalysis, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GapAnalysis, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
