package contract

import (
	"context"

	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RegulatoryUpdateRepository interface {
	Create(ctx context.Context, update *entity.RegulatoryUpdate) error
	CreateBulk(ctx context.Context, updates []*entity.RegulatoryUpdate) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RegulatoryUpdate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RegulatoryUpdate, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
