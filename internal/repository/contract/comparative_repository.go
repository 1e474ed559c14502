package contract

import (
	"context"

	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/repository/specification"
)

type ComparativeRepository interface {
	CreateBulk(ctx context.Context, entries []*entity.ComparativeEntry) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ComparativeEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
