package contract

import (
	"context"

	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AlertRuleRepository interface {
	Create(ctx context.Context, rule *entity.AlertRule) error
	Update(ctx context.Context, rule *entity.AlertRule) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AlertRule, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AlertRule, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// MarkTriggered bumps the trigger counter and timestamp atomically.
	MarkTriggered(ctx context.Context, id uuid.UUID) error
}
