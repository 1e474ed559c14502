package contract

import (
	"context"

	"banking-rag-be/internal/entity"

	"github.com/google/uuid"
)

type PreferenceRepository interface {
	// Upsert writes the full preference row for the user, creating it on
	// first save.
	Upsert(ctx context.Context, pref *entity.UserPreference) error
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UserPreference, error)
}
