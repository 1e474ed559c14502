package implementation

import (
	"context"
	"errors"

	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepositoryImpl struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) contract.PreferenceRepository {
	return &PreferenceRepositoryImpl{
		db: db,
	}
}

func (r *PreferenceRepositoryImpl) Upsert(ctx context.Context, pref *entity.UserPreference) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"theme", "language", "sidebar_open", "updated_at"}),
		}).
		Create(pref).Error
}

func (r *PreferenceRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UserPreference, error) {
	var pref entity.UserPreference
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pref, nil
}
