package implementation

import (
	"context"
	"errors"

	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/repository/contract"
	"banking-rag-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegulatoryUpdateRepositoryImpl struct {
	db *gorm.DB
}

func NewRegulatoryUpdateRepository(db *gorm.DB) contract.RegulatoryUpdateRepository {
	return &RegulatoryUpdateRepositoryImpl{
		db: db,
	}
}

func (r *RegulatoryUpdateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RegulatoryUpdateRepositoryImpl) Create(ctx context.Context, update *entity.RegulatoryUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}

func (r *RegulatoryUpdateRepositoryImpl) CreateBulk(ctx context.Context, updates []*entity.RegulatoryUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&updates).Error
}

func (r *RegulatoryUpdateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RegulatoryUpdate, error) {
	var update entity.RegulatoryUpdate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&update).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &update, nil
}

func (r *RegulatoryUpdateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RegulatoryUpdate, error) {
	var updates []*entity.RegulatoryUpdate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&updates).Error; err != nil {
		return nil, err
	}
	return updates, nil
}

func (r *RegulatoryUpdateRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&entity.RegulatoryUpdate{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RegulatoryUpdateRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.RegulatoryUpdate{}, id).Error
}
