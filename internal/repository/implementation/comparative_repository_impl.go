package implementation

import (
	"context"

	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/repository/contract"
	"banking-rag-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ComparativeRepositoryImpl struct {
	db *gorm.DB
}

func NewComparativeRepository(db *gorm.DB) contract.ComparativeRepository {
	return &ComparativeRepositoryImpl{
		db: db,
	}
}

func (r *ComparativeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ComparativeRepositoryImpl) CreateBulk(ctx context.Context, entries []*entity.ComparativeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *ComparativeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ComparativeEntry, error) {
	var entries []*entity.ComparativeEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *ComparativeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&entity.ComparativeEntry{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
