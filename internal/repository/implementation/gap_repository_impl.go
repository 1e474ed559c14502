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

type GapAnalysisRepositoryImpl struct {
	db *gorm.DB
}

func NewGapAnalysisRepository(db *gorm.DB) contract.GapAnalysisRepository {
	return &GapAnalysisRepositoryImpl{
		db: db,
	}
}

func (r *GapAnalysisRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GapAnalysisRepositoryImpl) Create(ctx context.Context, analysis *entity.GapAnalysis) error {
	// GORM persists the findings through the association in one pass.
	return r.db.WithContext(ctx).Create(analysis).Error
}

func (r *GapAnalysisRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Findings").Delete(&entity.GapAnalysis{Id: id}).Error
}

func (r *GapAnalysisRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GapAnalysis, error) {
	var analysis entity.GapAnalysis
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Findings"), specs...)
	if err := query.First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &analysis, nil
}

func (r *GapAnalysisRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GapAnalysis, error) {
	var analyses []*entity.GapAnalysis
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Findings"), specs...)
	if err := query.Find(&analyses).Error; err != nil {
		return nil, err
	}
	return analyses, nil
}

func (r *GapAnalysisRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&entity.GapAnalysis{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
