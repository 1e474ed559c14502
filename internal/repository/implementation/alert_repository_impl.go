package implementation

import (
	"context"
	"errors"
	"time"

	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/repository/contract"
	"banking-rag-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertRuleRepositoryImpl struct {
	db *gorm.DB
}

func NewAlertRuleRepository(db *gorm.DB) contract.AlertRuleRepository {
	return &AlertRuleRepositoryImpl{
		db: db,
	}
}

func (r *AlertRuleRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AlertRuleRepositoryImpl) Create(ctx context.Context, rule *entity.AlertRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *AlertRuleRepositoryImpl) Update(ctx context.Context, rule *entity.AlertRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *AlertRuleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.AlertRule{}, id).Error
}

func (r *AlertRuleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AlertRule, error) {
	var rule entity.AlertRule
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *AlertRuleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AlertRule, error) {
	var rules []*entity.AlertRule
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *AlertRuleRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&entity.AlertRule{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AlertRuleRepositoryImpl) MarkTriggered(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entity.AlertRule{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"triggered_count":   gorm.Expr("triggered_count + 1"),
			"last_triggered_at": now,
		}).Error
}
