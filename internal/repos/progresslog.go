package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/types"
)

// ProgressLogRepo deliberately exposes no update or delete methods; progress
// entries are append-only.
type ProgressLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.ProgressLog) (*types.ProgressLog, error)
	GetByRecommendationID(ctx context.Context, tx *gorm.DB, recommendationID uuid.UUID) ([]*types.ProgressLog, error)
	GetByInmateID(ctx context.Context, tx *gorm.DB, inmateID string) ([]*types.ProgressLog, error)
}

type progressLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressLogRepo(db *gorm.DB, baseLog *logger.Logger) ProgressLogRepo {
	repoLog := baseLog.With("repo", "ProgressLogRepo")
	return &progressLogRepo{db: db, log: repoLog}
}

func (r *progressLogRepo) Create(ctx context.Context, tx *gorm.DB, row *types.ProgressLog) (*types.ProgressLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}

	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *progressLogRepo) GetByRecommendationID(ctx context.Context, tx *gorm.DB, recommendationID uuid.UUID) ([]*types.ProgressLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ProgressLog
	if err := transaction.WithContext(ctx).
		Where("recommendation_id = ?", recommendationID).
		Order("log_date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *progressLogRepo) GetByInmateID(ctx context.Context, tx *gorm.DB, inmateID string) ([]*types.ProgressLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ProgressLog
	if err := transaction.WithContext(ctx).
		Where("inmate_id = ?", inmateID).
		Order("log_date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
