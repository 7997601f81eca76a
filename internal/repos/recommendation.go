package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/types"
)

type RecommendationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Recommendation) (*types.Recommendation, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Recommendation, error)
	GetByInmateID(ctx context.Context, tx *gorm.DB, inmateID string) ([]*types.Recommendation, error)
	GetLatestOpenByInmateID(ctx context.Context, tx *gorm.DB, inmateID string) (*types.Recommendation, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status types.RecommendationStatus) error
}

type recommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	repoLog := baseLog.With("repo", "RecommendationRepo")
	return &recommendationRepo{db: db, log: repoLog}
}

func (r *recommendationRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Recommendation) (*types.Recommendation, error) {
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

func (r *recommendationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Recommendation
	err := transaction.WithContext(ctx).
		Preload("Program").
		Preload("Station").
		Preload("Officer").
		Where("id = ?", id).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *recommendationRepo) GetByInmateID(ctx context.Context, tx *gorm.DB, inmateID string) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Recommendation
	if err := transaction.WithContext(ctx).
		Preload("Program").
		Preload("Station").
		Preload("Officer").
		Where("inmate_id = ?", inmateID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetLatestOpenByInmateID returns the newest non-terminal recommendation for
// the inmate, or (nil, nil) when every recommendation is COMPLETED/CANCELLED.
func (r *recommendationRepo) GetLatestOpenByInmateID(ctx context.Context, tx *gorm.DB, inmateID string) (*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Recommendation
	err := transaction.WithContext(ctx).
		Preload("Program").
		Preload("Station").
		Preload("Officer").
		Where("inmate_id = ? AND status NOT IN ?", inmateID, []types.RecommendationStatus{
			types.RecommendationCompleted,
			types.RecommendationCancelled,
		}).
		Order("created_at DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *recommendationRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status types.RecommendationStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Recommendation{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}
