package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/types"
)

type OfficerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Officer) ([]*types.Officer, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Officer, error)
	FindEligible(ctx context.Context, tx *gorm.DB) ([]*types.Officer, error)
	Reserve(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	Release(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
}

type officerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOfficerRepo(db *gorm.DB, baseLog *logger.Logger) OfficerRepo {
	repoLog := baseLog.With("repo", "OfficerRepo")
	return &officerRepo{db: db, log: repoLog}
}

func (r *officerRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Officer) ([]*types.Officer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Officer{}, nil
	}

	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *officerRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Officer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Officer
	err := transaction.WithContext(ctx).
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

func (r *officerRepo) FindEligible(ctx context.Context, tx *gorm.DB) ([]*types.Officer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Officer
	if err := transaction.WithContext(ctx).
		Where("active = ? AND max_capacity > 0 AND current_load < max_capacity", true).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Reserve is the officer counterpart of StationRepo.Reserve: one guarded
// UPDATE, success decided by RowsAffected.
func (r *officerRepo) Reserve(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Officer{}).
		Where("id = ? AND active = ? AND current_load < max_capacity", id, true).
		UpdateColumn("current_load", gorm.Expr("current_load + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *officerRepo) Release(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Officer{}).
		Where("id = ? AND current_load > 0", id).
		UpdateColumn("current_load", gorm.Expr("current_load - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
