package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/types"
)

type StationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Station) ([]*types.Station, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Station, error)
	FindEligible(ctx context.Context, tx *gorm.DB) ([]*types.Station, error)
	Reserve(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	Release(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
}

type stationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStationRepo(db *gorm.DB, baseLog *logger.Logger) StationRepo {
	repoLog := baseLog.With("repo", "StationRepo")
	return &stationRepo{db: db, log: repoLog}
}

func (r *stationRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Station) ([]*types.Station, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Station{}, nil
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

func (r *stationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Station, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Station
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

// FindEligible returns active stations with spare capacity, in stable order.
// Zero-capacity stations never qualify.
func (r *stationRepo) FindEligible(ctx context.Context, tx *gorm.DB) ([]*types.Station, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Station
	if err := transaction.WithContext(ctx).
		Where("active = ? AND capacity > 0 AND current_load < capacity", true).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Reserve commits one slot with a single guarded UPDATE. Two generate calls
// racing for the last slot cannot both win: the condition is evaluated by the
// database, so current_load <= capacity holds under any interleaving.
func (r *stationRepo) Reserve(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Station{}).
		Where("id = ? AND active = ? AND current_load < capacity", id, true).
		UpdateColumn("current_load", gorm.Expr("current_load + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *stationRepo) Release(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Station{}).
		Where("id = ? AND current_load > 0", id).
		UpdateColumn("current_load", gorm.Expr("current_load - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
