package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/types"
)

type RehabProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.RehabProfile) (*types.RehabProfile, error)
	GetByInmateID(ctx context.Context, tx *gorm.DB, inmateID string) (*types.RehabProfile, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.RehabProfile) error
	TouchLastUpdated(ctx context.Context, tx *gorm.DB, inmateID string) error
}

type rehabProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRehabProfileRepo(db *gorm.DB, baseLog *logger.Logger) RehabProfileRepo {
	repoLog := baseLog.With("repo", "RehabProfileRepo")
	return &rehabProfileRepo{db: db, log: repoLog}
}

func (r *rehabProfileRepo) Create(ctx context.Context, tx *gorm.DB, row *types.RehabProfile) (*types.RehabProfile, error) {
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

// GetByInmateID returns (nil, nil) when no profile exists; the caller decides
// whether absence means lazy creation or an error.
func (r *rehabProfileRepo) GetByInmateID(ctx context.Context, tx *gorm.DB, inmateID string) (*types.RehabProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.RehabProfile
	err := transaction.WithContext(ctx).
		Where("inmate_id = ?", inmateID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *rehabProfileRepo) Update(ctx context.Context, tx *gorm.DB, row *types.RehabProfile) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	row.LastUpdated = time.Now()
	return transaction.WithContext(ctx).Save(row).Error
}

func (r *rehabProfileRepo) TouchLastUpdated(ctx context.Context, tx *gorm.DB, inmateID string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.RehabProfile{}).
		Where("inmate_id = ?", inmateID).
		UpdateColumn("last_updated", time.Now()).Error
}
