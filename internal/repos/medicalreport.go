package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/types"
)

type MedicalReportRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.MedicalReport) (*types.MedicalReport, error)
	GetByInmateID(ctx context.Context, tx *gorm.DB, inmateID string) ([]*types.MedicalReport, error)
}

type medicalReportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMedicalReportRepo(db *gorm.DB, baseLog *logger.Logger) MedicalReportRepo {
	repoLog := baseLog.With("repo", "MedicalReportRepo")
	return &medicalReportRepo{db: db, log: repoLog}
}

func (r *medicalReportRepo) Create(ctx context.Context, tx *gorm.DB, row *types.MedicalReport) (*types.MedicalReport, error) {
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

func (r *medicalReportRepo) GetByInmateID(ctx context.Context, tx *gorm.DB, inmateID string) ([]*types.MedicalReport, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MedicalReport
	if err := transaction.WithContext(ctx).
		Where("inmate_id = ?", inmateID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
