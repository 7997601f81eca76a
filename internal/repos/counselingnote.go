package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/types"
)

type CounselingNoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.CounselingNote) (*types.CounselingNote, error)
	GetByInmateID(ctx context.Context, tx *gorm.DB, inmateID string) ([]*types.CounselingNote, error)
}

type counselingNoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCounselingNoteRepo(db *gorm.DB, baseLog *logger.Logger) CounselingNoteRepo {
	repoLog := baseLog.With("repo", "CounselingNoteRepo")
	return &counselingNoteRepo{db: db, log: repoLog}
}

func (r *counselingNoteRepo) Create(ctx context.Context, tx *gorm.DB, row *types.CounselingNote) (*types.CounselingNote, error) {
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

func (r *counselingNoteRepo) GetByInmateID(ctx context.Context, tx *gorm.DB, inmateID string) ([]*types.CounselingNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CounselingNote
	if err := transaction.WithContext(ctx).
		Where("inmate_id = ?", inmateID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
