package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/types"
)

type ProgramRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Program) ([]*types.Program, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Program, error)
	FindActiveByType(ctx context.Context, tx *gorm.DB, programType types.ProgramType) ([]*types.Program, error)
	FindAllActive(ctx context.Context, tx *gorm.DB) ([]*types.Program, error)
}

type programRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgramRepo(db *gorm.DB, baseLog *logger.Logger) ProgramRepo {
	repoLog := baseLog.With("repo", "ProgramRepo")
	return &programRepo{db: db, log: repoLog}
}

func (r *programRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Program) ([]*types.Program, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Program{}, nil
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

func (r *programRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Program, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Program
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

func (r *programRepo) FindActiveByType(ctx context.Context, tx *gorm.DB, programType types.ProgramType) ([]*types.Program, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Program
	if err := transaction.WithContext(ctx).
		Where("type = ? AND active = ?", programType, true).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *programRepo) FindAllActive(ctx context.Context, tx *gorm.DB) ([]*types.Program, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Program
	if err := transaction.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
