package repos

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/types"
)

type InmateFilter struct {
	Status        string
	SecurityLevel string
	Zone          string
	Name          string
}

type InmateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Inmate) (*types.Inmate, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Inmate, error)
	GetByInmateID(ctx context.Context, tx *gorm.DB, inmateID string) (*types.Inmate, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.Inmate) error
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Search(ctx context.Context, tx *gorm.DB, filter InmateFilter) ([]*types.Inmate, error)
}

type inmateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInmateRepo(db *gorm.DB, baseLog *logger.Logger) InmateRepo {
	repoLog := baseLog.With("repo", "InmateRepo")
	return &inmateRepo{db: db, log: repoLog}
}

func (r *inmateRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Inmate) (*types.Inmate, error) {
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

func (r *inmateRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Inmate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Inmate
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

func (r *inmateRepo) GetByInmateID(ctx context.Context, tx *gorm.DB, inmateID string) (*types.Inmate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Inmate
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

func (r *inmateRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Inmate) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	return transaction.WithContext(ctx).Save(row).Error
}

func (r *inmateRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Inmate{}).Error
}

func (r *inmateRepo) Search(ctx context.Context, tx *gorm.DB, filter InmateFilter) ([]*types.Inmate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Model(&types.Inmate{})
	if filter.Status != "" {
		query = query.Where("status = ?", strings.ToUpper(filter.Status))
	}
	if filter.SecurityLevel != "" {
		query = query.Where("security_level = ?", filter.SecurityLevel)
	}
	if filter.Zone != "" {
		query = query.Where("zone = ?", filter.Zone)
	}
	if filter.Name != "" {
		pattern := "%" + strings.ToLower(filter.Name) + "%"
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", pattern, pattern)
	}

	var results []*types.Inmate
	if err := query.Order("last_name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
