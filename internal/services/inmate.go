package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/repos"
	"github.com/pms/corrections-backend/internal/types"
)

type InmateService interface {
	Create(ctx context.Context, inmate *types.Inmate) (*types.Inmate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Inmate, error)
	GetByInmateID(ctx context.Context, inmateID string) (*types.Inmate, error)
	Update(ctx context.Context, inmate *types.Inmate) (*types.Inmate, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter repos.InmateFilter) ([]*types.Inmate, error)
}

type inmateService struct {
	db         *gorm.DB
	log        *logger.Logger
	inmateRepo repos.InmateRepo
}

func NewInmateService(db *gorm.DB, log *logger.Logger, inmateRepo repos.InmateRepo) InmateService {
	serviceLog := log.With("service", "InmateService")
	return &inmateService{db: db, log: serviceLog, inmateRepo: inmateRepo}
}

func (s *inmateService) Create(ctx context.Context, inmate *types.Inmate) (*types.Inmate, error) {
	if inmate == nil || inmate.InmateID == "" {
		return nil, fmt.Errorf("inmateId is required")
	}
	if inmate.Status == "" {
		inmate.Status = types.InmateActive
	}
	inmate.ID = uuid.New()
	return s.inmateRepo.Create(ctx, nil, inmate)
}

func (s *inmateService) GetByID(ctx context.Context, id uuid.UUID) (*types.Inmate, error) {
	inmate, err := s.inmateRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if inmate == nil {
		return nil, fmt.Errorf("%w: %s", ErrInmateNotFound, id)
	}
	return inmate, nil
}

func (s *inmateService) GetByInmateID(ctx context.Context, inmateID string) (*types.Inmate, error) {
	inmate, err := s.inmateRepo.GetByInmateID(ctx, nil, inmateID)
	if err != nil {
		return nil, err
	}
	if inmate == nil {
		return nil, fmt.Errorf("%w: %s", ErrInmateNotFound, inmateID)
	}
	return inmate, nil
}

func (s *inmateService) Update(ctx context.Context, inmate *types.Inmate) (*types.Inmate, error) {
	if inmate == nil || inmate.ID == uuid.Nil {
		return nil, fmt.Errorf("inmate id is required")
	}
	existing, err := s.inmateRepo.GetByID(ctx, nil, inmate.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: %s", ErrInmateNotFound, inmate.ID)
	}
	if err := s.inmateRepo.Update(ctx, nil, inmate); err != nil {
		return nil, err
	}
	return inmate, nil
}

func (s *inmateService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.inmateRepo.GetByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: %s", ErrInmateNotFound, id)
	}
	return s.inmateRepo.SoftDeleteByID(ctx, nil, id)
}

func (s *inmateService) Search(ctx context.Context, filter repos.InmateFilter) ([]*types.Inmate, error) {
	return s.inmateRepo.Search(ctx, nil, filter)
}
