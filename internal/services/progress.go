package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/corrections-backend/internal/events"
	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/repos"
	"github.com/pms/corrections-backend/internal/types"
)

type LogProgressRequest struct {
	RecommendationID   uuid.UUID            `json:"recommendationId" binding:"required"`
	Status             types.ProgressStatus `json:"status" binding:"required"`
	ProgressPercentage *int                 `json:"progressPercentage,omitempty"`
	Notes              string               `json:"notes,omitempty"`
	RecordedBy         string               `json:"recordedBy,omitempty"`
}

// ProgressService appends progress entries and is the only writer allowed to
// move a recommendation to its terminal status.
type ProgressService interface {
	LogProgress(ctx context.Context, req LogProgressRequest) (*types.ProgressLog, error)
	GetProgress(ctx context.Context, recommendationID uuid.UUID) ([]*types.ProgressLog, error)
}

type progressService struct {
	db        *gorm.DB
	log       *logger.Logger
	recRepo   repos.RecommendationRepo
	logRepo   repos.ProgressLogRepo
	publisher events.Publisher
}

func NewProgressService(db *gorm.DB, log *logger.Logger, recRepo repos.RecommendationRepo, logRepo repos.ProgressLogRepo, publisher events.Publisher) ProgressService {
	serviceLog := log.With("service", "ProgressService")
	return &progressService{
		db:        db,
		log:       serviceLog,
		recRepo:   recRepo,
		logRepo:   logRepo,
		publisher: publisher,
	}
}

// LogProgress appends one entry. A percentage of 100 or more completes the
// owning recommendation; no other value changes its status. Entries against
// an already completed recommendation are accepted as informational.
func (s *progressService) LogProgress(ctx context.Context, req LogProgressRequest) (*types.ProgressLog, error) {
	recommendation, err := s.recRepo.GetByID(ctx, nil, req.RecommendationID)
	if err != nil {
		return nil, fmt.Errorf("load recommendation: %w", err)
	}
	if recommendation == nil {
		return nil, fmt.Errorf("%w: %s", ErrRecommendationNotFound, req.RecommendationID)
	}

	entry := &types.ProgressLog{
		ID:                 uuid.New(),
		InmateID:           recommendation.InmateID,
		RecommendationID:   recommendation.ID,
		Status:             req.Status,
		ProgressPercentage: req.ProgressPercentage,
		Notes:              req.Notes,
		RecordedBy:         req.RecordedBy,
		LogDate:            time.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, txErr := s.logRepo.Create(ctx, tx, entry); txErr != nil {
			return txErr
		}
		if req.ProgressPercentage != nil && *req.ProgressPercentage >= 100 {
			if txErr := s.recRepo.UpdateStatus(ctx, tx, recommendation.ID, types.RecommendationCompleted); txErr != nil {
				return txErr
			}
			s.log.Info("Recommendation completed",
				"recommendation_id", recommendation.ID.String(),
				"inmate_id", recommendation.InmateID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("persist progress entry: %w", err)
	}

	s.publisher.Publish(ctx, events.TopicProgressUpdated, map[string]interface{}{
		"recommendation_id": recommendation.ID.String(),
		"inmate_id":         recommendation.InmateID,
	})
	return entry, nil
}

func (s *progressService) GetProgress(ctx context.Context, recommendationID uuid.UUID) ([]*types.ProgressLog, error) {
	return s.logRepo.GetByRecommendationID(ctx, nil, recommendationID)
}
