package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/corrections-backend/internal/events"
	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/repos"
	"github.com/pms/corrections-backend/internal/types"
)

// reserveAttempts bounds the re-select loop after a lost reservation race.
const reserveAttempts = 3

type GenerateRecommendationRequest struct {
	InmateID        string                 `json:"inmateId" binding:"required"`
	InmateData      map[string]interface{} `json:"inmateData,omitempty"`
	ForceRegenerate bool                   `json:"forceRegenerate,omitempty"`
}

type AddMedicalReportRequest struct {
	InmateID  string                 `json:"inmateId" binding:"required"`
	OfficerID string                 `json:"officerId,omitempty"`
	Vitals    map[string]interface{} `json:"vitals,omitempty"`
	Diagnosis string                 `json:"diagnosis,omitempty"`
	Notes     string                 `json:"notes,omitempty"`
}

type AddCounselingNoteRequest struct {
	InmateID     string   `json:"inmateId" binding:"required"`
	CounselorID  string   `json:"counselorId,omitempty"`
	Text         string   `json:"text" binding:"required"`
	SessionScore *float64 `json:"sessionScore,omitempty"`
}

type RehabilitationService interface {
	GenerateRecommendation(ctx context.Context, req GenerateRecommendationRequest) (*types.Recommendation, error)
	GetProfile(ctx context.Context, inmateID string) (*types.RehabProfile, error)
	GetRecommendations(ctx context.Context, inmateID string) ([]*types.Recommendation, error)
	ListPrograms(ctx context.Context) ([]*types.Program, error)
	AddMedicalReport(ctx context.Context, req AddMedicalReportRequest) (*types.MedicalReport, error)
	AddCounselingNote(ctx context.Context, req AddCounselingNoteRequest) (*types.CounselingNote, error)
}

type rehabilitationService struct {
	db             *gorm.DB
	log            *logger.Logger
	profileRepo    repos.RehabProfileRepo
	programRepo    repos.ProgramRepo
	stationRepo    repos.StationRepo
	officerRepo    repos.OfficerRepo
	recRepo        repos.RecommendationRepo
	medicalRepo    repos.MedicalReportRepo
	counselingRepo repos.CounselingNoteRepo
	assignment     AssignmentService
	predictor      PredictorClient
	publisher      events.Publisher
}

func NewRehabilitationService(
	db *gorm.DB,
	log *logger.Logger,
	profileRepo repos.RehabProfileRepo,
	programRepo repos.ProgramRepo,
	stationRepo repos.StationRepo,
	officerRepo repos.OfficerRepo,
	recRepo repos.RecommendationRepo,
	medicalRepo repos.MedicalReportRepo,
	counselingRepo repos.CounselingNoteRepo,
	assignment AssignmentService,
	predictor PredictorClient,
	publisher events.Publisher,
) RehabilitationService {
	serviceLog := log.With("service", "RehabilitationService")
	return &rehabilitationService{
		db:             db,
		log:            serviceLog,
		profileRepo:    profileRepo,
		programRepo:    programRepo,
		stationRepo:    stationRepo,
		officerRepo:    officerRepo,
		recRepo:        recRepo,
		medicalRepo:    medicalRepo,
		counselingRepo: counselingRepo,
		assignment:     assignment,
		predictor:      predictor,
		publisher:      publisher,
	}
}

// GenerateRecommendation runs the full pipeline: profile, predictor (or
// fallback), catalog resolution, station/officer assignment with guarded
// reservation, persistence, event. With ForceRegenerate false the latest
// non-terminal recommendation for the inmate is reused instead.
func (s *rehabilitationService) GenerateRecommendation(ctx context.Context, req GenerateRecommendationRequest) (*types.Recommendation, error) {
	if req.InmateID == "" {
		return nil, fmt.Errorf("inmateId is required")
	}
	s.log.Info("Generating recommendation", "inmate_id", req.InmateID)

	if !req.ForceRegenerate {
		existing, err := s.recRepo.GetLatestOpenByInmateID(ctx, nil, req.InmateID)
		if err != nil {
			return nil, fmt.Errorf("check existing recommendations: %w", err)
		}
		if existing != nil {
			s.log.Info("Reusing open recommendation", "inmate_id", req.InmateID, "recommendation_id", existing.ID.String())
			return existing, nil
		}
	}

	profile, err := s.getOrCreateProfile(ctx, req.InmateID, req.InmateData)
	if err != nil {
		return nil, err
	}

	// Override features merge over stored features for this call only.
	features := profile.Features()
	for k, v := range req.InmateData {
		features[k] = v
	}

	prediction := s.predictor.Predict(ctx, PredictionRequest{
		InmateID:         req.InmateID,
		ProfileFeatures:  features,
		SuitabilityGroup: profile.SuitabilityGroup,
		RiskScore:        profile.RiskScore,
	})
	if prediction.Degraded {
		s.log.Warn("Recommendation produced in degraded mode",
			"inmate_id", req.InmateID, "reason", prediction.DegradedReason)
	}

	program, err := s.resolveProgram(ctx, prediction)
	if err != nil {
		return nil, err
	}

	needs := extractNeeds(profile)
	zone := extractZone(features)

	station, officer := s.assignWithReservation(ctx, req.InmateID, needs, zone)
	if station == nil || officer == nil {
		s.log.Warn("Assignment gap on recommendation",
			"inmate_id", req.InmateID,
			"station_assigned", station != nil,
			"officer_assigned", officer != nil)
	}

	durationWeeks := 12
	if len(prediction.Programs) > 0 && prediction.Programs[0].DurationWeeks > 0 {
		durationWeeks = prediction.Programs[0].DurationWeeks
	}

	startDate := time.Now()
	expectedEnd := startDate.AddDate(0, 0, durationWeeks*7)

	rec := &types.Recommendation{
		ID:                       uuid.New(),
		InmateID:                 req.InmateID,
		ProgramID:                program.ID,
		RecommendedDurationWeeks: durationWeeks,
		ReasonExplainer:          prediction.Explanation,
		Confidence:               prediction.Confidence,
		Degraded:                 prediction.Degraded,
		Status:                   types.RecommendationPending,
		StartDate:                &startDate,
		ExpectedEndDate:          &expectedEnd,
	}
	if station != nil {
		rec.StationID = &station.ID
	}
	if officer != nil {
		rec.OfficerID = &officer.ID
	}

	if _, err := s.recRepo.Create(ctx, nil, rec); err != nil {
		return nil, fmt.Errorf("persist recommendation: %w", err)
	}

	s.publisher.Publish(ctx, events.TopicRecommendationCreated, map[string]interface{}{
		"recommendation_id": rec.ID.String(),
		"inmate_id":         rec.InmateID,
	})

	created, err := s.recRepo.GetByID(ctx, nil, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("reload recommendation: %w", err)
	}
	return created, nil
}

func (s *rehabilitationService) GetProfile(ctx context.Context, inmateID string) (*types.RehabProfile, error) {
	profile, err := s.profileRepo.GetByInmateID(ctx, nil, inmateID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, inmateID)
	}
	return profile, nil
}

func (s *rehabilitationService) GetRecommendations(ctx context.Context, inmateID string) ([]*types.Recommendation, error) {
	return s.recRepo.GetByInmateID(ctx, nil, inmateID)
}

func (s *rehabilitationService) ListPrograms(ctx context.Context) ([]*types.Program, error) {
	return s.programRepo.FindAllActive(ctx, nil)
}

func (s *rehabilitationService) AddMedicalReport(ctx context.Context, req AddMedicalReportRequest) (*types.MedicalReport, error) {
	report := &types.MedicalReport{
		ID:        uuid.New(),
		InmateID:  req.InmateID,
		OfficerID: req.OfficerID,
		Vitals:    types.FeatureMap(req.Vitals),
		Diagnosis: req.Diagnosis,
		Notes:     req.Notes,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, txErr := s.medicalRepo.Create(ctx, tx, report); txErr != nil {
			return txErr
		}
		return s.profileRepo.TouchLastUpdated(ctx, tx, req.InmateID)
	})
	if err != nil {
		return nil, fmt.Errorf("persist medical report: %w", err)
	}

	s.publisher.Publish(ctx, events.TopicMedicalReportAdded, map[string]interface{}{
		"inmate_id": req.InmateID,
	})
	return report, nil
}

func (s *rehabilitationService) AddCounselingNote(ctx context.Context, req AddCounselingNoteRequest) (*types.CounselingNote, error) {
	note := &types.CounselingNote{
		ID:           uuid.New(),
		InmateID:     req.InmateID,
		CounselorID:  req.CounselorID,
		Text:         req.Text,
		SessionScore: req.SessionScore,
		Summary:      summarizeNote(req.Text),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, txErr := s.counselingRepo.Create(ctx, tx, note); txErr != nil {
			return txErr
		}
		return s.profileRepo.TouchLastUpdated(ctx, tx, req.InmateID)
	})
	if err != nil {
		return nil, fmt.Errorf("persist counseling note: %w", err)
	}

	s.publisher.Publish(ctx, events.TopicCounselingNoteAdded, map[string]interface{}{
		"inmate_id": req.InmateID,
	})
	return note, nil
}

func (s *rehabilitationService) getOrCreateProfile(ctx context.Context, inmateID string, data map[string]interface{}) (*types.RehabProfile, error) {
	profile, err := s.profileRepo.GetByInmateID(ctx, nil, inmateID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile != nil {
		return profile, nil
	}

	profile = &types.RehabProfile{
		ID:               uuid.New(),
		InmateID:         inmateID,
		SuitabilityGroup: "general",
		RiskScore:        0.5,
		ProfileFeatures:  types.FeatureMap(data),
		LastUpdated:      time.Now(),
	}
	if _, err := s.profileRepo.Create(ctx, nil, profile); err != nil {
		return nil, fmt.Errorf("create initial profile: %w", err)
	}
	s.log.Info("Created initial rehab profile", "inmate_id", inmateID)
	return profile, nil
}

// resolveProgram validates the top predicted category against the closed
// program taxonomy and looks it up in the catalog. A miss here is a real
// error; nothing gets persisted.
func (s *rehabilitationService) resolveProgram(ctx context.Context, prediction *PredictionResult) (*types.Program, error) {
	if len(prediction.Programs) == 0 {
		return nil, ErrNoSuitableProgram
	}

	programType, ok := types.ParseProgramType(prediction.Programs[0].ProgramType)
	if !ok {
		s.log.Warn("Predicted program type outside catalog taxonomy", "program_type", prediction.Programs[0].ProgramType)
		return nil, ErrNoSuitableProgram
	}

	programs, err := s.programRepo.FindActiveByType(ctx, nil, programType)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup: %w", err)
	}
	if len(programs) == 0 {
		return nil, ErrNoSuitableProgram
	}
	return programs[0], nil
}

// assignWithReservation scores against a load snapshot and then commits
// through the atomic Reserve. A lost race triggers a bounded re-select
// against a refreshed pool; running out of attempts leaves a gap.
func (s *rehabilitationService) assignWithReservation(ctx context.Context, inmateID string, needs []string, zone string) (*types.Station, *types.Officer) {
	var station *types.Station
	for attempt := 0; attempt < reserveAttempts; attempt++ {
		candidate, err := s.assignment.SelectStation(ctx, nil, needs, zone)
		if err != nil {
			s.log.Warn("Station selection failed", "inmate_id", inmateID, "error", err)
			break
		}
		if candidate == nil {
			break
		}
		ok, err := s.stationRepo.Reserve(ctx, nil, candidate.ID)
		if err != nil {
			s.log.Warn("Station reservation failed", "inmate_id", inmateID, "station_id", candidate.ID.String(), "error", err)
			break
		}
		if ok {
			station = candidate
			break
		}
		s.log.Debug("Lost station reservation race, re-selecting", "station_id", candidate.ID.String())
	}

	var stationID *uuid.UUID
	if station != nil {
		stationID = &station.ID
	}

	var officer *types.Officer
	for attempt := 0; attempt < reserveAttempts; attempt++ {
		candidate, err := s.assignment.SelectOfficer(ctx, nil, needs, stationID)
		if err != nil {
			s.log.Warn("Officer selection failed", "inmate_id", inmateID, "error", err)
			break
		}
		if candidate == nil {
			break
		}
		ok, err := s.officerRepo.Reserve(ctx, nil, candidate.ID)
		if err != nil {
			s.log.Warn("Officer reservation failed", "inmate_id", inmateID, "officer_id", candidate.ID.String(), "error", err)
			break
		}
		if ok {
			officer = candidate
			break
		}
		s.log.Debug("Lost officer reservation race, re-selecting", "officer_id", candidate.ID.String())
	}

	return station, officer
}

// summarizeNote keeps the leading sentence of a counseling note, truncated,
// as a browsable digest stored alongside the full text.
func summarizeNote(text string) string {
	const maxSummary = 160

	text = strings.TrimSpace(text)
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		text = text[:i+1]
	}
	if len(text) > maxSummary {
		text = strings.TrimSpace(text[:maxSummary-3]) + "..."
	}
	return text
}

// extractNeeds derives the specialization need-set from the profile.
func extractNeeds(profile *types.RehabProfile) []string {
	if profile.SuitabilityGroup == "" {
		return []string{"general"}
	}
	return []string{profile.SuitabilityGroup}
}

// extractZone reads the optional "zone" feature; absent means the sentinel
// zone that matches nothing preferentially.
func extractZone(features map[string]interface{}) string {
	if raw, ok := features["zone"]; ok {
		if zone, ok := raw.(string); ok && zone != "" {
			return zone
		}
	}
	return "general"
}
