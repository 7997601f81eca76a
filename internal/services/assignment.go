package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/repos"
	"github.com/pms/corrections-backend/internal/types"
)

// Scoring weights. Officer scoring drops the proximity term and keeps the
// remaining weights as given (0.4/0.3/0.3), matching the historical behavior.
const (
	weightSpecialization = 0.4
	weightProximity      = 0.2
	weightLoad           = 0.2
	weightSuccessRate    = 0.2

	weightOfficerSpecialization = 0.4
	weightOfficerLoad           = 0.3
	weightOfficerSuccessRate    = 0.3
)

// zoneGeneral is the sentinel zone used when a profile carries no zone
// feature; it matches no station preferentially.
const zoneGeneral = "general"

// AssignmentService picks the best-matching station and officer for a
// need-set. Selection only reads load counters; committing an assignment
// goes through the repos' Reserve.
type AssignmentService interface {
	SelectStation(ctx context.Context, tx *gorm.DB, needs []string, zone string) (*types.Station, error)
	SelectOfficer(ctx context.Context, tx *gorm.DB, needs []string, stationID *uuid.UUID) (*types.Officer, error)
}

type assignmentService struct {
	log         *logger.Logger
	stationRepo repos.StationRepo
	officerRepo repos.OfficerRepo
}

func NewAssignmentService(log *logger.Logger, stationRepo repos.StationRepo, officerRepo repos.OfficerRepo) AssignmentService {
	serviceLog := log.With("service", "AssignmentService")
	return &assignmentService{
		log:         serviceLog,
		stationRepo: stationRepo,
		officerRepo: officerRepo,
	}
}

// SelectStation returns nil when no station is eligible; callers treat
// absence as a valid outcome, not an error.
func (s *assignmentService) SelectStation(ctx context.Context, tx *gorm.DB, needs []string, zone string) (*types.Station, error) {
	stations, err := s.stationRepo.FindEligible(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(stations) == 0 {
		s.log.Warn("No available stations found")
		return nil, nil
	}
	return PickStation(stations, needs, zone), nil
}

func (s *assignmentService) SelectOfficer(ctx context.Context, tx *gorm.DB, needs []string, stationID *uuid.UUID) (*types.Officer, error) {
	officers, err := s.officerRepo.FindEligible(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(officers) == 0 {
		s.log.Warn("No available officers found")
		return nil, nil
	}

	if stationID != nil {
		// Only officers pinned to the chosen station qualify; an unpinned
		// officer serves no station.
		filtered := make([]*types.Officer, 0, len(officers))
		for _, o := range officers {
			if o.AssignedStationID != nil && *o.AssignedStationID == *stationID {
				filtered = append(filtered, o)
			}
		}
		if len(filtered) == 0 {
			// Hard miss: never fall back to the unfiltered pool.
			s.log.Warn("No available officers at station", "station_id", stationID.String())
			return nil, nil
		}
		officers = filtered
	}

	return PickOfficer(officers, needs), nil
}

// PickStation scores every candidate and returns the maximum; ties keep the
// first candidate seen.
func PickStation(stations []*types.Station, needs []string, zone string) *types.Station {
	var best *types.Station
	bestScore := -1.0
	for _, station := range stations {
		score := StationScore(station, needs, zone)
		if score > bestScore {
			best = station
			bestScore = score
		}
	}
	return best
}

func PickOfficer(officers []*types.Officer, needs []string) *types.Officer {
	var best *types.Officer
	bestScore := -1.0
	for _, officer := range officers {
		score := OfficerScore(officer, needs)
		if score > bestScore {
			best = officer
			bestScore = score
		}
	}
	return best
}

// StationScore is the weighted composite over specialization, proximity,
// load and historical success. Every sub-score lies in [0,1], so the
// composite does too.
func StationScore(station *types.Station, needs []string, zone string) float64 {
	specialization := SpecializationMatchScore(station.SpecializationList(), needs)
	proximity := ProximityScore(station.Zone, zone)
	load := LoadScore(station.CurrentLoad, station.Capacity)
	success := SuccessScore(station.SuccessRate)

	return weightSpecialization*specialization +
		weightProximity*proximity +
		weightLoad*load +
		weightSuccessRate*success
}

func OfficerScore(officer *types.Officer, needs []string) float64 {
	specialization := SpecializationMatchScore(officer.SpecializationList(), needs)
	load := LoadScore(officer.CurrentLoad, officer.MaxCapacity)
	success := SuccessScore(officer.SuccessRate)

	return weightOfficerSpecialization*specialization +
		weightOfficerLoad*load +
		weightOfficerSuccessRate*success
}

// SpecializationMatchScore is matched-needs / total-needs. No needs at all is
// neutral (0.5); a candidate with no specializations scores 0 regardless.
func SpecializationMatchScore(specializations, needs []string) float64 {
	if len(needs) == 0 {
		return 0.5
	}
	if len(specializations) == 0 {
		return 0.0
	}

	matched := 0
	for _, need := range needs {
		for _, spec := range specializations {
			if strings.EqualFold(spec, need) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(needs))
}

// ProximityScore is 1.0 on a zone match, 0.3 on a mismatch, and 0.5 when
// either zone is unknown. The "general" sentinel counts as unknown.
func ProximityScore(stationZone, requestedZone string) float64 {
	if stationZone == "" || requestedZone == "" || strings.EqualFold(requestedZone, zoneGeneral) {
		return 0.5
	}
	if strings.EqualFold(stationZone, requestedZone) {
		return 1.0
	}
	return 0.3
}

// LoadScore is 1 - utilization, clamped to [0,1]. Zero capacity scores 0 and
// such resources are also excluded from candidacy entirely.
func LoadScore(currentLoad, capacity int) float64 {
	if capacity <= 0 {
		return 0.0
	}
	score := 1.0 - float64(currentLoad)/float64(capacity)
	if score < 0 {
		return 0.0
	}
	if score > 1 {
		return 1.0
	}
	return score
}

// SuccessScore defaults to a neutral 0.5 when no history exists.
func SuccessScore(successRate *float64) float64 {
	if successRate == nil {
		return 0.5
	}
	return *successRate
}
