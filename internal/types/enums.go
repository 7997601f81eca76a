package types

import "strings"

// ProgramType is the closed set of rehabilitation program categories. The
// predictor may emit free text in its rationale, but every program stored in
// the catalog carries exactly one of these values.
type ProgramType string

const (
	ProgramSubstanceAbuse      ProgramType = "substance_abuse"
	ProgramMentalHealth        ProgramType = "mental_health"
	ProgramVocational          ProgramType = "vocational"
	ProgramEducation           ProgramType = "education"
	ProgramAngerManagement     ProgramType = "anger_management"
	ProgramCognitiveBehavioral ProgramType = "cognitive_behavioral"
)

var programTypes = map[ProgramType]struct{}{
	ProgramSubstanceAbuse:      {},
	ProgramMentalHealth:        {},
	ProgramVocational:          {},
	ProgramEducation:           {},
	ProgramAngerManagement:     {},
	ProgramCognitiveBehavioral: {},
}

// ParseProgramType validates a raw category string at the catalog boundary.
func ParseProgramType(raw string) (ProgramType, bool) {
	pt := ProgramType(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := programTypes[pt]
	return pt, ok
}

func (p ProgramType) String() string { return string(p) }

// RecommendationStatus is the lifecycle of a recommendation. PENDING is the
// initial state, COMPLETED the terminal one; only the progress service moves
// a recommendation to COMPLETED.
type RecommendationStatus string

const (
	RecommendationPending    RecommendationStatus = "PENDING"
	RecommendationInProgress RecommendationStatus = "IN_PROGRESS"
	RecommendationCompleted  RecommendationStatus = "COMPLETED"
	RecommendationCancelled  RecommendationStatus = "CANCELLED"
)

func (s RecommendationStatus) Terminal() bool {
	return s == RecommendationCompleted || s == RecommendationCancelled
}

// ProgressStatus describes a single progress entry against a recommendation.
//
//	NOT_STARTED  enrolled but the program has not begun
//	IN_PROGRESS  participating, no judgement on trajectory
//	ON_TRACK     participating and meeting program milestones
//	STRUGGLING   participating but falling behind or non-compliant
//	COMPLETED    program finished (usually paired with percentage 100)
type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "NOT_STARTED"
	ProgressInProgress ProgressStatus = "IN_PROGRESS"
	ProgressOnTrack    ProgressStatus = "ON_TRACK"
	ProgressStruggling ProgressStatus = "STRUGGLING"
	ProgressCompleted  ProgressStatus = "COMPLETED"
)

var progressStatuses = map[ProgressStatus]struct{}{
	ProgressNotStarted: {},
	ProgressInProgress: {},
	ProgressOnTrack:    {},
	ProgressStruggling: {},
	ProgressCompleted:  {},
}

func ParseProgressStatus(raw string) (ProgressStatus, bool) {
	ps := ProgressStatus(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := progressStatuses[ps]
	return ps, ok
}

// InmateStatus mirrors the custody lifecycle tracked by the inmate CRUD.
type InmateStatus string

const (
	InmateActive      InmateStatus = "ACTIVE"
	InmateReleased    InmateStatus = "RELEASED"
	InmateTransferred InmateStatus = "TRANSFERRED"
)
