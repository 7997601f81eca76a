package services

import (
	"context"
	"math"
	"testing"

	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/repos"
	"github.com/pms/corrections-backend/internal/types"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSpecializationMatchScore(t *testing.T) {
	tests := []struct {
		name  string
		specs []string
		needs []string
		want  float64
	}{
		{"no needs is neutral", []string{"substance_abuse"}, nil, 0.5},
		{"no specializations scores zero", nil, []string{"substance_abuse"}, 0.0},
		{"full match", []string{"substance_abuse", "mental_health"}, []string{"substance_abuse"}, 1.0},
		{"half match", []string{"substance_abuse"}, []string{"substance_abuse", "mental_health"}, 0.5},
		{"case insensitive", []string{"Substance_Abuse"}, []string{"substance_abuse"}, 1.0},
		{"no overlap", []string{"vocational"}, []string{"mental_health"}, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SpecializationMatchScore(tt.specs, tt.needs)
			if !almostEqual(got, tt.want) {
				t.Errorf("SpecializationMatchScore(%v, %v) = %v, want %v", tt.specs, tt.needs, got, tt.want)
			}
		})
	}
}

func TestProximityScore(t *testing.T) {
	tests := []struct {
		name      string
		station   string
		requested string
		want      float64
	}{
		{"zone match", "north", "north", 1.0},
		{"zone match is case insensitive", "North", "north", 1.0},
		{"zone mismatch", "north", "south", 0.3},
		{"unknown station zone", "", "north", 0.5},
		{"unknown requested zone", "north", "", 0.5},
		{"general sentinel matches nothing preferentially", "general", "general", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProximityScore(tt.station, tt.requested)
			if !almostEqual(got, tt.want) {
				t.Errorf("ProximityScore(%q, %q) = %v, want %v", tt.station, tt.requested, got, tt.want)
			}
		})
	}
}

func TestLoadScore(t *testing.T) {
	tests := []struct {
		name     string
		load     int
		capacity int
		want     float64
	}{
		{"empty", 0, 10, 1.0},
		{"half", 5, 10, 0.5},
		{"full", 10, 10, 0.0},
		{"over capacity clamps to zero", 12, 10, 0.0},
		{"zero capacity", 0, 0, 0.0},
		{"negative capacity", 0, -1, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LoadScore(tt.load, tt.capacity)
			if !almostEqual(got, tt.want) {
				t.Errorf("LoadScore(%d, %d) = %v, want %v", tt.load, tt.capacity, got, tt.want)
			}
		})
	}
}

func TestLoadScoreMonotonicity(t *testing.T) {
	prev := LoadScore(0, 10)
	for load := 1; load <= 10; load++ {
		cur := LoadScore(load, 10)
		if cur > prev {
			t.Fatalf("LoadScore not monotone: LoadScore(%d,10)=%v > LoadScore(%d,10)=%v", load, cur, load-1, prev)
		}
		prev = cur
	}
}

func TestSuccessScore(t *testing.T) {
	if got := SuccessScore(nil); !almostEqual(got, 0.5) {
		t.Errorf("SuccessScore(nil) = %v, want 0.5", got)
	}
	if got := SuccessScore(floatPtr(0.9)); !almostEqual(got, 0.9) {
		t.Errorf("SuccessScore(0.9) = %v, want 0.9", got)
	}
}

func TestStationScoreStaysInUnitInterval(t *testing.T) {
	stations := []*types.Station{
		testStation("S1", "north", 10, 0, []string{"substance_abuse"}, floatPtr(1.0)),
		testStation("S2", "south", 10, 10, nil, floatPtr(0.0)),
		testStation("S3", "", 3, 1, []string{"mental_health", "vocational"}, nil),
	}
	for _, station := range stations {
		score := StationScore(station, []string{"substance_abuse"}, "north")
		if score < 0 || score > 1 {
			t.Errorf("StationScore(%s) = %v, want within [0,1]", station.Name, score)
		}
	}
}

func TestPickStationPrefersZoneMatchAtEqualLoad(t *testing.T) {
	inZone := testStation("in-zone", "north", 10, 5, nil, nil)
	outOfZone := testStation("out-of-zone", "south", 10, 5, nil, nil)

	got := PickStation([]*types.Station{outOfZone, inZone}, nil, "north")
	if got == nil || got.Name != "in-zone" {
		t.Fatalf("PickStation picked %v, want in-zone", got)
	}
}

func TestPickStationPrefersLighterLoadInSameZone(t *testing.T) {
	busy := testStation("busy", "north", 10, 9, nil, nil)
	idle := testStation("idle", "north", 10, 1, nil, nil)

	got := PickStation([]*types.Station{busy, idle}, nil, "north")
	if got == nil || got.Name != "idle" {
		t.Fatalf("PickStation picked %v, want idle", got)
	}
}

func TestPickStationSpecializationDominates(t *testing.T) {
	specialist := testStation("specialist", "south", 10, 8, []string{"substance_abuse"}, nil)
	generalist := testStation("generalist", "north", 10, 1, nil, nil)

	// 0.4 weight on a full specialization match outweighs the proximity and
	// load edge of the generalist.
	got := PickStation([]*types.Station{generalist, specialist}, []string{"substance_abuse"}, "north")
	if got == nil || got.Name != "specialist" {
		t.Fatalf("PickStation picked %v, want specialist", got)
	}
}

func TestPickStationLoadGapOutweighsProximity(t *testing.T) {
	nearlyFull := testStation("nearly-full", "north", 10, 9, nil, nil)
	nearlyEmpty := testStation("nearly-empty", "south", 10, 1, nil, nil)

	// Proximity is worth 0.2*(1.0-0.3)=0.14 to the in-zone station, but the
	// load term gives the out-of-zone one 0.2*(0.9-0.1)=0.16; the composite
	// favors the emptier station (0.54 vs 0.52).
	got := PickStation([]*types.Station{nearlyFull, nearlyEmpty}, nil, "north")
	if got == nil || got.Name != "nearly-empty" {
		t.Fatalf("PickStation picked %v, want nearly-empty", got)
	}

	if a, b := StationScore(nearlyFull, nil, "north"), StationScore(nearlyEmpty, nil, "north"); !almostEqual(a, 0.52) || !almostEqual(b, 0.54) {
		t.Errorf("scores = (%v, %v), want (0.52, 0.54)", a, b)
	}
}

func TestPickStationTieKeepsFirstSeen(t *testing.T) {
	first := testStation("first", "north", 10, 5, nil, nil)
	second := testStation("second", "north", 10, 5, nil, nil)

	got := PickStation([]*types.Station{first, second}, nil, "north")
	if got == nil || got.Name != "first" {
		t.Fatalf("PickStation picked %v, want first", got)
	}
}

func TestPickStationEmptyPool(t *testing.T) {
	if got := PickStation(nil, nil, "north"); got != nil {
		t.Fatalf("PickStation(nil) = %v, want nil", got)
	}
}

func TestPickOfficerTieKeepsFirstSeen(t *testing.T) {
	first := testOfficer("OFF-1", 10, 2, nil, nil)
	second := testOfficer("OFF-2", 10, 2, nil, nil)

	got := PickOfficer([]*types.Officer{first, second}, nil)
	if got == nil || got.OfficerID != "OFF-1" {
		t.Fatalf("PickOfficer picked %v, want OFF-1", got)
	}
}

func TestSelectOfficerStationFilterIsHardMiss(t *testing.T) {
	db := openTestDB(t)
	log := logger.NewNop()
	stationRepo := repos.NewStationRepo(db, log)
	officerRepo := repos.NewOfficerRepo(db, log)

	station := testStation("S1", "north", 10, 0, nil, nil)
	otherStation := testStation("S2", "south", 10, 0, nil, nil)
	if _, err := stationRepo.Create(context.Background(), nil, []*types.Station{station, otherStation}); err != nil {
		t.Fatalf("seed stations: %v", err)
	}
	// The only eligible officer is pinned to a different station.
	officer := testOfficer("OFF-1", 10, 0, nil, &otherStation.ID)
	if _, err := officerRepo.Create(context.Background(), nil, []*types.Officer{officer}); err != nil {
		t.Fatalf("seed officer: %v", err)
	}

	svc := NewAssignmentService(log, stationRepo, officerRepo)
	got, err := svc.SelectOfficer(context.Background(), nil, nil, &station.ID)
	if err != nil {
		t.Fatalf("SelectOfficer: %v", err)
	}
	if got != nil {
		t.Fatalf("SelectOfficer = %v, want nil when no officer serves the station", got)
	}
}

func TestSelectOfficerExcludesUnpinned(t *testing.T) {
	db := openTestDB(t)
	log := logger.NewNop()
	stationRepo := repos.NewStationRepo(db, log)
	officerRepo := repos.NewOfficerRepo(db, log)

	station := testStation("S1", "north", 10, 0, nil, nil)
	if _, err := stationRepo.Create(context.Background(), nil, []*types.Station{station}); err != nil {
		t.Fatalf("seed station: %v", err)
	}
	// An unpinned officer serves no station, so a pool of only unpinned
	// officers is a miss once a station has been chosen.
	unpinned := testOfficer("OFF-1", 10, 0, nil, nil)
	pinned := testOfficer("OFF-2", 10, 0, nil, &station.ID)
	if _, err := officerRepo.Create(context.Background(), nil, []*types.Officer{unpinned, pinned}); err != nil {
		t.Fatalf("seed officers: %v", err)
	}

	svc := NewAssignmentService(log, stationRepo, officerRepo)
	got, err := svc.SelectOfficer(context.Background(), nil, nil, &station.ID)
	if err != nil {
		t.Fatalf("SelectOfficer: %v", err)
	}
	if got == nil || got.OfficerID != "OFF-2" {
		t.Fatalf("SelectOfficer = %v, want the pinned officer", got)
	}
}

func TestSelectOfficerOnlyUnpinnedPoolIsMiss(t *testing.T) {
	db := openTestDB(t)
	log := logger.NewNop()
	stationRepo := repos.NewStationRepo(db, log)
	officerRepo := repos.NewOfficerRepo(db, log)

	station := testStation("S1", "north", 10, 0, nil, nil)
	if _, err := stationRepo.Create(context.Background(), nil, []*types.Station{station}); err != nil {
		t.Fatalf("seed station: %v", err)
	}
	unpinned := testOfficer("OFF-1", 10, 0, nil, nil)
	if _, err := officerRepo.Create(context.Background(), nil, []*types.Officer{unpinned}); err != nil {
		t.Fatalf("seed officer: %v", err)
	}

	svc := NewAssignmentService(log, stationRepo, officerRepo)
	got, err := svc.SelectOfficer(context.Background(), nil, nil, &station.ID)
	if err != nil {
		t.Fatalf("SelectOfficer: %v", err)
	}
	if got != nil {
		t.Fatalf("SelectOfficer = %v, want nil for an unpinned-only pool", got)
	}
}

func TestSelectStationExcludesFullAndInactive(t *testing.T) {
	db := openTestDB(t)
	log := logger.NewNop()
	stationRepo := repos.NewStationRepo(db, log)
	officerRepo := repos.NewOfficerRepo(db, log)

	full := testStation("full", "north", 2, 2, nil, nil)
	inactive := testStation("inactive", "north", 10, 0, nil, nil)
	inactive.Active = false
	zeroCap := testStation("zero-cap", "north", 0, 0, nil, nil)
	open := testStation("open", "south", 10, 0, nil, nil)
	if _, err := stationRepo.Create(context.Background(), nil, []*types.Station{full, inactive, zeroCap, open}); err != nil {
		t.Fatalf("seed stations: %v", err)
	}

	svc := NewAssignmentService(log, stationRepo, officerRepo)
	got, err := svc.SelectStation(context.Background(), nil, nil, "north")
	if err != nil {
		t.Fatalf("SelectStation: %v", err)
	}
	if got == nil || got.Name != "open" {
		t.Fatalf("SelectStation picked %v, want open", got)
	}
}
