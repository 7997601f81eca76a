package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pms/corrections-backend/internal/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// A single in-memory sqlite database exists per connection.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Inmate{},
		&types.RehabProfile{},
		&types.Program{},
		&types.Station{},
		&types.Officer{},
		&types.Recommendation{},
		&types.ProgressLog{},
		&types.MedicalReport{},
		&types.CounselingNote{},
	)
	if err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func testStation(name, zone string, capacity, load int, specs []string, successRate *float64) *types.Station {
	return &types.Station{
		ID:              uuid.New(),
		Name:            name,
		Zone:            zone,
		Capacity:        capacity,
		CurrentLoad:     load,
		Specializations: types.StringList(specs),
		SuccessRate:     successRate,
		Active:          true,
	}
}

func testOfficer(officerID string, maxCapacity, load int, specs []string, stationID *uuid.UUID) *types.Officer {
	return &types.Officer{
		ID:                uuid.New(),
		OfficerID:         officerID,
		Name:              "Officer " + officerID,
		Specializations:   types.StringList(specs),
		AssignedStationID: stationID,
		CurrentLoad:       load,
		MaxCapacity:       maxCapacity,
		Active:            true,
	}
}

func testProgram(name string, programType types.ProgramType) *types.Program {
	return &types.Program{
		ID:            uuid.New(),
		Name:          name,
		Type:          programType,
		DurationWeeks: 12,
		Capacity:      30,
		Active:        true,
	}
}

// capturePublisher records published topics for assertions.
type capturePublisher struct {
	topics []string
}

func (p *capturePublisher) Publish(_ context.Context, topic string, _ interface{}) {
	p.topics = append(p.topics, topic)
}

func (p *capturePublisher) published(topic string) bool {
	for _, t := range p.topics {
		if t == topic {
			return true
		}
	}
	return false
}

// stubPredictor returns a canned result without any network call.
type stubPredictor struct {
	result *PredictionResult
}

func (s *stubPredictor) Predict(_ context.Context, _ PredictionRequest) *PredictionResult {
	return s.result
}
