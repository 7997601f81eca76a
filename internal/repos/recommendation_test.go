package repos

import (
	"context"
	"testing"
	"time"

	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/types"
)

func TestGetLatestOpenByInmateIDSkipsTerminal(t *testing.T) {
	db := openTestDB(t)
	log := logger.NewNop()
	repo := NewRecommendationRepo(db, log)
	programRepo := NewProgramRepo(db, log)
	ctx := context.Background()

	program := &types.Program{Name: "Vocational Training", Type: types.ProgramVocational, DurationWeeks: 16, Active: true}
	if _, err := programRepo.Create(ctx, nil, []*types.Program{program}); err != nil {
		t.Fatalf("create program: %v", err)
	}

	open := &types.Recommendation{InmateID: "INM001", ProgramID: program.ID, Status: types.RecommendationPending}
	if _, err := repo.Create(ctx, nil, open); err != nil {
		t.Fatalf("create open: %v", err)
	}
	// The newer recommendation is terminal and must be skipped.
	completed := &types.Recommendation{InmateID: "INM001", ProgramID: program.ID, Status: types.RecommendationCompleted}
	completed.CreatedAt = time.Now().Add(time.Hour)
	if _, err := repo.Create(ctx, nil, completed); err != nil {
		t.Fatalf("create completed: %v", err)
	}

	got, err := repo.GetLatestOpenByInmateID(ctx, nil, "INM001")
	if err != nil {
		t.Fatalf("GetLatestOpenByInmateID: %v", err)
	}
	if got == nil || got.ID != open.ID {
		t.Fatalf("got %v, want the open recommendation", got)
	}

	if err := repo.UpdateStatus(ctx, nil, open.ID, types.RecommendationCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	got, err = repo.GetLatestOpenByInmateID(ctx, nil, "INM001")
	if err != nil {
		t.Fatalf("GetLatestOpenByInmateID after cancel: %v", err)
	}
	if got != nil {
		t.Fatalf("got %v, want nil when everything is terminal", got)
	}
}

func TestGetByInmateIDNewestFirst(t *testing.T) {
	db := openTestDB(t)
	log := logger.NewNop()
	repo := NewRecommendationRepo(db, log)
	programRepo := NewProgramRepo(db, log)
	ctx := context.Background()

	program := &types.Program{Name: "Education Program", Type: types.ProgramEducation, DurationWeeks: 8, Active: true}
	if _, err := programRepo.Create(ctx, nil, []*types.Program{program}); err != nil {
		t.Fatalf("create program: %v", err)
	}

	older := &types.Recommendation{InmateID: "INM002", ProgramID: program.ID, Status: types.RecommendationCompleted}
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := &types.Recommendation{InmateID: "INM002", ProgramID: program.ID, Status: types.RecommendationPending}
	for _, rec := range []*types.Recommendation{older, newer} {
		if _, err := repo.Create(ctx, nil, rec); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	recs, err := repo.GetByInmateID(ctx, nil, "INM002")
	if err != nil {
		t.Fatalf("GetByInmateID: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0].ID != newer.ID {
		t.Errorf("expected newest first, got %s", recs[0].ID)
	}
	if recs[0].Program == nil || recs[0].Program.Type != types.ProgramEducation {
		t.Errorf("program not preloaded: %+v", recs[0].Program)
	}
}
