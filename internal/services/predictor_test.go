package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pms/corrections-backend/internal/logger"
)

func newTestPredictor(t *testing.T, handler http.Handler) (PredictorClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("PREDICTOR_URL", srv.URL)
	return NewPredictorClient(logger.NewNop()), srv
}

func TestPredictSuccess(t *testing.T) {
	var gotPath string
	var gotReq PredictionRequest
	client, _ := newTestPredictor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(PredictionResult{
			Programs: []ProgramPrediction{{
				ProgramType:   "substance_abuse",
				ProgramName:   "Drug Rehabilitation Program",
				DurationWeeks: 10,
				Score:         0.91,
			}},
			Explanation: "High substance abuse indicators",
			Confidence:  0.91,
		})
	}))

	result := client.Predict(context.Background(), PredictionRequest{
		InmateID:         "INM001",
		SuitabilityGroup: "substance_abuse",
		RiskScore:        0.8,
	})

	if gotPath != "/recommend" {
		t.Errorf("predictor called %q, want /recommend", gotPath)
	}
	if gotReq.InmateID != "INM001" || gotReq.SuitabilityGroup != "substance_abuse" {
		t.Errorf("request payload = %+v", gotReq)
	}
	if result.Degraded {
		t.Fatalf("expected live result, got degraded: %s", result.DegradedReason)
	}
	if len(result.Programs) != 1 || result.Programs[0].ProgramType != "substance_abuse" {
		t.Errorf("programs = %+v", result.Programs)
	}
	if result.Confidence != 0.91 {
		t.Errorf("confidence = %v, want 0.91", result.Confidence)
	}
}

func TestPredictFallsBackOnServerError(t *testing.T) {
	client, _ := newTestPredictor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	result := client.Predict(context.Background(), PredictionRequest{
		InmateID:         "INM001",
		SuitabilityGroup: "substance_abuse",
	})

	if !result.Degraded {
		t.Fatal("expected degraded result on 500")
	}
	if result.DegradedReason == "" {
		t.Error("expected a degraded reason")
	}
	if result.Programs[0].ProgramType != "substance_abuse" || result.Programs[0].DurationWeeks != 12 {
		t.Errorf("fallback program = %+v", result.Programs[0])
	}
}

func TestPredictFallsBackOnMalformedBody(t *testing.T) {
	client, _ := newTestPredictor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))

	result := client.Predict(context.Background(), PredictionRequest{InmateID: "INM002"})
	if !result.Degraded {
		t.Fatal("expected degraded result on malformed body")
	}
}

func TestPredictFallsBackOnEmptyProgramList(t *testing.T) {
	client, _ := newTestPredictor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(PredictionResult{Confidence: 0.8})
	}))

	result := client.Predict(context.Background(), PredictionRequest{InmateID: "INM003"})
	if !result.Degraded {
		t.Fatal("expected degraded result when predictor returns no programs")
	}
}

func TestPredictFallsBackOnOutOfRangeConfidence(t *testing.T) {
	client, _ := newTestPredictor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(PredictionResult{
			Programs:   []ProgramPrediction{{ProgramType: "vocational"}},
			Confidence: 1.7,
		})
	}))

	result := client.Predict(context.Background(), PredictionRequest{InmateID: "INM004"})
	if !result.Degraded {
		t.Fatal("expected degraded result on out-of-range confidence")
	}
}

func TestPredictFallsBackWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	t.Setenv("PREDICTOR_URL", srv.URL)
	client := NewPredictorClient(logger.NewNop())

	result := client.Predict(context.Background(), PredictionRequest{InmateID: "INM005"})
	if !result.Degraded {
		t.Fatal("expected degraded result when predictor is unreachable")
	}
}

func TestFallbackPredictionRules(t *testing.T) {
	tests := []struct {
		group     string
		wantType  string
		wantWeeks int
		wantScore float64
	}{
		{"substance_abuse", "substance_abuse", 12, 0.7},
		{"SUBSTANCE", "substance_abuse", 12, 0.7},
		{"mental_health", "mental_health", 8, 0.7},
		{"general", "vocational", 16, 0.6},
		{"", "vocational", 16, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.group, func(t *testing.T) {
			result := FallbackPrediction(tt.group, "connection refused")
			if !result.Degraded {
				t.Fatal("fallback must be marked degraded")
			}
			if result.DegradedReason != "connection refused" {
				t.Errorf("degraded reason = %q", result.DegradedReason)
			}
			if result.Confidence != 0.6 {
				t.Errorf("confidence = %v, want 0.6", result.Confidence)
			}
			if !strings.Contains(result.Explanation, "AI service unavailable") {
				t.Errorf("explanation = %q", result.Explanation)
			}
			program := result.Programs[0]
			if program.ProgramType != tt.wantType {
				t.Errorf("program type = %q, want %q", program.ProgramType, tt.wantType)
			}
			if program.DurationWeeks != tt.wantWeeks {
				t.Errorf("duration = %d, want %d", program.DurationWeeks, tt.wantWeeks)
			}
			if program.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", program.Score, tt.wantScore)
			}
		})
	}
}
