package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/utils"
)

// PredictorClient calls the external program predictor. Predict never fails:
// any transport error, non-2xx status or malformed payload is absorbed into
// the rule-based fallback and reported through the Degraded fields.
type PredictorClient interface {
	Predict(ctx context.Context, req PredictionRequest) *PredictionResult
}

type PredictionRequest struct {
	InmateID         string                 `json:"inmateId"`
	ProfileFeatures  map[string]interface{} `json:"profileFeatures"`
	SuitabilityGroup string                 `json:"suitabilityGroup"`
	RiskScore        float64                `json:"riskScore"`
}

type ProgramPrediction struct {
	ProgramType   string  `json:"programType"`
	ProgramName   string  `json:"programName"`
	DurationWeeks int     `json:"durationWeeks"`
	Score         float64 `json:"score"`
	Reason        string  `json:"reason"`
}

type PredictionResult struct {
	Programs       []ProgramPrediction `json:"programs"`
	Explanation    string              `json:"explanation"`
	Confidence     float64             `json:"confidence"`
	Degraded       bool                `json:"degraded"`
	DegradedReason string              `json:"degraded_reason,omitempty"`
}

type predictorClient struct {
	httpClient *http.Client
	log        *logger.Logger
	baseURL    string
}

func NewPredictorClient(log *logger.Logger) PredictorClient {
	serviceLog := log.With("service", "PredictorClient")
	baseURL := utils.GetEnv("PREDICTOR_URL", "http://localhost:8000/api/v1", log)
	timeoutMS := utils.GetEnvAsInt("PREDICTOR_TIMEOUT_MS", 1500, log)
	return &predictorClient{
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutMS) * time.Millisecond,
		},
		log:     serviceLog,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *predictorClient) Predict(ctx context.Context, req PredictionRequest) *PredictionResult {
	result, err := c.callRemote(ctx, req)
	if err != nil {
		// Designed degraded mode, not a fault: log and fall back.
		c.log.Warn("Predictor unavailable, using rule-based fallback",
			"inmate_id", req.InmateID, "error", err)
		return FallbackPrediction(req.SuitabilityGroup, err.Error())
	}
	return result
}

func (c *predictorClient) callRemote(ctx context.Context, req PredictionRequest) (*PredictionResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recommend", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("predictor call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("predictor returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read predictor response: %w", err)
	}

	var result PredictionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode predictor response: %w", err)
	}
	if len(result.Programs) == 0 {
		return nil, fmt.Errorf("predictor returned no programs")
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		return nil, fmt.Errorf("predictor confidence out of range: %f", result.Confidence)
	}
	result.Degraded = false
	result.DegradedReason = ""
	return &result, nil
}

// FallbackPrediction is the pure, total keyword rule used whenever the remote
// predictor cannot be trusted. It is the correctness backstop for the whole
// pipeline and must never fail.
func FallbackPrediction(suitabilityGroup, reason string) *PredictionResult {
	group := strings.ToLower(suitabilityGroup)

	var program ProgramPrediction
	switch {
	case strings.Contains(group, "substance"):
		program = ProgramPrediction{
			ProgramType:   "substance_abuse",
			ProgramName:   "Drug Rehabilitation Program",
			DurationWeeks: 12,
			Score:         0.7,
			Reason:        "Recommended based on substance abuse history",
		}
	case strings.Contains(group, "mental"):
		program = ProgramPrediction{
			ProgramType:   "mental_health",
			ProgramName:   "Mental Health Support Program",
			DurationWeeks: 8,
			Score:         0.7,
			Reason:        "Recommended based on mental health assessment",
		}
	default:
		program = ProgramPrediction{
			ProgramType:   "vocational",
			ProgramName:   "Vocational Training",
			DurationWeeks: 16,
			Score:         0.6,
			Reason:        "Default vocational training recommendation",
		}
	}

	return &PredictionResult{
		Programs:       []ProgramPrediction{program},
		Explanation:    "Rule-based recommendation (AI service unavailable)",
		Confidence:     0.6,
		Degraded:       true,
		DegradedReason: reason,
	}
}
