package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pms/corrections-backend/internal/services"
	"github.com/pms/corrections-backend/internal/types"
)

type RehabilitationHandler struct {
	rehabService    services.RehabilitationService
	progressService services.ProgressService
}

func NewRehabilitationHandler(rehabService services.RehabilitationService, progressService services.ProgressService) *RehabilitationHandler {
	return &RehabilitationHandler{
		rehabService:    rehabService,
		progressService: progressService,
	}
}

func (rh *RehabilitationHandler) GenerateRecommendation(c *gin.Context) {
	var req services.GenerateRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	recommendation, err := rh.rehabService.GenerateRecommendation(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrNoSuitableProgram) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendation": recommendation})
}

func (rh *RehabilitationHandler) GetProfile(c *gin.Context) {
	inmateID := c.Param("inmateId")
	profile, err := rh.rehabService.GetProfile(c.Request.Context(), inmateID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (rh *RehabilitationHandler) GetRecommendations(c *gin.Context) {
	inmateID := c.Param("inmateId")
	recommendations, err := rh.rehabService.GetRecommendations(c.Request.Context(), inmateID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}

func (rh *RehabilitationHandler) ListPrograms(c *gin.Context) {
	programs, err := rh.rehabService.ListPrograms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"programs": programs})
}

func (rh *RehabilitationHandler) LogProgress(c *gin.Context) {
	var body struct {
		RecommendationID   string `json:"recommendationId" binding:"required"`
		Status             string `json:"status" binding:"required"`
		ProgressPercentage *int   `json:"progressPercentage"`
		Notes              string `json:"notes"`
		RecordedBy         string `json:"recordedBy"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	recommendationID, err := uuid.Parse(body.RecommendationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recommendationId"})
		return
	}
	status, ok := types.ParseProgressStatus(body.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid progress status"})
		return
	}

	entry, err := rh.progressService.LogProgress(c.Request.Context(), services.LogProgressRequest{
		RecommendationID:   recommendationID,
		Status:             status,
		ProgressPercentage: body.ProgressPercentage,
		Notes:              body.Notes,
		RecordedBy:         body.RecordedBy,
	})
	if err != nil {
		if errors.Is(err, services.ErrRecommendationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": entry})
}

func (rh *RehabilitationHandler) GetProgress(c *gin.Context) {
	recommendationID, err := uuid.Parse(c.Param("recommendationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recommendationId"})
		return
	}
	entries, err := rh.progressService.GetProgress(c.Request.Context(), recommendationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": entries})
}

func (rh *RehabilitationHandler) AddMedicalReport(c *gin.Context) {
	var req services.AddMedicalReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	report, err := rh.rehabService.AddMedicalReport(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

func (rh *RehabilitationHandler) AddCounselingNote(c *gin.Context) {
	var req services.AddCounselingNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	note, err := rh.rehabService.AddCounselingNote(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": note})
}
