package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pms/corrections-backend/internal/repos"
	"github.com/pms/corrections-backend/internal/services"
	"github.com/pms/corrections-backend/internal/types"
)

type InmateHandler struct {
	inmateService services.InmateService
}

func NewInmateHandler(inmateService services.InmateService) *InmateHandler {
	return &InmateHandler{inmateService: inmateService}
}

func (ih *InmateHandler) Create(c *gin.Context) {
	var inmate types.Inmate
	if err := c.ShouldBindJSON(&inmate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := ih.inmateService.Create(c.Request.Context(), &inmate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"inmate": created})
}

func (ih *InmateHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inmate id"})
		return
	}
	inmate, err := ih.inmateService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrInmateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"inmate": inmate})
}

func (ih *InmateHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inmate id"})
		return
	}
	var inmate types.Inmate
	if err := c.ShouldBindJSON(&inmate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inmate.ID = id
	updated, err := ih.inmateService.Update(c.Request.Context(), &inmate)
	if err != nil {
		if errors.Is(err, services.ErrInmateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"inmate": updated})
}

func (ih *InmateHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inmate id"})
		return
	}
	if err := ih.inmateService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrInmateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "inmate deleted"})
}

func (ih *InmateHandler) Search(c *gin.Context) {
	filter := repos.InmateFilter{
		Status:        c.Query("status"),
		SecurityLevel: c.Query("securityLevel"),
		Zone:          c.Query("zone"),
		Name:          c.Query("name"),
	}
	inmates, err := ih.inmateService.Search(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"inmates": inmates})
}
