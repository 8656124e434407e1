package handler

import (
	"errors"
	"net/http"

	"parking_reservation/internal/api/middleware"
	"parking_reservation/internal/domain"
	"parking_reservation/internal/repository"
	"parking_reservation/internal/service"

	"github.com/gin-gonic/gin"
)

type IncidentHandler struct {
	incidents *service.IncidentService
}

func NewIncidentHandler(incidents *service.IncidentService) *IncidentHandler {
	return &IncidentHandler{incidents: incidents}
}

// POST /incidents
func (h *IncidentHandler) Report(c *gin.Context) {
	reporterID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
		return
	}

	var dto domain.IncidentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.incidents.Report(c.Request.Context(), reporterID, dto)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, incident)
}

// GET /incidents
func (h *IncidentHandler) List(c *gin.Context) {
	incidents, err := h.incidents.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list incidents"})
		return
	}
	c.JSON(http.StatusOK, incidents)
}
