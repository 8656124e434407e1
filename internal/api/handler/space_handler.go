package handler

import (
	"errors"
	"net/http"
	"strconv"

	"parking_reservation/internal/domain"
	"parking_reservation/internal/repository"
	"parking_reservation/internal/service"

	"github.com/gin-gonic/gin"
)

type SpaceHandler struct {
	registry *service.RegistryService
}

func NewSpaceHandler(registry *service.RegistryService) *SpaceHandler {
	return &SpaceHandler{registry: registry}
}

// POST /spaces
func (h *SpaceHandler) CreateSpace(c *gin.Context) {
	var dto domain.ParkingSpaceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	space, err := h.registry.CreateSpace(c.Request.Context(), dto)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, space)
}

// GET /spaces
func (h *SpaceHandler) ListSpaces(c *gin.Context) {
	spaces, err := h.registry.ListSpaces(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list spaces"})
		return
	}
	c.JSON(http.StatusOK, spaces)
}

// GET /spaces/:id
func (h *SpaceHandler) GetSpace(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid space id"})
		return
	}

	space, err := h.registry.GetSpace(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "space not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch space"})
		return
	}
	c.JSON(http.StatusOK, space)
}

// PUT /spaces/:id/status
func (h *SpaceHandler) SetSpaceStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid space id"})
		return
	}

	var dto domain.SpaceStatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	space, err := h.registry.SetSpaceStatus(c.Request.Context(), id, domain.SpaceStatus(dto.Status))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "space not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, space)
}
