package handler

import (
	"errors"
	"net/http"
	"strconv"

	"parking_reservation/internal/api/middleware"
	"parking_reservation/internal/domain"
	"parking_reservation/internal/repository"
	"parking_reservation/internal/service"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	scheduler *service.SchedulerService
}

func NewReservationHandler(scheduler *service.SchedulerService) *ReservationHandler {
	return &ReservationHandler{scheduler: scheduler}
}

// POST /reservations
func (h *ReservationHandler) Book(c *gin.Context) {
	ownerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
		return
	}

	var dto domain.BookingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.scheduler.Book(c.Request.Context(), ownerID, dto)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrOverlap):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "space not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create reservation", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /reservations?all=true
func (h *ReservationHandler) ListMine(c *gin.Context) {
	ownerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
		return
	}

	onlyActive := c.Query("all") != "true"
	reservations, err := h.scheduler.ListForOwner(c.Request.Context(), ownerID, onlyActive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list reservations"})
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// POST /reservations/:id/cancel
func (h *ReservationHandler) Cancel(c *gin.Context) {
	requesterID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation id"})
		return
	}

	if err := h.scheduler.Cancel(c.Request.Context(), id, requesterID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrTooLate), errors.Is(err, service.ErrAlreadyCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not cancel reservation", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
