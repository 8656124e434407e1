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

// GuardHandler exposes the gate workflow: plate validation on arrival,
// entry/exit registration and the in-progress departures board.
type GuardHandler struct {
	scheduler *service.SchedulerService
	tracker   *service.TrackerService
	clock     service.Clock
}

func NewGuardHandler(scheduler *service.SchedulerService, tracker *service.TrackerService, clock service.Clock) *GuardHandler {
	return &GuardHandler{scheduler: scheduler, tracker: tracker, clock: clock}
}

// POST /guard/validate-plate
func (h *GuardHandler) ValidatePlate(c *gin.Context) {
	var dto domain.PlateLookupDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.scheduler.FindActiveForPlate(c.Request.Context(), dto.Plate)
	if err != nil {
		if errors.Is(err, repository.ErrNoActiveReservation) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active reservation for this plate right now"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not validate plate"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /guard/reservations/:id/entry
func (h *GuardHandler) RecordEntry(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation id"})
		return
	}

	res, err := h.tracker.RecordEntry(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record entry", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /guard/reservations/:id/exit
func (h *GuardHandler) RecordExit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation id"})
		return
	}

	res, err := h.tracker.RecordExit(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		case errors.Is(err, service.ErrAlreadyCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record exit", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /guard/departures?date=2006-01-02 (defaults to today)
func (h *GuardHandler) ListDepartures(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = h.clock.Now().Format(domain.DateLayout)
	}

	reservations, err := h.tracker.ListInProgress(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list departures"})
		return
	}
	c.JSON(http.StatusOK, reservations)
}
