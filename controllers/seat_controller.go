package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jefin3273/connect-crave/pkg/resp"
	"github.com/jefin3273/connect-crave/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgInvalidSeat      = "Invalid seat number"
	msgSeatOccupied     = "Seat is already occupied"
	msgFetchSeatsFailed = "Failed to fetch seats"
	msgReserveFailed    = "Failed to reserve seat"
	msgReleaseFailed    = "Failed to release seat"
	msgSessionNotFound  = "Seat session not found"
	msgQRCodeFailed     = "Failed to render QR code"
)

type SeatController struct {
	Seats *services.SeatService
	Log   *zap.Logger
}

func NewSeatController(seats *services.SeatService, log *zap.Logger) *SeatController {
	return &SeatController{Seats: seats, Log: log}
}

func seatParam(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("number"))
	return n, err == nil
}

// GET /seats
func (sc *SeatController) List(c *gin.Context) {
	seats, err := sc.Seats.List(c.Request.Context())
	if err != nil {
		resp.ServerError(c, sc.Log, msgFetchSeatsFailed, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	resp.OK(c, seats)
}

// POST /seats/:number/reservations
func (sc *SeatController) Reserve(c *gin.Context) {
	n, ok := seatParam(c)
	if !ok {
		resp.BadRequest(c, msgInvalidSeat)
		return
	}
	sess, err := sc.Seats.Reserve(c.Request.Context(), n)
	switch {
	case errors.Is(err, services.ErrSeatOutOfRange):
		resp.BadRequest(c, msgInvalidSeat)
		return
	case errors.Is(err, services.ErrSeatOccupied):
		resp.Conflict(c, msgSeatOccupied)
		return
	case err != nil:
		resp.ServerError(c, sc.Log, msgReserveFailed, err)
		return
	}
	resp.Created(c, sess)
}

// DELETE /seats/session
func (sc *SeatController) Release(c *gin.Context) {
	err := sc.Seats.Release(c.Request.Context(), scopeOf(c).SessionID)
	if errors.Is(err, services.ErrSessionNotFound) {
		resp.NotFound(c, msgSessionNotFound)
		return
	}
	if err != nil {
		resp.ServerError(c, sc.Log, msgReleaseFailed, err)
		return
	}
	resp.NoContent(c)
}

// GET /seats/:number/qr
func (sc *SeatController) QRCode(c *gin.Context) {
	n, ok := seatParam(c)
	if !ok {
		resp.BadRequest(c, msgInvalidSeat)
		return
	}
	png, err := sc.Seats.QRCode(n)
	if errors.Is(err, services.ErrSeatOutOfRange) {
		resp.BadRequest(c, msgInvalidSeat)
		return
	}
	if err != nil {
		resp.ServerError(c, sc.Log, msgQRCodeFailed, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", png)
}
