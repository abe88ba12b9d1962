package utils

import "github.com/gin-gonic/gin"

const (
	ctxSessionID = "seatSessionId"
	ctxSeat      = "seatNumber"
)

func SetSeatSession(c *gin.Context, sessionID string, seat int) {
	c.Set(ctxSessionID, sessionID)
	c.Set(ctxSeat, seat)
}

// CurrentSessionID is empty when the request carried no seat token.
func CurrentSessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}

func CurrentSeat(c *gin.Context) int {
	return c.GetInt(ctxSeat)
}
