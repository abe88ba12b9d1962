package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jefin3273/connect-crave/pkg/resp"
	"github.com/jefin3273/connect-crave/services"
	"github.com/jefin3273/connect-crave/utils"

	"github.com/gin-gonic/gin"
)

type SeatAuthenticator interface {
	Authenticate(ctx context.Context, token string) (services.Scope, error)
}

// SeatSession ตรวจ token ของ seat session
// required=false ยอมให้ไม่มี token ได้ แต่ถ้าส่งมาต้องถูกต้อง
func SeatSession(auth SeatAuthenticator, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			if required {
				resp.Unauthorized(c, "Seat session required")
				return
			}
			c.Next()
			return
		}
		if !strings.HasPrefix(h, "Bearer ") {
			resp.Unauthorized(c, "Invalid seat session")
			return
		}

		scope, err := auth.Authenticate(c.Request.Context(), strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			if errors.Is(err, services.ErrPersistence) {
				resp.Error(c, http.StatusInternalServerError, "Failed to verify seat session")
				return
			}
			resp.Unauthorized(c, "Invalid seat session")
			return
		}

		utils.SetSeatSession(c, scope.SessionID, scope.SeatNumber)
		c.Next()
	}
}
