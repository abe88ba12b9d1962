package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SeatClaims เป็น claims ของ token ที่ออกให้ตอนจองที่นั่ง
type SeatClaims struct {
	SessionID string `json:"sid"`
	Seat      int    `json:"seat"`
	jwt.RegisteredClaims
}

// GenerateSeatToken สร้าง JWT สำหรับ seat session
func GenerateSeatToken(sessionID string, seat int, secret string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := &SeatClaims{
		SessionID: sessionID,
		Seat:      seat,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)), // อายุ token
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSeatToken ตรวจลายเซ็นและวันหมดอายุ
func ParseSeatToken(tokenStr, secret string) (*SeatClaims, error) {
	claims := &SeatClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.SessionID == "" {
		return nil, errors.New("invalid seat token")
	}
	return claims, nil
}
