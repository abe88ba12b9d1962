package utils

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatToken_RoundTrip(t *testing.T) {
	token, err := GenerateSeatToken("sess-1", 12, "secret", time.Now(), time.Hour)
	require.NoError(t, err)

	claims, err := ParseSeatToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, 12, claims.Seat)
}

func TestSeatToken_Rejected(t *testing.T) {
	expired, err := GenerateSeatToken("sess-1", 12, "secret", time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	noSession, err := GenerateSeatToken("", 12, "secret", time.Now(), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "expired", token: expired, secret: "secret"},
		{name: "wrong_secret", token: noSession, secret: "other"},
		{name: "missing_session", token: noSession, secret: "secret"},
		{name: "garbage", token: "a.b.c", secret: "secret"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := ParseSeatToken(testCase.token, testCase.secret)
			assert.Error(t, err)
		})
	}
}

func TestSeatSessionContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, CurrentSessionID(c))
	assert.Zero(t, CurrentSeat(c))

	SetSeatSession(c, "sess-1", 9)
	assert.Equal(t, "sess-1", CurrentSessionID(c))
	assert.Equal(t, 9, CurrentSeat(c))
}

func TestSeatQR(t *testing.T) {
	g := SeatQR{BaseURL: "https://court.example"}
	assert.Equal(t, "https://court.example/?seat=42", g.URL(42))

	png, err := g.SeatPNG(42)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
