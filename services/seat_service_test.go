package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jefin3273/connect-crave/configs"
	"github.com/jefin3273/connect-crave/pkg/cart"
	"github.com/jefin3273/connect-crave/pkg/discount"
	"github.com/jefin3273/connect-crave/repository"
	"github.com/jefin3273/connect-crave/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func newSeatService(t *testing.T) (*SeatService, *CartService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	carts := NewCartService(newOrderService(db, configs.VisibilitySession, nil), discount.NewCatalog(discount.DefaultPartners()...))
	seats := NewSeatService(repository.NewSeatRepository(db), carts,
		utils.SeatQR{BaseURL: "http://court.test"}, zap.NewNop(), testSecret, time.Hour, 10)
	return seats, carts, db
}

func TestSeatService_ReserveAndList(t *testing.T) {
	seats, _, _ := newSeatService(t)

	sess, err := seats.Reserve(context.Background(), 3)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, 3, sess.Reservation.SeatNumber)

	list, err := seats.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 10)
	assert.Equal(t, 1, list[0].Number)
	assert.True(t, list[2].Occupied)
	assert.False(t, list[3].Occupied)
}

func TestSeatService_Reserve_Errors(t *testing.T) {
	seats, _, _ := newSeatService(t)
	_, err := seats.Reserve(context.Background(), 5)
	require.NoError(t, err)

	tests := []struct {
		name        string
		seat        int
		expectedErr error
	}{
		{name: "occupied", seat: 5, expectedErr: ErrSeatOccupied},
		{name: "zero", seat: 0, expectedErr: ErrSeatOutOfRange},
		{name: "beyond_total", seat: 11, expectedErr: ErrSeatOutOfRange},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := seats.Reserve(context.Background(), testCase.seat)
			assert.ErrorIs(t, err, testCase.expectedErr)
		})
	}
}

func TestSeatService_AuthenticateAndRelease(t *testing.T) {
	seats, carts, _ := newSeatService(t)
	sess, err := seats.Reserve(context.Background(), 4)
	require.NoError(t, err)

	scope, err := seats.Authenticate(context.Background(), sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.Reservation.ID, scope.SessionID)
	assert.Equal(t, 4, scope.SeatNumber)

	_, err = carts.Add(scope.SessionID, cart.Item{Name: "Thali", Price: dec("5"), Quantity: 1, RestaurantID: 1})
	require.NoError(t, err)

	require.NoError(t, seats.Release(context.Background(), scope.SessionID))
	assert.Equal(t, 0, carts.Sessions())

	_, err = seats.Authenticate(context.Background(), sess.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound, "released sessions cannot be reused")
	assert.ErrorIs(t, seats.Release(context.Background(), scope.SessionID), ErrSessionNotFound)

	again, err := seats.Reserve(context.Background(), 4)
	require.NoError(t, err, "a released seat can be reserved again")
	assert.NotEqual(t, sess.Reservation.ID, again.Reservation.ID)
}

func TestSeatService_Authenticate_BadToken(t *testing.T) {
	seats, _, _ := newSeatService(t)
	forged, err := utils.GenerateSeatToken("sess", 1, "other-secret", time.Now(), time.Hour)
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", forged} {
		_, err := seats.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	}
}

func TestSeatService_ExpiredReservationsAreReleased(t *testing.T) {
	seats, _, _ := newSeatService(t)
	now := time.Now()
	seats.Now = func() time.Time { return now }
	_, err := seats.Reserve(context.Background(), 2)
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	list, err := seats.List(context.Background())
	require.NoError(t, err)
	assert.False(t, list[1].Occupied)

	_, err = seats.Reserve(context.Background(), 2)
	assert.NoError(t, err)
}

func TestSeatService_QRCode(t *testing.T) {
	seats, _, _ := newSeatService(t)

	png, err := seats.QRCode(7)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = seats.QRCode(99)
	assert.ErrorIs(t, err, ErrSeatOutOfRange)
}
