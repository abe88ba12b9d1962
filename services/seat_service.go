package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jefin3273/connect-crave/entity"
	"github.com/jefin3273/connect-crave/repository"
	"github.com/jefin3273/connect-crave/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Seat struct {
	Number   int  `json:"number"`
	Occupied bool `json:"occupied"`
}

type SeatSession struct {
	Reservation entity.SeatReservation `json:"reservation"`
	Token       string                 `json:"token"`
	ExpiresAt   time.Time              `json:"expiresAt"`
}

type SeatService struct {
	Repo  *repository.SeatRepository
	Carts *CartService // nil skips cart teardown
	QR    utils.QRGenerator
	Log   *zap.Logger

	Secret     string
	TTL        time.Duration
	TotalSeats int
	Now        func() time.Time
}

func NewSeatService(repo *repository.SeatRepository, carts *CartService, qr utils.QRGenerator, log *zap.Logger, secret string, ttl time.Duration, total int) *SeatService {
	return &SeatService{
		Repo: repo, Carts: carts, QR: qr, Log: log,
		Secret: secret, TTL: ttl, TotalSeats: total, Now: time.Now,
	}
}

func (s *SeatService) inRange(seat int) bool {
	return seat >= 1 && seat <= s.TotalSeats
}

// expire frees reservations whose token can no longer be used.
func (s *SeatService) expire(ctx context.Context) error {
	if s.TTL <= 0 {
		return nil
	}
	released, err := s.Repo.ReleaseExpired(ctx, s.now().Add(-s.TTL), s.now())
	if err != nil {
		return err
	}
	for _, id := range released {
		if s.Carts != nil {
			s.Carts.Drop(id)
		}
	}
	if len(released) > 0 {
		s.Log.Info("expired seat sessions released", zap.Int("count", len(released)))
	}
	return nil
}

func (s *SeatService) List(ctx context.Context) ([]Seat, error) {
	if err := s.expire(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	occupied, err := s.Repo.OccupiedSeats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	taken := make(map[int]bool, len(occupied))
	for _, n := range occupied {
		taken[n] = true
	}

	seats := make([]Seat, 0, s.TotalSeats)
	for n := 1; n <= s.TotalSeats; n++ {
		seats = append(seats, Seat{Number: n, Occupied: taken[n]})
	}
	return seats, nil
}

// Reserve opens a seat session and returns its signed token.
func (s *SeatService) Reserve(ctx context.Context, seat int) (*SeatSession, error) {
	if !s.inRange(seat) {
		return nil, fmt.Errorf("%w: %d", ErrSeatOutOfRange, seat)
	}
	if err := s.expire(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	res := entity.SeatReservation{SeatNumber: seat, CreatedAt: s.now()}
	if err := s.Repo.Create(ctx, &res); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %d", ErrSeatOccupied, seat)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	token, err := utils.GenerateSeatToken(res.ID, seat, s.Secret, res.CreatedAt, s.TTL)
	if err != nil {
		return nil, err
	}
	return &SeatSession{Reservation: res, Token: token, ExpiresAt: res.CreatedAt.Add(s.TTL)}, nil
}

// Authenticate turns a seat token into a Scope. Released sessions are rejected.
func (s *SeatService) Authenticate(ctx context.Context, token string) (Scope, error) {
	claims, err := utils.ParseSeatToken(token, s.Secret)
	if err != nil {
		return Scope{}, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	res, err := s.Repo.FindActive(ctx, claims.SessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Scope{}, ErrSessionNotFound
	}
	if err != nil {
		return Scope{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return Scope{SessionID: res.ID, SeatNumber: res.SeatNumber}, nil
}

// Release frees the seat and drops the session's cart.
func (s *SeatService) Release(ctx context.Context, sessionID string) error {
	ok, err := s.Repo.Release(ctx, sessionID, s.now())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	if s.Carts != nil {
		s.Carts.Drop(sessionID)
	}
	return nil
}

func (s *SeatService) QRCode(seat int) ([]byte, error) {
	if !s.inRange(seat) {
		return nil, fmt.Errorf("%w: %d", ErrSeatOutOfRange, seat)
	}
	return s.QR.SeatPNG(seat)
}

func (s *SeatService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
