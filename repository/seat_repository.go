package repository

import (
	"context"
	"time"

	"github.com/jefin3273/connect-crave/entity"

	"gorm.io/gorm"
)

type SeatRepository struct {
	DB *gorm.DB
}

func NewSeatRepository(db *gorm.DB) *SeatRepository {
	return &SeatRepository{DB: db}
}

// Create relies on the unique active_seat index to reject a second live reservation.
func (r *SeatRepository) Create(ctx context.Context, res *entity.SeatReservation) error {
	seat := res.SeatNumber
	res.ActiveSeat = &seat
	return r.DB.WithContext(ctx).Create(res).Error
}

func (r *SeatRepository) FindActive(ctx context.Context, id string) (*entity.SeatReservation, error) {
	var res entity.SeatReservation
	err := r.DB.WithContext(ctx).
		Where("id = ? AND released_at IS NULL", id).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// OccupiedSeats returns the seat numbers with a live reservation.
func (r *SeatRepository) OccupiedSeats(ctx context.Context) ([]int, error) {
	var seats []int
	err := r.DB.WithContext(ctx).Model(&entity.SeatReservation{}).
		Where("released_at IS NULL").
		Pluck("seat_number", &seats).Error
	return seats, err
}

// Release frees the seat. It reports false when nothing was live under that id.
func (r *SeatRepository) Release(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&entity.SeatReservation{}).
		Where("id = ? AND released_at IS NULL", id).
		Updates(map[string]any{"active_seat": nil, "released_at": at})
	return res.RowsAffected == 1, res.Error
}

// ReleaseExpired frees live reservations created before cutoff and returns their ids.
func (r *SeatRepository) ReleaseExpired(ctx context.Context, cutoff, at time.Time) ([]string, error) {
	var ids []string
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.SeatReservation{}).
			Where("released_at IS NULL AND created_at < ?", cutoff).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Model(&entity.SeatReservation{}).
			Where("id IN ? AND released_at IS NULL", ids).
			Updates(map[string]any{"active_seat": nil, "released_at": at}).Error
	})
	return ids, err
}
