package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jefin3273/connect-crave/entity"
	"github.com/jefin3273/connect-crave/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// RestaurantCacher stores the rating-ordered listing. *repository.RestaurantCache implements it.
type RestaurantCacher interface {
	Get(ctx context.Context) (*repository.RestaurantSnapshot, error)
	Set(ctx context.Context, snap *repository.RestaurantSnapshot) error
}

type RestaurantService struct {
	Repo  *repository.RestaurantRepository
	Cache RestaurantCacher // nil serves every call from the database
	Log   *zap.Logger

	Fresh time.Duration // snapshot served as-is
	Stale time.Duration // snapshot served while a refresh runs
	Now   func() time.Time

	group singleflight.Group
}

func NewRestaurantService(repo *repository.RestaurantRepository, cache RestaurantCacher, log *zap.Logger, fresh, stale time.Duration) *RestaurantService {
	return &RestaurantService{Repo: repo, Cache: cache, Log: log, Fresh: fresh, Stale: stale, Now: time.Now}
}

// ดึงร้านทั้งหมด เรียงตาม rating
func (s *RestaurantService) List(ctx context.Context) ([]entity.Restaurant, error) {
	if s.Cache == nil {
		return s.refresh(ctx)
	}

	snap, err := s.Cache.Get(ctx)
	if err != nil {
		s.Log.Warn("restaurant cache read failed", zap.Error(err))
		return s.refresh(ctx)
	}
	if snap != nil {
		age := s.now().Sub(snap.FetchedAt)
		switch {
		case age < s.Fresh:
			return snap.Restaurants, nil
		case age < s.Fresh+s.Stale:
			s.refreshInBackground()
			return snap.Restaurants, nil
		}
	}
	return s.refresh(ctx)
}

// refresh loads from the database and rewrites the snapshot. Concurrent callers share one load.
func (s *RestaurantService) refresh(ctx context.Context) ([]entity.Restaurant, error) {
	v, err, _ := s.group.Do("restaurants", func() (any, error) {
		rests, err := s.Repo.ListByRating(ctx)
		if err != nil {
			return nil, err
		}
		if s.Cache != nil {
			snap := &repository.RestaurantSnapshot{Restaurants: rests, FetchedAt: s.now()}
			if err := s.Cache.Set(ctx, snap); err != nil {
				s.Log.Warn("restaurant cache write failed", zap.Error(err))
			}
		}
		return rests, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return v.([]entity.Restaurant), nil
}

func (s *RestaurantService) refreshInBackground() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := s.refresh(ctx); err != nil {
			s.Log.Warn("background restaurant refresh failed", zap.Error(err))
		}
	}()
}

// ดึงร้านตาม ID พร้อมเมนูที่ยังขายอยู่
func (s *RestaurantService) Get(ctx context.Context, id uint) (*entity.Restaurant, error) {
	r, err := s.Repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return r, nil
}

func (s *RestaurantService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
