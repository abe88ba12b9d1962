package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jefin3273/connect-crave/configs"
	"github.com/jefin3273/connect-crave/entity"
	"github.com/jefin3273/connect-crave/pkg/discount"
	"github.com/jefin3273/connect-crave/pkg/events"
	"github.com/jefin3273/connect-crave/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, configs.SetupDatabase(db))
	return db
}

// newFailingDB is a postgres-dialect gorm DB backed by sqlmock.
func newFailingDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, sm, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, sm
}

func seedRestaurant(t *testing.T, db *gorm.DB, name string, rating float64) entity.Restaurant {
	t.Helper()
	r := entity.Restaurant{Name: name, Rating: rating, Cuisine: "Test", Tags: []string{"test"}}
	require.NoError(t, db.Create(&r).Error)
	return r
}

// clock hands out strictly increasing times.
type clock struct{ t time.Time }

func newClock() *clock { return &clock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)} }

func (c *clock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newOrderService(db *gorm.DB, visibility string, pub events.Publisher) *OrderService {
	cfg := &configs.Config{OrderVisibility: visibility, OrderListLimit: 50}
	svc := NewOrderService(db, repository.NewOrderRepository(db),
		discount.NewCatalog(discount.DefaultPartners()...), pub, zap.NewNop(), cfg)
	svc.Now = newClock().Now
	return svc
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishOrderPlaced(ctx context.Context, msg events.OrderPlaced) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockPublisher) Close() error { return m.Called().Error(0) }
