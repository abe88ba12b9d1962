package repository

import (
	"context"

	"github.com/jefin3273/connect-crave/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// OrderFilter scopes reads. Empty SessionID means no scoping.
type OrderFilter struct {
	SessionID string
}

func (f OrderFilter) apply(db *gorm.DB) *gorm.DB {
	if f.SessionID != "" {
		db = db.Where("session_id = ?", f.SessionID)
	}
	return db
}

// ---------------- Orders ----------------

// CreateOrder writes only the header row; items go through CreateOrderItems in the same tx.
func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Omit(clause.Associations).Create(o).Error
}

func (r *OrderRepository) CreateOrderItems(tx *gorm.DB, items []entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).Create(&items).Error
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("OrderItems.Restaurant", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name") })
}

// GetOrder loads one order with items and restaurant names.
func (r *OrderRepository) GetOrder(ctx context.Context, id string, f OrderFilter) (*entity.Order, error) {
	var o entity.Order
	q := f.apply(withItems(r.DB.WithContext(ctx))).Where("id = ?", id)
	if err := q.First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) FindByIdempotencyKey(ctx context.Context, key string) (*entity.Order, error) {
	var o entity.Order
	if err := withItems(r.DB.WithContext(ctx)).Where("idempotency_key = ?", key).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ListOrders returns the newest orders first, capped at limit.
func (r *OrderRepository) ListOrders(ctx context.Context, f OrderFilter, limit int) ([]entity.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []entity.Order
	err := f.apply(withItems(r.DB.WithContext(ctx))).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdateStatusGuard moves an order from one status to another. Zero rows affected
// means the order is missing or no longer in the expected status.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID string, from, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) GetStatus(tx *gorm.DB, orderID string) (entity.OrderStatus, error) {
	var row struct{ Status entity.OrderStatus }
	err := tx.Model(&entity.Order{}).Select("status").Where("id = ?", orderID).Take(&row).Error
	return row.Status, err
}
