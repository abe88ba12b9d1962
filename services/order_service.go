package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jefin3273/connect-crave/configs"
	"github.com/jefin3273/connect-crave/entity"
	"github.com/jefin3273/connect-crave/pkg/discount"
	"github.com/jefin3273/connect-crave/pkg/events"
	"github.com/jefin3273/connect-crave/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxOrderListLimit = 50

type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	Partners  *discount.Catalog
	Publisher events.Publisher // nil disables order events
	Log       *zap.Logger

	Visibility string
	ListLimit  int
	Now        func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	partners *discount.Catalog,
	pub events.Publisher,
	log *zap.Logger,
	cfg *configs.Config,
) *OrderService {
	return &OrderService{
		DB: db, Repo: repo, Partners: partners, Publisher: pub, Log: log,
		Visibility: cfg.OrderVisibility,
		ListLimit:  cfg.OrderListLimit,
		Now:        time.Now,
	}
}

// ----- DTOs from Controller -----
type OrderLineIn struct {
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	RestaurantID uint            `json:"restaurantId"`
}

func (l OrderLineIn) validate() error {
	switch {
	case strings.TrimSpace(l.Name) == "":
		return errors.New("name is required")
	case l.Price.IsNegative():
		return errors.New("price must not be negative")
	case !l.Price.Equal(l.Price.Round(2)):
		return errors.New("price must have at most 2 decimal places")
	case l.Quantity < 1:
		return errors.New("quantity must be at least 1")
	case l.RestaurantID == 0:
		return errors.New("restaurantId is required")
	}
	return nil
}

type DiscountIn struct {
	PartnerID string          `json:"partnerId"`
	Amount    decimal.Decimal `json:"amount"`
}

type CreateOrderReq struct {
	Items          []OrderLineIn `json:"items"`
	Discount       *DiscountIn   `json:"discount,omitempty"`
	IdempotencyKey string        `json:"idempotencyKey,omitempty"`
}

// OrderTotal is Σ price*quantity over the lines.
func OrderTotal(lines []OrderLineIn) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

type RestaurantGroup struct {
	RestaurantID uint
	Items        []entity.OrderItem
}

// GroupByRestaurant splits items per restaurant, in order of first appearance.
func GroupByRestaurant(items []entity.OrderItem) []RestaurantGroup {
	idx := map[uint]int{}
	var out []RestaurantGroup
	for _, it := range items {
		i, ok := idx[it.RestaurantID]
		if !ok {
			i = len(out)
			idx[it.RestaurantID] = i
			out = append(out, RestaurantGroup{RestaurantID: it.RestaurantID})
		}
		out[i].Items = append(out[i].Items, it)
	}
	return out
}

// ----- Create -----
func (s *OrderService) Create(ctx context.Context, scope Scope, req *CreateOrderReq) (*entity.Order, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items is required", ErrInvalidInput)
	}
	for i, l := range req.Items {
		if err := l.validate(); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrInvalidInput, i, err)
		}
	}

	total := OrderTotal(req.Items)
	order := entity.Order{
		Status:         entity.OrderStatusPending,
		TotalAmount:    total,
		DiscountAmount: decimal.Zero,
		CreatedAt:      s.now(),
	}

	if req.Discount != nil {
		p, err := s.Partners.Find(req.Discount.PartnerID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDiscount, err)
		}
		if err := discount.Validate(total, p, req.Discount.Amount); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDiscount, err)
		}
		pid := p.ID
		order.PartnerID = &pid
		order.DiscountAmount = req.Discount.Amount
	}

	if !scope.Anonymous() {
		sid, seat := scope.SessionID, scope.SeatNumber
		order.SessionID = &sid
		if seat > 0 {
			order.SeatNumber = &seat
		}
	}

	key := strings.TrimSpace(req.IdempotencyKey)
	if key != "" {
		existing, err := s.Repo.FindByIdempotencyKey(ctx, key)
		if err == nil {
			return s.replay(scope, existing)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
		}
		order.IdempotencyKey = &key
	}

	items := make([]entity.OrderItem, 0, len(req.Items))
	for i, l := range req.Items {
		items = append(items, entity.OrderItem{
			Position:     i,
			Name:         strings.TrimSpace(l.Name),
			Price:        l.Price,
			Quantity:     l.Quantity,
			RestaurantID: l.RestaurantID,
			CreatedAt:    order.CreatedAt,
		})
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		return s.Repo.CreateOrderItems(tx, items)
	})
	if err != nil {
		// lost a race against the same key
		if key != "" && errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, ferr := s.Repo.FindByIdempotencyKey(ctx, key); ferr == nil {
				return s.replay(scope, existing)
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}

	created, err := s.Repo.GetOrder(ctx, order.ID, repository.OrderFilter{})
	if err != nil {
		s.Log.Warn("re-read created order", zap.String("order_id", order.ID), zap.Error(err))
		order.OrderItems = items
		created = &order
	}

	s.publishPlaced(ctx, created)
	return created, nil
}

// replay returns the order already stored under an idempotency key, but only to
// the session that placed it.
func (s *OrderService) replay(scope Scope, existing *entity.Order) (*entity.Order, error) {
	if !scope.Owns(existing) {
		return nil, ErrIdempotencyConflict
	}
	return existing, nil
}

// publishPlaced sends one event per restaurant. Failures never fail the order.
func (s *OrderService) publishPlaced(ctx context.Context, o *entity.Order) {
	if s.Publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	for _, g := range GroupByRestaurant(o.OrderItems) {
		msg := events.OrderPlaced{
			Type:         events.TypeOrderPlaced,
			OrderID:      o.ID,
			RestaurantID: g.RestaurantID,
			SeatNumber:   o.SeatNumber,
			Subtotal:     decimal.Zero,
			PlacedAt:     o.CreatedAt,
		}
		for _, it := range g.Items {
			msg.Items = append(msg.Items, events.Line{ID: it.ID, Name: it.Name, Price: it.Price, Quantity: it.Quantity})
			msg.Subtotal = msg.Subtotal.Add(it.LineTotal())
		}
		if err := s.Publisher.PublishOrderPlaced(ctx, msg); err != nil {
			s.Log.Error("publish order placed",
				zap.String("order_id", o.ID),
				zap.Uint("restaurant_id", g.RestaurantID),
				zap.Error(err))
		}
	}
}

// ----- List & Detail -----
func (s *OrderService) List(ctx context.Context, scope Scope) ([]entity.Order, error) {
	f, err := s.filter(scope)
	if err != nil {
		return nil, err
	}
	orders, err := s.Repo.ListOrders(ctx, f, s.limit())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, scope Scope, id string) (*entity.Order, error) {
	f, err := s.filter(scope)
	if err != nil {
		return nil, err
	}
	o, err := s.Repo.GetOrder(ctx, id, f)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return o, nil
}

func (s *OrderService) filter(scope Scope) (repository.OrderFilter, error) {
	if s.Visibility == configs.VisibilityGlobal {
		return repository.OrderFilter{}, nil
	}
	if scope.Anonymous() {
		return repository.OrderFilter{}, ErrSessionRequired
	}
	return repository.OrderFilter{SessionID: scope.SessionID}, nil
}

func (s *OrderService) limit() int {
	if s.ListLimit <= 0 || s.ListLimit > maxOrderListLimit {
		return maxOrderListLimit
	}
	return s.ListLimit
}

func (s *OrderService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
