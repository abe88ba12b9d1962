// controllers/restaurant_controller.go
package controllers

import (
	"errors"
	"strconv"

	"github.com/jefin3273/connect-crave/entity"
	"github.com/jefin3273/connect-crave/pkg/discount"
	"github.com/jefin3273/connect-crave/pkg/resp"
	"github.com/jefin3273/connect-crave/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	msgFetchRestaurantsFailed = "Failed to fetch restaurants"
	msgRestaurantNotFound     = "Restaurant not found"
	cacheControlRestaurants   = "public, s-maxage=60, stale-while-revalidate=300"
)

type RestaurantController struct {
	Service  *services.RestaurantService
	Partners *discount.Catalog
	Log      *zap.Logger
}

func NewRestaurantController(s *services.RestaurantService, partners *discount.Catalog, log *zap.Logger) *RestaurantController {
	return &RestaurantController{Service: s, Partners: partners, Log: log}
}

// ====== Public: ดูร้านทั้งหมด ======

// GET /restaurants
func (ctl *RestaurantController) List(c *gin.Context) {
	rests, err := ctl.Service.List(c.Request.Context())
	if err != nil {
		resp.ServerError(c, ctl.Log, msgFetchRestaurantsFailed, err)
		return
	}
	if rests == nil {
		rests = []entity.Restaurant{}
	}
	c.Header("Cache-Control", cacheControlRestaurants)
	resp.OK(c, rests)
}

// ====== Public: ดูร้านเดี่ยว ======

// GET /restaurants/:id
func (ctl *RestaurantController) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		resp.NotFound(c, msgRestaurantNotFound)
		return
	}
	r, err := ctl.Service.Get(c.Request.Context(), uint(id))
	if errors.Is(err, services.ErrRestaurantNotFound) {
		resp.NotFound(c, msgRestaurantNotFound)
		return
	}
	if err != nil {
		resp.ServerError(c, ctl.Log, msgFetchRestaurantsFailed, err)
		return
	}
	c.Header("Cache-Control", cacheControlRestaurants)
	resp.OK(c, mapToRestaurantDetail(r))
}

// ====== Public: partner ที่ใช้แต้มแลกส่วนลดได้ ======

type PartnerResponse struct {
	discount.Partner
	MaxValue decimal.Decimal `json:"maxValue"`
}

// GET /partners
func (ctl *RestaurantController) ListPartners(c *gin.Context) {
	list := ctl.Partners.List()
	out := make([]PartnerResponse, 0, len(list))
	for _, p := range list {
		out = append(out, PartnerResponse{Partner: p, MaxValue: p.MaxValue()})
	}
	resp.OK(c, out)
}
