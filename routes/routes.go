package routes

import (
	"github.com/jefin3273/connect-crave/configs"
	"github.com/jefin3273/connect-crave/controllers"
	"github.com/jefin3273/connect-crave/middlewares"
	"github.com/jefin3273/connect-crave/pkg/discount"
	"github.com/jefin3273/connect-crave/pkg/events"
	"github.com/jefin3273/connect-crave/repository"
	"github.com/jefin3273/connect-crave/services"
	"github.com/jefin3273/connect-crave/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the long-lived resources main opens. Redis and Publisher may be nil.
type Deps struct {
	Cfg       *configs.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Publisher events.Publisher
	Log       *zap.Logger
	Partners  *discount.Catalog
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middlewares.CORSMiddleware(d.Cfg.CORSOrigins))
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	partners := d.Partners
	if partners == nil {
		partners = discount.NewCatalog(discount.DefaultPartners()...)
	}

	// Repositories
	orderRepo := repository.NewOrderRepository(d.DB)
	restRepo := repository.NewRestaurantRepository(d.DB)
	seatRepo := repository.NewSeatRepository(d.DB)

	var restCache services.RestaurantCacher
	if d.Redis != nil {
		restCache = repository.NewRestaurantCache(d.Redis, d.Cfg.RestaurantCacheTTL+d.Cfg.RestaurantCacheStale)
	}

	// Services
	orderSvc := services.NewOrderService(d.DB, orderRepo, partners, d.Publisher, d.Log, d.Cfg)
	historySvc := services.NewOrderHistory(orderSvc)
	restSvc := services.NewRestaurantService(restRepo, restCache, d.Log, d.Cfg.RestaurantCacheTTL, d.Cfg.RestaurantCacheStale)
	cartSvc := services.NewCartService(orderSvc, partners)
	seatSvc := services.NewSeatService(seatRepo, cartSvc,
		utils.SeatQR{BaseURL: d.Cfg.PublicBaseURL}, d.Log,
		d.Cfg.JWTSecret, d.Cfg.SeatSessionTTL, d.Cfg.TotalSeats)

	// Controllers
	restCtrl := controllers.NewRestaurantController(restSvc, partners, d.Log)
	orderCtrl := controllers.NewOrderController(orderSvc, historySvc, d.Log)
	cartCtrl := controllers.NewCartController(cartSvc, d.Log)
	seatCtrl := controllers.NewSeatController(seatSvc, d.Log)

	optionalSeat := middlewares.SeatSession(seatSvc, false)
	requiredSeat := middlewares.SeatSession(seatSvc, true)

	// Public
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Get)
	r.GET("/partners", restCtrl.ListPartners)

	// Orders (seat token optional; GET is scoped by ORDER_VISIBILITY)
	o := r.Group("/orders", optionalSeat)
	{
		o.POST("", orderCtrl.Create)
		o.GET("", orderCtrl.List)
		o.GET("/history", orderCtrl.ListHistory)
		o.GET("/:id", orderCtrl.Detail)
		o.PATCH("/:id/status", orderCtrl.UpdateStatus)
	}

	// Seats
	s := r.Group("/seats")
	{
		s.GET("", seatCtrl.List)
		s.POST("/:number/reservations", seatCtrl.Reserve)
		s.GET("/:number/qr", seatCtrl.QRCode)
		s.DELETE("/session", requiredSeat, seatCtrl.Release)
	}

	// Cart (ต้องจองที่นั่งก่อน)
	cart := r.Group("/cart", requiredSeat)
	{
		cart.GET("", cartCtrl.Get)
		cart.DELETE("", cartCtrl.Clear)
		cart.POST("/items", cartCtrl.AddItem)
		cart.PATCH("/items/:id", cartCtrl.UpdateQty)
		cart.DELETE("/items/:id", cartCtrl.RemoveItem)
		cart.POST("/discount", cartCtrl.ApplyDiscount)
		cart.DELETE("/discount", cartCtrl.ClearDiscount)
		cart.POST("/checkout", cartCtrl.Checkout)
	}
}
