package api

import (
	"charmforge-be/internal/catalog"
	"charmforge-be/internal/config"
	"charmforge-be/internal/coupon"
	"charmforge-be/internal/logger"
	"charmforge-be/internal/middleware"
	"charmforge-be/internal/order"
	"charmforge-be/internal/payment"
	"charmforge-be/internal/payment/webhook"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Config  *config.Config
	Catalog catalog.Service
	Ref     *catalog.Reference
	Coupons coupon.Service
	Orders  order.Service
	Gateway payment.Gateway
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.LoggingMiddleware())
	r.Use(middleware.RateLimit())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-ID")
	r.Use(cors.New(corsCfg))

	h := &handlers{deps: d}
	wh := webhook.NewHandler(d.Orders, d.Gateway)

	api := r.Group("/api")
	{
		api.GET("/catalog", h.GetCatalog)
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.POST("/coupons/validate", h.ValidateCoupon)
		api.POST("/checkout", h.Checkout)
		api.POST("/webhook/razorpay", wh.HandleRazorpay)

		api.POST("/admin/login", h.AdminLogin)

		admin := api.Group("/admin", middleware.AdminAuth(d.Config.AdminJWTSecret))
		{
			admin.GET("/orders", h.ListOrders)
			admin.GET("/orders/:id", h.GetOrder)
			admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)

			admin.GET("/coupons", h.ListCoupons)
			admin.POST("/coupons", h.CreateCoupon)
			admin.PUT("/coupons/:id", h.UpdateCoupon)
			admin.DELETE("/coupons/:id", h.DeleteCoupon)

			admin.POST("/products", h.CreateProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.PATCH("/products/:id/availability", h.SetProductAvailability)
		}
	}

	return r
}

type handlers struct {
	deps Deps
}
