package main

import (
	"charmforge-be/internal/api"
	"charmforge-be/internal/catalog"
	"charmforge-be/internal/config"
	"charmforge-be/internal/coupon"
	"charmforge-be/internal/db"
	"charmforge-be/internal/logger"
	"charmforge-be/internal/notify"
	"charmforge-be/internal/order"
	"charmforge-be/internal/payment"
	"charmforge-be/internal/pricing"
	"charmforge-be/internal/shipping"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	ref := catalog.DefaultReference()

	productRepo := catalog.NewRepository(database)
	catalogSvc := catalog.NewService(productRepo, ref)

	couponRepo := coupon.NewRepository(database)
	couponSvc := coupon.NewService(couponRepo)

	engine := pricing.NewEngine(ref)
	calc := shipping.NewCalculator(cfg.FreeShippingThreshold, cfg.FlatShippingRate)
	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret)
	notifier := notify.NewDiscord(cfg.DiscordWebhookURL)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, productRepo, couponSvc, engine, calc, gateway, notifier, ref)

	router := api.NewRouter(api.Deps{
		Config:  cfg,
		Catalog: catalogSvc,
		Ref:     ref,
		Coupons: couponSvc,
		Orders:  orderSvc,
		Gateway: gateway,
	})

	logger.L().Info("server listening", zap.String("port", cfg.AppPort))
	if err := router.Run(":" + cfg.AppPort); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
