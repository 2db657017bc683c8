package main

import (
	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/config"
	"github.com/yeremiapane/restaurant-pos/database"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/router"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

func main() {
	utils.InitLogger()
	cfg := config.Load()
	utils.SetLogLevel(cfg.LogLevel)
	utils.ConfigureJWT(cfg.JWTSecret, cfg.JWTTTL)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	if err := database.Seed(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed reference data: %v", err)
	}
	seed, err := database.LoadSeed(db)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load reference data: %v", err)
	}

	hub := kds.NewHub()
	floor := services.NewFloorService(seed, cfg.TaxRate, hub, utils.InfoLogger)

	r := router.SetupRouter(router.Deps{
		DB:             db,
		Floor:          floor,
		Hub:            hub,
		CurrencySymbol: cfg.CurrencySymbol,
		AllowedOrigin:  cfg.AllowedOrigin,
		RateLimiter:    middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		utils.ErrorLogger.Printf("Error setting trusted proxies: %v", err)
	}

	utils.InfoLogger.Printf("Listening on port %s (tax rate %.4f)", cfg.Port, cfg.TaxRate)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
