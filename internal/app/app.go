package app

import (
	"context"

	"energy-trading-backend/internal/application/listingevents"
	"energy-trading-backend/internal/application/registrar"
	"energy-trading-backend/internal/application/sellers"
	"energy-trading-backend/internal/application/trading"
	"energy-trading-backend/internal/config"
	"energy-trading-backend/internal/infrastructure/database"
	healthhandler "energy-trading-backend/internal/interfaces/handlers/health"
	listhandler "energy-trading-backend/internal/interfaces/handlers/listings"
	sellerhandler "energy-trading-backend/internal/interfaces/handlers/sellers"
	tradehandler "energy-trading-backend/internal/interfaces/handlers/trading"
	"energy-trading-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all global middleware, the store, and
// route registration. The returned DB and Redis client are surfaced so the
// entrypoint can verify connections and seed demo data.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opts)
	}

	app.Use(middleware.CORS(middleware.CORSConfig{AllowedSuffix: cfg.FrontendURLEndsWith}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.HealthMarker(rdb))

	var reg registrar.AssetRegistrar = registrar.Offline{}
	if cfg.RegistrarURL != "" {
		reg = registrar.NewClient(cfg.RegistrarURL, cfg.RegistrarAPIKey)
	}

	sellerService := &sellers.Service{DB: db, Registrar: reg}
	tradingService := &trading.Service{DB: db, Sellers: sellerService}
	eventService := &listingevents.Service{DB: db}

	healthHandlers := &healthhandler.Handlers{Rdb: rdb, DB: &gormDBPinger{db: db}}
	sellerHandlers := &sellerhandler.Handlers{Service: sellerService}
	listingHandlers := &listhandler.Handlers{Service: tradingService, Events: eventService}
	tradingHandlers := &tradehandler.Handlers{Service: tradingService}

	api := app.Group("/api")
	api.Get("/health", healthHandlers.Snapshot)
	api.Get("/health/stats", healthHandlers.Stats)

	api.Post("/sellers/register", sellerHandlers.Register)
	api.Get("/sellers", sellerHandlers.GetAll)
	api.Get("/sellers/:address", sellerHandlers.GetByAddress)
	api.Put("/sellers/:address", sellerHandlers.Update)
	api.Get("/sellers/:address/listings", listingHandlers.GetSellerListings)

	api.Post("/listings", listingHandlers.CreateListing)
	api.Get("/listings", listingHandlers.GetAllListings)
	api.Get("/listings/:listing_id", listingHandlers.GetListingByID)
	api.Get("/listings/:listing_id/events", listingHandlers.GetListingEvents)
	api.Post("/listings/:listing_id/cancel", listingHandlers.CancelListing)

	api.Post("/purchase", tradingHandlers.Purchase)
	api.Get("/purchases/:address", tradingHandlers.GetPurchaseHistory)
	api.Get("/stats/market", tradingHandlers.GetMarketStatistics)

	if cfg.SeedDemoData {
		// Seed failure is non-fatal; the API still serves an empty market.
		_ = SeedDemoData(context.Background(), sellerService, tradingService)
	}

	return app, db, rdb, nil
}
