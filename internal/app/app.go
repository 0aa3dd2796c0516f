package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/storefront"
	"github.com/templui/storefront/internal/config"
	"github.com/templui/storefront/internal/db"
	"github.com/templui/storefront/internal/metrics"
	"github.com/templui/storefront/internal/middleware"
	"github.com/templui/storefront/internal/repository"
	"github.com/templui/storefront/internal/service"
	"github.com/templui/storefront/internal/service/payment"
	"github.com/templui/storefront/internal/storage"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	Metrics         *metrics.Metrics
	PaymentProvider payment.Provider
	EventService    *service.EventService
	CatalogService  *service.CatalogService
	CheckoutLimiter *middleware.RateLimiter
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(ctx, cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Repositories
	eventRepository := repository.NewEventRepository(database)
	customerStatusRepository := repository.NewCustomerStatusRepository(database)

	archive, err := storage.New(ctx, cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize event archive: %w", err)
	}

	m := metrics.New()

	paymentProvider, err := payment.NewProvider(cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize payment provider: %w", err)
	}

	catalogService, err := service.NewCatalogService(storefront.ContentFS, cfg.PlanPriceID)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return &App{
		Cfg:             cfg,
		DB:              database,
		Metrics:         m,
		PaymentProvider: paymentProvider,
		EventService:    service.NewEventService(eventRepository, customerStatusRepository, archive, m),
		CatalogService:  catalogService,
		CheckoutLimiter: middleware.NewRateLimiter(cfg.CheckoutRateLimit, time.Minute, cfg.TrustProxyHeaders),
	}, nil
}

func (a *App) Close() error {
	if a.CheckoutLimiter != nil {
		a.CheckoutLimiter.Close()
	}
	return db.Close(a.DB)
}
