// Package app wires configuration, storage, domain services and the HTTP
// server into a runnable application.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/order"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/pos"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/pricing"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/handler"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/repository"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/pkg/health"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/pkg/httpmiddleware"
)

// pricingPolicy parses the configured money constants into a pricing.Policy.
func pricingPolicy(cfg PricingConfig) (pricing.Policy, error) {
	threshold, err := decimal.NewFromString(cfg.FreeDeliveryThreshold)
	if err != nil {
		return pricing.Policy{}, errors.Wrap(err, "parse free delivery threshold")
	}
	fee, err := decimal.NewFromString(cfg.FlatDeliveryFee)
	if err != nil {
		return pricing.Policy{}, errors.Wrap(err, "parse flat delivery fee")
	}
	rate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return pricing.Policy{}, errors.Wrap(err, "parse tax rate")
	}
	return pricing.Policy{
		FreeDeliveryThreshold: threshold,
		FlatDeliveryFee:       fee,
		TaxRate:               rate,
		ClampTotal:            cfg.ClampTotal,
	}, nil
}

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// PostgreSQL pool + migrations.
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Repositories.
	menuRepo := repository.NewMenuRepository(pool)
	couponRepo := repository.NewCouponRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	staffKeyRepo := repository.NewStaffKeyRepository(pool)

	// Domain services.
	pricePolicy, err := pricingPolicy(cfg.Pricing)
	if err != nil {
		return err
	}
	orderService := order.NewService(menuRepo, couponRepo, orderRepo, pricePolicy,
		order.Policy{CancelWindow: cfg.Orders.CancelWindow})
	terminal := pos.NewTerminal(pricePolicy)

	// HTTP handlers.
	h := handler.New(
		handler.Config{ImageBaseURL: cfg.ImageBaseURL},
		menuRepo,
		couponRepo,
		orderService,
		terminal,
	)
	staffAuth := handler.NewStaffAuth(staffKeyRepo, []byte(cfg.StaffKeyPepper))

	api := otelhttp.NewHandler(h.Routes(staffAuth), "foodbuzz-api",
		otelhttp.WithTracerProvider(m.TracerProvider()),
		otelhttp.WithMeterProvider(m.MeterProvider()),
	)

	// Mux: health endpoints + API routes on one server.
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/api/", http.StripPrefix("/api", api))

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", "Authorization", "X-API-Key"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
