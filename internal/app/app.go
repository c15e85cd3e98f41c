package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefx/internal/adapters"
	"storefx/internal/adapters/cache"
	"storefx/internal/adapters/httpclient"
	"storefx/internal/adapters/notify"
	"storefx/internal/adapters/postgres"
	"storefx/internal/api"
	"storefx/internal/config"
	"storefx/internal/domain"
	"storefx/internal/metrics"
	"storefx/internal/platform/db"
	httpserver "storefx/internal/platform/http"
	"storefx/internal/rate"
	"storefx/internal/rate/handler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts the rate synchronizer and the HTTP server
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations, initial read)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	// Rate source
	var (
		source adapters.RateSource
		writer adapters.RateWriter
	)
	switch appCfg.RateSource.Kind {
	case config.SourcePostgres:
		pool, poolErr := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
		if poolErr != nil {
			logrus.WithError(poolErr).Error("Error connecting to db")
			return poolErr
		}
		defer pool.Close()
		logrus.Info("✅ Postgres connection successful")

		if migrateErr := db.Migrate(startupCtx, pool); migrateErr != nil {
			logrus.WithError(migrateErr).Error("Failed to apply migrations")
			return migrateErr
		}
		repo := postgres.NewExchangeRateRepository(pool)
		source, writer = repo, repo
	case config.SourceHTTP:
		httpTimeout := appCfg.HTTPClient.Timeout()
		if httpTimeout <= 0 {
			httpTimeout = 10 * time.Second
		}
		source = httpclient.NewExchangeRateClient(&http.Client{Timeout: httpTimeout}, appCfg.RateSource.UpstreamURL)
		logrus.Infof("✅ Reading exchange rates from %s", appCfg.RateSource.UpstreamURL)
	default:
		return fmt.Errorf("unknown rate source %q", appCfg.RateSource.Kind)
	}
	coalesced := rate.NewCoalescedSource(source)

	// Projection cache is dropped on every rate change
	projectionCache, err := cache.NewProjectionCache(appCfg.ProjectionCache.MaxItems)
	if err != nil {
		return err
	}
	defer projectionCache.Close()

	// Change notifiers
	hub := notify.NewHub()
	defer hub.Close()
	notifiers := notify.Fanout{
		notify.LogNotifier{},
		notify.Func(func(domain.RateChange) { projectionCache.Clear() }),
		hub,
	}
	if appCfg.Kafka.Enabled {
		kafkaNotifier := notify.NewKafkaNotifier(appCfg.Kafka.Brokers, appCfg.Kafka.Topic)
		defer func() {
			if closeErr := kafkaNotifier.Close(); closeErr != nil {
				logrus.Errorf("Kafka writer close error: %v", closeErr)
			}
		}()
		notifiers = append(notifiers, kafkaNotifier)
		logrus.Infof("✅ Publishing rate changes to kafka topic %s", appCfg.Kafka.Topic)
	}

	// Synchronizer
	synchronizer := rate.NewSynchronizer(
		coalesced,
		notifiers,
		nil,
		rate.NewGocronScheduler(),
		rate.WithInterval(appCfg.Synchronizer.Interval()),
		rate.WithMetrics(appMetrics),
	)
	hydrate(startupCtx, coalesced, synchronizer)
	// Ensure the synchronizer stops before the DB pool closes
	defer func() {
		if stopErr := synchronizer.Stop(); stopErr != nil {
			logrus.Errorf("Synchronizer shutdown error: %v", stopErr)
		}
	}()
	if startErr := synchronizer.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start synchronizer")
		return startErr
	}
	logrus.Infof("✅ Synchronizer polling every %s", synchronizer.Interval())

	// Pricing
	projector, err := rate.NewProjector(rate.ProjectorConfig{
		Locale:      appCfg.Pricing.Locale,
		LocalSymbol: appCfg.Pricing.LocalSymbol,
		USDLocale:   appCfg.Pricing.USDLocale,
		USDSymbol:   appCfg.Pricing.USDSymbol,
	})
	if err != nil {
		return err
	}
	validator := rate.NewValidator()

	// Handlers and router
	rateHandler := handler.NewRateHandler(
		synchronizer.Cache(),
		rate.NewCachedProjector(projector, projectionCache),
		validator,
		hub,
	)
	routerOpts := api.Options{
		Metrics:    appMetrics,
		Gatherer:   registry,
		AdminToken: appCfg.Admin.Token,
	}
	if writer != nil {
		adminService := rate.NewAdminService(writer, synchronizer, validator, coalesced)
		routerOpts.Admin = handler.NewAdminHandler(adminService, synchronizer.Cache())
		if appCfg.Admin.Token == "" {
			logrus.Warn("ADMIN_TOKEN is empty, admin routes are disabled")
		}
	}
	router := api.NewRouter(rateHandler, routerOpts)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router, hub.Close); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// hydrate seeds the cache with the active rate so the first requests are served before the first tick.
func hydrate(ctx context.Context, source adapters.RateSource, synchronizer *rate.Synchronizer) {
	active, err := source.GetActive(ctx)
	switch {
	case err == nil:
		synchronizer.Hydrate(&active)
		logrus.Info("✅ Exchange rate cache hydrated")
	case errors.Is(err, domain.ErrNoActiveRate):
		synchronizer.Hydrate(nil)
		logrus.Warn("No active exchange rate, prices are shown in USD only")
	default:
		logrus.WithError(err).Warn("Initial exchange rate read failed, waiting for the first refresh")
	}
}
