// README: Entry point; loads config, wires services, starts the HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"wanderlust/internal/ai"
	"wanderlust/internal/config"
	httptransport "wanderlust/internal/http"
	"wanderlust/internal/imagegen"
	"wanderlust/internal/infra"
	"wanderlust/internal/logger"
	"wanderlust/internal/maps"
	"wanderlust/internal/modules/imagejob"
	"wanderlust/internal/modules/itinerary"
	"wanderlust/internal/modules/trip"
	"wanderlust/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, lg *zap.Logger) error {
	var store trip.Store = trip.NewMemoryStore()
	if cfg.Store.Driver == config.StorePostgres {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer dbPool.Close()
		store = trip.NewPostgresStore(dbPool)
	}
	tripSvc := trip.NewService(store, lg.Named("trip"))

	var ledger imagejob.Ledger = imagejob.NewMemoryLedger()
	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		ledger = imagejob.NewRedisLedger(redisClient)
	}

	llm, closeLLM, err := ai.NewFromConfig(ctx, cfg.AI)
	if err != nil {
		return err
	}
	defer func() { _ = closeLLM() }()

	routes := ai.NewRouteGenerator(llm, itinerary.NewRouteSchema(), itinerary.Fallback, lg.Named("route"))
	planner := service.NewTripPlanner(routes, tripSvc, lg.Named("planner"))

	imageCfg := cfg.Image
	imageCfg.ResultInterval = cfg.ResultInterval()
	horde := imagegen.NewClient(cfg.Horde.BaseURL, cfg.Horde.APIKey, cfg.Horde.ClientAgent)
	images := imagejob.NewOrchestrator(horde, tripSvc, ledger, imageCfg, lg.Named("imagejob"))

	deps := httptransport.RouterDeps{
		Planner:     planner,
		Images:      images,
		Trips:       tripSvc,
		ImageStatus: ledger,
		CORSOrigin:  cfg.CORS.AllowOrigin,
		Log:         lg.Named("http"),
	}
	if cfg.Maps.APIKey != "" {
		routeSvc, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			return err
		}
		placesSvc, err := maps.NewPlacesService(cfg.Maps.APIKey, lg.Named("places"))
		if err != nil {
			return err
		}
		deps.Directions = routeSvc
		deps.Places = placesSvc
	} else {
		lg.Info("GOOGLE_MAPS_API_KEY not set; directions and places endpoints disabled")
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httptransport.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server listening",
			zap.String("addr", cfg.HTTP.Addr),
			zap.String("store", cfg.Store.Driver),
			zap.String("ai_provider", cfg.AI.Provider),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Open image streams hold their request context; Shutdown waits for them
	// until the deadline, then Close cuts them.
	if err := server.Shutdown(shutdownCtx); err != nil {
		lg.Warn("graceful shutdown incomplete", zap.Error(err))
		_ = server.Close()
	}
	return nil
}
