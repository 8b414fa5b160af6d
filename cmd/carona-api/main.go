// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carona/internal/ai"
	"carona/internal/config"
	httptransport "carona/internal/http"
	"carona/internal/logging"
	"carona/internal/maps"
	"carona/internal/modules/matching"
	"carona/internal/modules/rides"
	"carona/internal/modules/user"
	"carona/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.NewLogger(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rng *rand.Rand
	if cfg.Sim.RandomSeed != 0 {
		rng = rand.New(rand.NewSource(cfg.Sim.RandomSeed))
	}

	usersSvc := user.NewService(user.NewStore())
	ridesSvc := rides.NewService(rides.NewStore())
	matcherSvc := matching.NewService(cfg.Sim.MatchDelay, rng, logger)

	var summaries ai.SummaryProvider = ai.StaticProvider{}
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		summaries = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, trip summaries use the static fallback")
	}

	var routes session.RouteEstimator
	if cfg.Maps.APIKey != "" {
		rs, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		routes = rs
	} else {
		logger.Warn("MAPS_API_KEY not set, route estimates disabled")
	}

	sess := session.New(session.Config{
		SearchTimeout: cfg.Sim.SearchTimeout,
		TickInterval:  cfg.Sim.TickInterval,
		SettleDelay:   cfg.Sim.SettleDelay,
	}, session.Deps{
		Users:     usersSvc,
		Rides:     ridesSvc,
		Matcher:   matcherSvc,
		Summaries: summaries,
		Routes:    routes,
		Logger:    logger,
	})

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Session: sess,
		Logger:  logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
