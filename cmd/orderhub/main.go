package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/orderhub/internal/config"
	"github.com/deppfellow/orderhub/internal/handler"
	"github.com/deppfellow/orderhub/internal/logger"
	"github.com/deppfellow/orderhub/internal/middleware"
	"github.com/deppfellow/orderhub/internal/repository"
	"github.com/deppfellow/orderhub/internal/router"
	"github.com/deppfellow/orderhub/internal/seed"
	"github.com/deppfellow/orderhub/internal/server"
	"github.com/deppfellow/orderhub/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	if _, err := seed.Load(context.Background(), srv.DB.DB, cfg.Seed, &log); err != nil {
		log.Fatal().Err(err).Msg("failed to seed store")
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers, middleware.NewMiddlewares(srv))

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
