package main

import (
	"ListKeeper/internal/config"
	"ListKeeper/internal/handlers"
	"ListKeeper/internal/middleware"
	"ListKeeper/internal/repo"
	"ListKeeper/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	store, err := newImageStorage(ctx, cfg, gormDB, sugar)
	if err != nil {
		sugar.Fatalw("failed to initialize image storage", "error", err)
	}

	userService := service.NewUserService(repo.NewUserRepository(gormDB))
	listService := service.NewListService(repo.NewListRepository(gormDB), sugar)
	imageService := service.NewImageService(store, cfg.PublicURL, sugar)

	h := handlers.NewHandler(userService, listService, imageService, sugar, cfg)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sugar.Infow("Starting server",
		"addr", cfg.BaseURL,
		"public_url", cfg.PublicURL,
		"EnableHTTPS", cfg.EnableHTTPS,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		sugar.Infow("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		sugar.Errorw("Server failed", "error", err)
		os.Exit(1)
	}
}
