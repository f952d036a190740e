// @title Barkday API
// @version 1.0
// @description Edad del perro en dog-years por peso, próximo cumpleaños "dog-year", plan de recomendaciones por raza/grupo y regalos.
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"barkday/internal/adapters/auth/remote"
	"barkday/internal/adapters/giftfeed"
	"barkday/internal/adapters/refdata"
	pg "barkday/internal/adapters/storage/postgres"
	"barkday/internal/domain/gifts"
	"barkday/internal/domain/reference"
	"barkday/internal/platform/config"
	"barkday/internal/platform/logger"
	"barkday/internal/platform/metrics"
	"barkday/internal/ports/auth"
	"barkday/internal/router"

	_ "barkday/docs"

	"github.com/redis/go-redis/v9"
)

func main() {
	boot := logger.NewFromEnv()

	cfg, err := config.FromEnv()
	if err != nil {
		boot.Error("config error", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})

	err = run(cfg, log)
	if err != nil {
		log.Error("server error", map[string]any{"error": err})
	}
	if zl, ok := log.(*logger.ZapLogger); ok {
		_ = zl.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Reference data: HTTP si hay base_url, si no el directorio local.
	var src refdata.Source
	if cfg.Data.BaseURL != "" {
		hs, err := refdata.NewHTTPSource(cfg.Data.BaseURL, cfg.Data.Timeout)
		if err != nil {
			return err
		}
		src = hs
	} else {
		src = refdata.NewFileSource(cfg.Data.Dir)
	}

	store := reference.NewStore(nil)
	reloader := refdata.NewReloader(src, store, log.With(map[string]any{"component": "refdata"})).
		OnReload(func(res refdata.Result) { m.ReferenceReloaded(len(res.Failed)) })
	reloader.Reload(ctx)

	if cfg.Data.Watch && cfg.Data.BaseURL == "" {
		go func() {
			if err := reloader.Watch(ctx, cfg.Data.Dir); err != nil {
				log.Warn("reference watcher stopped", map[string]any{"error": err})
			}
		}()
	}

	// Feed de regalos, con cache en Redis si está configurado.
	var giftSrc gifts.Source
	if cfg.Gifts.File != "" {
		giftSrc = giftfeed.NewFileFeed(cfg.Gifts.File)
	} else {
		giftSrc = giftfeed.NewHTTPFeed(cfg.Gifts.FeedURL, cfg.Data.Timeout)
	}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		giftSrc = giftfeed.NewRedisCache(giftSrc, rdb, cfg.Gifts.CacheTTL, log.With(map[string]any{"component": "giftfeed"}))
	}

	opts := router.Options{
		Logger:     log,
		Metrics:    m,
		Store:      store,
		Reloader:   reloader,
		GiftSource: giftSrc,
	}

	if cfg.DB.DSN != "" {
		db, err := pg.Open(cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := pg.EnsureSchema(ctx, db); err != nil {
			return err
		}
		opts.DB = db
	}

	// sin verify_url queda en modo dev (X-Debug-User-ID)
	var verifier auth.AuthVerifier
	if cfg.Auth.VerifyURL != "" {
		verifier = remote.NewVerifier(remote.Config{
			VerifyURL: cfg.Auth.VerifyURL,
			APIKey:    cfg.Auth.APIKey,
			Timeout:   cfg.Auth.Timeout,
		})
	} else {
		log.Warn("auth verifier not configured, accepting X-Debug-User-ID", nil)
	}
	opts.AuthVerifier = verifier

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.HTTP.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
