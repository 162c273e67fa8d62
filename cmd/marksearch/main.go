package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/marksearch/internal/config"
	dbRedis "github.com/kailas-cloud/marksearch/internal/db/redis"
	"github.com/kailas-cloud/marksearch/internal/domain/ranking"
	logpkg "github.com/kailas-cloud/marksearch/internal/logger"
	"github.com/kailas-cloud/marksearch/internal/metrics"
	bookmarkrepo "github.com/kailas-cloud/marksearch/internal/repository/bookmark"
	"github.com/kailas-cloud/marksearch/internal/repository/chromefile"
	"github.com/kailas-cloud/marksearch/internal/repository/vocabcache"
	chiTransport "github.com/kailas-cloud/marksearch/internal/transport/chi"
	mcpTransport "github.com/kailas-cloud/marksearch/internal/transport/mcp"
	bookmarkuc "github.com/kailas-cloud/marksearch/internal/usecase/bookmark"
	healthuc "github.com/kailas-cloud/marksearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/marksearch/internal/usecase/search"
	"github.com/kailas-cloud/marksearch/internal/version"
)

// bookmarkSource is what every configured source driver provides.
type bookmarkSource interface {
	bookmarkuc.Repository
	healthuc.SourcePinger
}

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting marksearch",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("source", cfg.Source.Driver),
		zap.Int("workers", cfg.Ranking.Workers),
		zap.Bool("vocab_cache", cfg.Ranking.Cache.Enabled),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := openSource(ctx, cfg.Source, logger)
	if err != nil {
		logger.Fatal("Failed to open bookmark source", zap.Error(err))
	}
	defer closeSource()

	// Register ranking metrics explicitly (no init())
	metrics.RegisterRankingMetrics()

	rankOpts := []ranking.Option{ranking.WithWorkers(cfg.Ranking.Workers)}
	if cfg.Ranking.Cache.Enabled {
		rankOpts = append(rankOpts, ranking.WithCache(vocabcache.New(
			cfg.Ranking.Cache.MaxEntries,
			metrics.VocabCacheTotal,
			metrics.VocabCacheEntries,
			logger,
		)))
	}
	ranker := ranking.New(rankOpts...)

	bookmarkSvc := bookmarkuc.New(source)
	searchSvc := searchuc.New(source, cfg.Source.Driver, ranker)
	healthSvc := healthuc.New(source, cfg.Source.Driver)

	var mcpSrv *mcpTransport.Server
	if cfg.MCP.Enabled {
		mcpSrv, err = mcpTransport.NewServer(searchSvc, logger)
		if err != nil {
			logger.Fatal("Failed to create MCP server", zap.Error(err))
		}
	}

	// stdio mode owns stdin/stdout; no HTTP listener.
	if mcpSrv != nil && cfg.MCP.Transport == config.TransportStdio {
		if err := mcpSrv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("MCP stdio server error", zap.Error(err))
		}
		logger.Info("MCP stdio server stopped")
		return
	}

	server := chiTransport.NewServer(bookmarkSvc, searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)
	if mcpSrv != nil {
		r.Handle(cfg.MCP.Path, mcpSrv.Handler())
		logger.Info("MCP server mounted", zap.String("path", cfg.MCP.Path))
	}

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openSource builds the configured bookmark source. The returned func releases it.
func openSource(ctx context.Context, cfg config.SourceConfig, logger *zap.Logger) (bookmarkSource, func(), error) {
	switch cfg.Driver {
	case config.DriverFile:
		repo := chromefile.New(cfg.File.Path, time.Duration(cfg.File.DebounceMs)*time.Millisecond, logger)
		if err := repo.Load(ctx); err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", cfg.File.Path, err)
		}
		if cfg.File.Watch {
			go func() {
				if err := repo.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("Bookmarks file watcher stopped", zap.Error(err))
				}
			}()
		}
		logger.Info("Loaded bookmarks file", zap.String("path", cfg.File.Path), zap.Bool("watch", cfg.File.Watch))
		return repo, func() {}, nil

	case config.DriverRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Redis.Addrs,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create redis store: %w", err)
		}
		if err := store.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("redis not ready: %w", err)
		}
		logger.Info("Connected to redis", zap.Strings("addrs", cfg.Redis.Addrs))
		return bookmarkrepo.New(store, cfg.Redis.KeyPrefix), store.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown source driver %q", cfg.Driver)
}
