package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/pribylovaa/go-social-platform/internal/auth"
	"github.com/pribylovaa/go-social-platform/internal/cache"
	"github.com/pribylovaa/go-social-platform/internal/config"
	"github.com/pribylovaa/go-social-platform/internal/fanout"
	"github.com/pribylovaa/go-social-platform/internal/service"
	"github.com/pribylovaa/go-social-platform/internal/storage/minio"
	"github.com/pribylovaa/go-social-platform/internal/storage/mongo"
	"github.com/pribylovaa/go-social-platform/internal/storage/postgres"
	httptransport "github.com/pribylovaa/go-social-platform/internal/transport/http"
	applog "github.com/pribylovaa/go-social-platform/pkg/log"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting posts-service", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	entities, err := mongo.New(rootCtx, cfg)
	if err != nil {
		log.Error("mongo_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := entities.Close(ctx); cerr != nil {
			log.Warn("mongo_close_failed", slog.String("err", cerr.Error()))
		}
	}()

	relations, err := postgres.New(rootCtx, cfg.Relations.URL)
	if err != nil {
		log.Error("postgres_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer relations.Close()

	var rdb *redis.Client
	if cfg.Redis.URL != "" {
		rdb, err = cache.NewRedisClient(rootCtx, cfg.Redis.URL)
		if err != nil {
			log.Error("redis_init_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		defer func() { _ = rdb.Close() }()
	}

	deps := service.Deps{
		Posts:         entities,
		Members:       entities,
		Channels:      cache.NewChannelDirectory(rdb, entities, cfg.Redis.ChannelTTL),
		ChannelStats:  entities,
		Topics:        entities,
		TopicMappings: entities,
		Notifications: entities,
		Relations:     relations,
	}
	if cfg.S3.Enabled {
		images, err := minio.New(rootCtx, cfg.S3)
		if err != nil {
			log.Error("s3_init_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		deps.Images = images
	}

	log.Info("storages_initialized", slog.Bool("redis", rdb != nil), slog.Bool("s3", cfg.S3.Enabled))

	outbox := fanout.NewOutbox(entities, service.NewExecutor(deps), cfg.Fanout)

	workersCtx, stopWorkers := context.WithCancel(applog.Into(context.Background(), log))
	workersDone := make(chan struct{})
	go func() {
		outbox.Run(workersCtx)
		close(workersDone)
	}()

	maint, err := fanout.NewMaintenance(entities, cfg.Fanout, log)
	if err != nil {
		log.Error("maintenance_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	maint.Start()

	svc := service.New(deps, outbox, *cfg)

	apiHandler := httptransport.NewRouter(svc, httptransport.Options{
		Logger:  log,
		Timeout: cfg.Timeouts.Service,
		Gate:    auth.NewGate(cfg.Auth),
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&ready) != 1 {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := entities.Ping(ctx); err != nil {
			http.Error(w, "mongo unavailable", http.StatusServiceUnavailable)
			return
		}
		if err := relations.Ping(ctx); err != nil {
			http.Error(w, "postgres unavailable", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.Handle("/", apiHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("posts_service_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	// Задачи уже в outbox: незавершённые шаги доберут воркеры после рестарта.
	maint.Stop()
	stopWorkers()
	<-workersDone
	outbox.Wait()
	log.Info("fanout_stopped")

	log.Info("service_stopped")
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
