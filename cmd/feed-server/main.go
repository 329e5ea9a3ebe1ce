package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/strikeoutcenter/propsfeed/internal/server"
	"github.com/strikeoutcenter/propsfeed/internal/shared/config"
	"github.com/strikeoutcenter/propsfeed/internal/shared/logger"
	"github.com/strikeoutcenter/propsfeed/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	svc := cfg.ServiceName
	if svc == "" {
		svc = "feed-server"
	}

	log, err := logger.New(svc, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return nil // static files only; serving at all means healthy
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: server.Router(cfg.PublicDir),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("feed-server listening",
			zap.String("addr", srv.Addr),
			zap.String("dir", cfg.PublicDir),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	log.Info("feed-server stopped")
}
