package main

import (
	"context"
	"database/sql"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/strikeoutcenter/propsfeed/internal/export"
	"github.com/strikeoutcenter/propsfeed/internal/feed"
	"github.com/strikeoutcenter/propsfeed/internal/history"
	"github.com/strikeoutcenter/propsfeed/internal/oddsapi"
	"github.com/strikeoutcenter/propsfeed/internal/publish"
	sharedcache "github.com/strikeoutcenter/propsfeed/internal/shared/cache"
	"github.com/strikeoutcenter/propsfeed/internal/shared/config"
	"github.com/strikeoutcenter/propsfeed/internal/shared/db"
	"github.com/strikeoutcenter/propsfeed/internal/shared/logger"
	"github.com/strikeoutcenter/propsfeed/internal/shared/metrics"
	"github.com/strikeoutcenter/propsfeed/pkg/contracts/events"
)

func main() {
	cfg := config.Load()
	svc := cfg.ServiceName
	if svc == "" {
		svc = "feed-publisher"
	}

	log, err := logger.New(svc, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.OddsAPIKey == "" {
		log.Fatal("ODDS_API_KEY not set")
	}

	loc, err := time.LoadLocation(cfg.FeedTimezone)
	if err != nil {
		log.Fatal("invalid feed timezone", zap.String("tz", cfg.FeedTimezone), zap.Error(err))
	}

	fetcher := &feed.Fetcher{
		Client: oddsapi.New(cfg.OddsAPIBaseURL, cfg.OddsAPIKey, cfg.OddsRegions, log),
		Sport:  cfg.Sport,
		Market: cfg.OddsMarket,
		Loc:    loc,
		Log:    log,
	}
	writer := &export.Writer{Dir: cfg.PublicDir, Log: log}

	// Feed cache: Redis when configured, local files otherwise. Either way
	// the day's props survive books pulling lines once games go live.
	var redisClient *redis.Client
	var store feed.Store
	if cfg.RedisAddr != "" {
		redisClient, err = sharedcache.ConnectRedis(cfg.RedisAddr)
		if err != nil {
			log.Fatal("redis connect", zap.Error(err))
		}
		defer redisClient.Close()
		store = feed.NewRedisStore(redisClient, 48*time.Hour)
	} else {
		store = feed.NewFileStore(".feedcache")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Line-movement history, only when a DSN is provided.
	var pg *sql.DB
	var repo *history.Repo
	if cfg.PostgresDSN != "" {
		pg, err = db.ConnectPostgres(cfg.PostgresDSN)
		if err != nil {
			log.Fatal("postgres connect", zap.Error(err))
		}
		defer pg.Close()

		repo = history.NewRepo(pg)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal("props schema", zap.Error(err))
		}
	}

	var pub *publish.KafkaPublisher
	if cfg.KafkaBrokers != "" {
		pub = publish.NewKafkaPublisher(strings.Split(cfg.KafkaBrokers, ","), cfg.TopicFeedRefreshed, log)
		defer pub.Close()
	}

	refreshes := prometheus.NewCounter(prometheus.CounterOpts{Name: "feed_refreshes_total", Help: "successful feed refreshes"})
	gamesFetched := prometheus.NewCounter(prometheus.CounterOpts{Name: "feed_games_fetched_total", Help: "games seen on the schedule"})
	propsBuilt := prometheus.NewCounter(prometheus.CounterOpts{Name: "feed_props_built_total", Help: "pitcher props published"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "feed_errors_total", Help: "errors by stage"}, []string{"stage"})
	prometheus.MustRegister(refreshes, gamesFetched, propsBuilt, errorsBy)

	runOnce := func(ctx context.Context) error {
		fresh, err := fetcher.FetchDay(ctx)
		if err != nil {
			errorsBy.WithLabelValues("fetch").Inc()
			return err
		}
		gamesFetched.Add(float64(fresh.Summary.TotalGames))

		date := fresh.Metadata.Date
		cached, err := store.Load(ctx, date)
		if err != nil {
			log.Warn("feed cache load failed", zap.Error(err))
			errorsBy.WithLabelValues("cache_load").Inc()
		}
		merged := feed.MergeWithCached(fresh, cached, time.Now())

		if err := store.Save(ctx, date, merged); err != nil {
			log.Warn("feed cache save failed", zap.Error(err))
			errorsBy.WithLabelValues("cache_save").Inc()
		}

		if _, err := writer.WriteAll(merged); err != nil {
			errorsBy.WithLabelValues("write").Inc()
			return err
		}
		propsBuilt.Add(float64(merged.Summary.TotalPitchers))

		if repo != nil {
			n, err := repo.RecordFeed(ctx, merged)
			if err != nil {
				// History is best-effort: a db hiccup must not block the feed.
				log.Warn("history record failed", zap.Error(err))
				errorsBy.WithLabelValues("history").Inc()
			} else {
				log.Debug("history recorded", zap.Int("props", n))
			}
		}

		if pub != nil {
			pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := pub.Publish(pctx, events.FeedRefreshed{
				Date:           date,
				GeneratedAt:    merged.Metadata.GeneratedAt,
				TotalGames:     merged.Summary.TotalGames,
				TotalPitchers:  merged.Summary.TotalPitchers,
				GamesWithProps: merged.Summary.GamesWithProps,
				PublicDir:      cfg.PublicDir,
				Source:         "feed-publisher",
			})
			cancel()
			if err != nil {
				errorsBy.WithLabelValues("publish").Inc()
			}
		}

		refreshes.Inc()
		log.Info("feed refreshed",
			zap.String("date", date),
			zap.Int("games", merged.Summary.TotalGames),
			zap.Int("pitchers", merged.Summary.TotalPitchers),
		)
		return nil
	}

	if cfg.RefreshInterval <= 0 {
		if err := runOnce(ctx); err != nil {
			log.Fatal("feed publish failed", zap.Error(err))
		}
		return
	}

	// Daemon mode: refresh on a fixed interval with metrics and health.
	healthFn := func(ctx context.Context) error {
		if redisClient != nil {
			if err := redisClient.Ping(ctx).Err(); err != nil {
				return err
			}
		}
		if pg != nil {
			if err := pg.PingContext(ctx); err != nil {
				return err
			}
		}
		return nil
	}
	metrics.StartMetricsServer(cfg.MetricsPort, healthFn)

	log.Info("feed-publisher started", zap.Duration("interval", cfg.RefreshInterval))

	if err := runOnce(ctx); err != nil {
		log.Error("feed refresh failed", zap.Error(err))
	}

	ticker := time.NewTicker(cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("feed-publisher stopped")
			return
		case <-ticker.C:
			if err := runOnce(ctx); err != nil {
				log.Error("feed refresh failed", zap.Error(err))
			}
		}
	}
}
