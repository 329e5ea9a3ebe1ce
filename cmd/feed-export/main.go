package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/strikeoutcenter/propsfeed/internal/feed"
	"github.com/strikeoutcenter/propsfeed/internal/oddsapi"
	"github.com/strikeoutcenter/propsfeed/internal/shared/config"
	"github.com/strikeoutcenter/propsfeed/internal/shared/logger"
)

func main() {
	out := flag.String("out", "", "output filename (default mlb_strikeout_props_<date>.json)")
	toStdout := flag.Bool("stdout", false, "print the feed to stdout instead of a file")
	prettySummary := flag.Bool("pretty-summary", false, "print a human summary after exporting")
	flag.Parse()

	cfg := config.Load()
	svc := cfg.ServiceName
	if svc == "" {
		svc = "feed-export"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	f, err := fetcher.FetchDay(ctx)
	if err != nil {
		log.Fatal("fetch feed", zap.Error(err))
	}

	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		log.Fatal("encode feed", zap.Error(err))
	}

	if *toStdout {
		fmt.Println(string(b))
		return
	}

	filename := *out
	if filename == "" {
		filename = fmt.Sprintf("mlb_strikeout_props_%s.json", f.Metadata.Date)
	}

	if err := os.WriteFile(filename, b, 0o644); err != nil {
		log.Fatal("write feed file", zap.String("file", filename), zap.Error(err))
	}

	fmt.Printf("JSON feed exported to: %s\n", filename)

	if *prettySummary {
		fmt.Println()
		fmt.Println("Summary:")
		fmt.Printf("  Total Games:      %d\n", f.Summary.TotalGames)
		fmt.Printf("  Games with Props: %d\n", f.Summary.GamesWithProps)
		fmt.Printf("  Total Pitchers:   %d\n", f.Summary.TotalPitchers)
		fmt.Printf("  Generated:        %s\n", f.Metadata.GeneratedAtFormatted)
	}
}
