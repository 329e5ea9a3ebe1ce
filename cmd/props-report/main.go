package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/strikeoutcenter/propsfeed/internal/feed"
	"github.com/strikeoutcenter/propsfeed/internal/oddsapi"
	"github.com/strikeoutcenter/propsfeed/internal/shared/config"
	"github.com/strikeoutcenter/propsfeed/internal/shared/logger"
)

// Console report of today's starting-pitcher strikeout props with consensus
// odds. The report itself goes to stdout; diagnostics go through the logger.
func main() {
	cfg := config.Load()
	svc := cfg.ServiceName
	if svc == "" {
		svc = "props-report"
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

	printReport(f)
}

func printReport(f *feed.Feed) {
	fmt.Println("MLB Strikeout Props - Today's Starting Pitchers")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Date: %s\n\n", f.Metadata.GeneratedAtFormatted)

	if f.Summary.TotalGames == 0 {
		fmt.Println("No MLB games found for today.")
		fmt.Println("This is normal during the off-season or on rest days.")
		return
	}

	if f.Summary.TotalPitchers == 0 {
		fmt.Printf("Found %d games, but no strikeout props posted yet.\n", f.Summary.TotalGames)
		fmt.Println("Props are usually available closer to game time.")
		return
	}

	for _, g := range f.Games {
		if len(g.Pitchers) == 0 {
			continue
		}

		fmt.Printf("%s\n", g.Matchup)
		fmt.Printf("    %s\n", g.GameTimeFormatted)
		fmt.Println("    " + strings.Repeat("-", 50))

		for _, p := range g.Pitchers {
			fmt.Printf("    %s\n", p.PitcherName)
			fmt.Printf("        Line: %g strikeouts\n", p.StrikeoutLine)
			fmt.Printf("        Over %g: %s  |  Under %g: %s\n",
				p.StrikeoutLine, p.ConsensusOdds.OverFormatted,
				p.StrikeoutLine, p.ConsensusOdds.UnderFormatted,
			)
			fmt.Printf("        (%d sportsbooks: %s)\n\n",
				p.SportsbookCount, strings.Join(p.Sportsbooks, ", "))
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Total Games: %d\n", f.Summary.TotalGames)
	fmt.Printf("Total Starting Pitchers: %d\n", f.Summary.TotalPitchers)
	fmt.Println()
	fmt.Println("Notes:")
	fmt.Println("  - Odds are consensus averages across available sportsbooks")
	fmt.Println("  - Primary line shown (most widely offered across books)")
	fmt.Println("  - Data updates throughout the day as games approach")
}
