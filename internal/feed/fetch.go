package feed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/strikeoutcenter/propsfeed/internal/oddsapi"
	"github.com/strikeoutcenter/propsfeed/internal/props"
)

// Fetcher pulls the day's schedule and per-game market odds from the
// provider and reduces them to a feed document. A game whose odds request
// fails is skipped and reported; only the schedule call itself is fatal.
type Fetcher struct {
	Client *oddsapi.Client
	Sport  string
	Market string
	Loc    *time.Location
	Log    *zap.Logger

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

func (f *Fetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// FetchDay builds the feed for the current day in the feed timezone.
func (f *Fetcher) FetchDay(ctx context.Context) (*Feed, error) {
	now := f.now()
	from, to := oddsapi.DayWindow(now, f.Loc)

	events, err := f.Client.Events(ctx, f.Sport, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}

	f.Log.Info("schedule fetched",
		zap.Int("games", len(events)),
		zap.String("date", now.In(f.Loc).Format("2006-01-02")),
	)

	aggs := make([]props.GameAggregate, 0, len(events))
	for _, ev := range events {
		game := props.GameInfo{
			EventID:   ev.ID,
			AwayTeam:  ev.AwayTeam,
			HomeTeam:  ev.HomeTeam,
			StartTime: ev.CommenceTime,
		}

		odds, err := f.Client.EventOdds(ctx, f.Sport, ev.ID, f.Market)
		if err != nil {
			f.Log.Warn("event odds fetch failed, skipping game",
				zap.String("event_id", ev.ID),
				zap.String("matchup", game.Matchup()),
				zap.Error(err),
			)
			aggs = append(aggs, props.BuildGameAggregate(game, nil))
			continue
		}

		var obs []props.Observation
		if odds != nil {
			obs = odds.Observations(f.Market)
		}

		agg := props.BuildGameAggregate(game, obs)
		if agg.Dropped > 0 {
			f.Log.Debug("malformed outcomes dropped",
				zap.String("event_id", ev.ID),
				zap.Int("dropped", agg.Dropped),
			)
		}
		aggs = append(aggs, agg)
	}

	return Build(aggs, now, f.Loc), nil
}
