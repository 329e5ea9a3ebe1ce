package feed

import (
	"time"

	"github.com/strikeoutcenter/propsfeed/internal/props"
)

// Wire shape of the published feed document. Field names are the public
// contract for downstream consumers of the static JSON artifacts, so they
// stay snake_case and stable.

type Metadata struct {
	GeneratedAt          time.Time `json:"generated_at"`
	GeneratedAtFormatted string    `json:"generated_at_formatted"`
	Date                 string    `json:"date"` // "2006-01-02" in the feed timezone
	Timezone             string    `json:"timezone"`
}

type Summary struct {
	TotalGames     int `json:"total_games"`
	TotalPitchers  int `json:"total_pitchers"`
	GamesWithProps int `json:"games_with_props"`
}

type ConsensusOdds struct {
	Over           *int   `json:"over"`
	Under          *int   `json:"under"`
	OverFormatted  string `json:"over_formatted"`
	UnderFormatted string `json:"under_formatted"`
}

type RawOdds struct {
	OverOdds  []int `json:"over_odds"`
	UnderOdds []int `json:"under_odds"`
}

type PitcherProp struct {
	PitcherName     string                     `json:"pitcher_name"`
	StrikeoutLine   float64                    `json:"strikeout_line"`
	ConsensusOdds   ConsensusOdds              `json:"consensus_odds"`
	Sportsbooks     []string                   `json:"sportsbooks"`
	SportsbookCount int                        `json:"sportsbook_count"`
	IndividualOdds  map[string]*props.BookOdds `json:"individual_odds"`
	RawOdds         RawOdds                    `json:"raw_odds"`
}

type Game struct {
	EventID           string        `json:"event_id"`
	AwayTeam          string        `json:"away_team"`
	HomeTeam          string        `json:"home_team"`
	Matchup           string        `json:"matchup"`
	GameTime          time.Time     `json:"game_time"`
	GameTimeFormatted string        `json:"game_time_formatted"`
	Pitchers          []PitcherProp `json:"pitchers"`
}

type Feed struct {
	Metadata Metadata `json:"metadata"`
	Summary  Summary  `json:"summary"`
	Games    []Game   `json:"games"`
}

const (
	generatedAtLayout = "Monday, January 2, 2006 at 3:04 PM MST"
	gameTimeLayout    = "03:04 PM MST"
)

// Build assembles the feed document from per-game aggregates. Games are
// ordered by start time; pitcher entries inside each game are already
// name-sorted by the aggregation. An empty schedule produces a valid empty
// document with zeroed summary counts.
func Build(aggs []props.GameAggregate, now time.Time, loc *time.Location) *Feed {
	props.SortAggregates(aggs)

	localNow := now.In(loc)

	f := &Feed{
		Metadata: Metadata{
			GeneratedAt:          localNow,
			GeneratedAtFormatted: localNow.Format(generatedAtLayout),
			Date:                 localNow.Format("2006-01-02"),
			Timezone:             loc.String(),
		},
		Games: make([]Game, 0, len(aggs)),
	}

	for _, agg := range aggs {
		start := agg.Game.StartTime.In(loc)

		game := Game{
			EventID:           agg.Game.EventID,
			AwayTeam:          agg.Game.AwayTeam,
			HomeTeam:          agg.Game.HomeTeam,
			Matchup:           agg.Game.Matchup(),
			GameTime:          start,
			GameTimeFormatted: start.Format(gameTimeLayout),
			Pitchers:          make([]PitcherProp, 0, len(agg.Entries)),
		}

		for _, e := range agg.Entries {
			game.Pitchers = append(game.Pitchers, PitcherProp{
				PitcherName:   e.Pitcher,
				StrikeoutLine: e.Line,
				ConsensusOdds: ConsensusOdds{
					Over:           e.Consensus.Over,
					Under:          e.Consensus.Under,
					OverFormatted:  props.FormatAmerican(e.Consensus.Over),
					UnderFormatted: props.FormatAmerican(e.Consensus.Under),
				},
				Sportsbooks:     e.Books,
				SportsbookCount: e.BookCount,
				IndividualOdds:  e.PerBook,
				RawOdds:         RawOdds{OverOdds: e.OverOdds, UnderOdds: e.UnderOdds},
			})
		}

		f.Summary.TotalPitchers += len(game.Pitchers)
		if len(game.Pitchers) > 0 {
			f.Summary.GamesWithProps++
		}
		f.Games = append(f.Games, game)
	}

	f.Summary.TotalGames = len(f.Games)

	return f
}
