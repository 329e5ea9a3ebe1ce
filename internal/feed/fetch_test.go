package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/strikeoutcenter/propsfeed/internal/oddsapi"
)

func TestFetcher_FetchDay(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sports/baseball_mlb/events", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": "evt-1", "commence_time": "2025-06-03T23:10:00Z",
			 "home_team": "New York Mets", "away_team": "Philadelphia Phillies"},
			{"id": "evt-2", "commence_time": "2025-06-04T02:10:00Z",
			 "home_team": "Los Angeles Dodgers", "away_team": "San Diego Padres"}
		]`))
	})
	mux.HandleFunc("/sports/baseball_mlb/events/evt-1/odds", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"id": "evt-1",
			"bookmakers": [
				{"title": "Book A", "markets": [{"key": "pitcher_strikeouts", "outcomes": [
					{"name": "Over", "description": "J. Doe", "price": -120, "point": 5.5},
					{"name": "Under", "description": "J. Doe", "price": 100, "point": 5.5}
				]}]},
				{"title": "Book B", "markets": [{"key": "pitcher_strikeouts", "outcomes": [
					{"name": "Over", "description": "J. Doe", "price": -115, "point": 5.5},
					{"name": "Under", "description": "J. Doe", "price": -105, "point": 5.5}
				]}]}
			]
		}`))
	})
	mux.HandleFunc("/sports/baseball_mlb/events/evt-2/odds", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity) // props not posted
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	loc := eastern(t)
	fetcher := &Fetcher{
		Client: oddsapi.New(srv.URL, "test-key", "us", zap.NewNop()),
		Sport:  "baseball_mlb",
		Market: "pitcher_strikeouts",
		Loc:    loc,
		Log:    zap.NewNop(),
		Now: func() time.Time {
			return time.Date(2025, 6, 3, 16, 0, 0, 0, loc)
		},
	}

	f, err := fetcher.FetchDay(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2025-06-03", f.Metadata.Date)
	assert.Equal(t, Summary{TotalGames: 2, TotalPitchers: 1, GamesWithProps: 1}, f.Summary)

	require.Len(t, f.Games, 2)
	game := f.Games[0]
	require.Len(t, game.Pitchers, 1)

	p := game.Pitchers[0]
	assert.Equal(t, "J. Doe", p.PitcherName)
	assert.Equal(t, 5.5, p.StrikeoutLine)
	assert.Equal(t, 2, p.SportsbookCount)
	assert.Equal(t, []string{"Book A", "Book B"}, p.Sportsbooks)

	require.NotNil(t, p.ConsensusOdds.Over)
	require.NotNil(t, p.ConsensusOdds.Under)
	assert.InDelta(t, -117, *p.ConsensusOdds.Over, 1)
	assert.InDelta(t, -102, *p.ConsensusOdds.Under, 1)

	// The 422 game still appears, just without props.
	assert.Empty(t, f.Games[1].Pitchers)
}

func TestFetcher_FetchDay_ScheduleError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	fetcher := &Fetcher{
		Client: oddsapi.New(srv.URL, "test-key", "us", zap.NewNop()),
		Sport:  "baseball_mlb",
		Market: "pitcher_strikeouts",
		Loc:    eastern(t),
		Log:    zap.NewNop(),
	}

	_, err := fetcher.FetchDay(context.Background())
	assert.Error(t, err)
}
