package oddsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/strikeoutcenter/propsfeed/internal/props"
)

const eventsResponse = `[
	{
		"id": "evt-1",
		"sport_key": "baseball_mlb",
		"commence_time": "2025-06-03T23:10:00Z",
		"home_team": "New York Mets",
		"away_team": "Philadelphia Phillies"
	},
	{
		"id": "evt-2",
		"sport_key": "baseball_mlb",
		"commence_time": "2025-06-04T01:40:00Z",
		"home_team": "Los Angeles Dodgers",
		"away_team": "San Diego Padres"
	}
]`

const eventOddsResponse = `{
	"id": "evt-1",
	"commence_time": "2025-06-03T23:10:00Z",
	"home_team": "New York Mets",
	"away_team": "Philadelphia Phillies",
	"bookmakers": [
		{
			"key": "book_a",
			"title": "Book A",
			"markets": [
				{
					"key": "pitcher_strikeouts",
					"outcomes": [
						{"name": "Over", "description": "J. Doe", "price": -120, "point": 5.5},
						{"name": "Under", "description": "J. Doe", "price": 100, "point": 5.5},
						{"name": "Over", "description": "No Line", "price": -110}
					]
				}
			]
		}
	]
}`

func TestClient_Events(t *testing.T) {
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sports/baseball_mlb/events", r.URL.Path)
		gotQuery = map[string]string{
			"apiKey":           r.URL.Query().Get("apiKey"),
			"commenceTimeFrom": r.URL.Query().Get("commenceTimeFrom"),
			"commenceTimeTo":   r.URL.Query().Get("commenceTimeTo"),
		}
		w.Header().Set("X-Requests-Remaining", "480")
		_, _ = w.Write([]byte(eventsResponse))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "us", zap.NewNop())

	from := time.Date(2025, 6, 3, 4, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 4, 3, 59, 59, 0, time.UTC)

	events, err := c.Events(context.Background(), "baseball_mlb", from, to)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "evt-1", events[0].ID)
	assert.Equal(t, "Philadelphia Phillies", events[0].AwayTeam)
	assert.Equal(t, time.Date(2025, 6, 3, 23, 10, 0, 0, time.UTC), events[0].CommenceTime)

	assert.Equal(t, "test-key", gotQuery["apiKey"])
	assert.Equal(t, "2025-06-03T04:00:00Z", gotQuery["commenceTimeFrom"])
	assert.Equal(t, "2025-06-04T03:59:59Z", gotQuery["commenceTimeTo"])
}

func TestClient_EventOdds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sports/baseball_mlb/events/evt-1/odds", r.URL.Path)
		assert.Equal(t, "pitcher_strikeouts", r.URL.Query().Get("markets"))
		assert.Equal(t, "american", r.URL.Query().Get("oddsFormat"))
		assert.Equal(t, "us", r.URL.Query().Get("regions"))
		_, _ = w.Write([]byte(eventOddsResponse))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "us", zap.NewNop())

	odds, err := c.EventOdds(context.Background(), "baseball_mlb", "evt-1", "pitcher_strikeouts")
	require.NoError(t, err)
	require.NotNil(t, odds)
	require.Len(t, odds.Bookmakers, 1)
	assert.Equal(t, "Book A", odds.Bookmakers[0].Title)
}

func TestClient_EventOdds_MarketNotPosted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "us", zap.NewNop())

	odds, err := c.EventOdds(context.Background(), "baseball_mlb", "evt-1", "pitcher_strikeouts")
	require.NoError(t, err, "422 is the normal no-props-yet state, not a failure")
	assert.Nil(t, odds)
}

func TestClient_EventOdds_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "us", zap.NewNop())

	_, err := c.EventOdds(context.Background(), "baseball_mlb", "evt-1", "pitcher_strikeouts")
	assert.Error(t, err)
}

func TestEventOdds_Observations(t *testing.T) {
	odds := &EventOdds{
		Bookmakers: []Bookmaker{
			{
				Title: "Book A",
				Markets: []Market{
					{
						Key: "pitcher_strikeouts",
						Outcomes: []Outcome{
							{Name: "Over", Description: "J. Doe", Price: -120, Point: floatPtr(5.5)},
							{Name: "Under", Description: "J. Doe", Price: 100, Point: floatPtr(5.5)},
							{Name: "Over", Description: "No Line", Price: -110, Point: nil},
						},
					},
					{
						Key: "totals", // different market, ignored
						Outcomes: []Outcome{
							{Name: "Over", Description: "", Price: -105, Point: floatPtr(8.5)},
						},
					},
				},
			},
		},
	}

	obs := odds.Observations("pitcher_strikeouts")

	require.Len(t, obs, 2)
	assert.Equal(t, props.Observation{
		Pitcher: "J. Doe", Line: 5.5, Side: props.SideOver, Price: -120, Book: "Book A",
	}, obs[0])
	assert.Equal(t, props.SideUnder, obs[1].Side)
}

func TestDayWindow(t *testing.T) {
	eastern, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Evening UTC is still the same Eastern day.
	now := time.Date(2025, 6, 4, 2, 30, 0, 0, time.UTC) // 2025-06-03 22:30 EDT
	from, to := DayWindow(now, eastern)

	assert.Equal(t, "2025-06-03T04:00:00Z", from.UTC().Format(timeFormat))
	assert.Equal(t, "2025-06-04T03:59:59Z", to.UTC().Format(timeFormat))
}

func floatPtr(v float64) *float64 { return &v }
