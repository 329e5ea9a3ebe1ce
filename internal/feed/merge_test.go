package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedWithGame(date string, eventID string, gameTime time.Time, pitchers ...PitcherProp) *Feed {
	f := &Feed{
		Metadata: Metadata{Date: date},
		Games: []Game{
			{EventID: eventID, GameTime: gameTime, Pitchers: pitchers},
		},
	}
	recountSummary(f)
	return f
}

func prop(name string) PitcherProp {
	return PitcherProp{PitcherName: name, StrikeoutLine: 5.5}
}

func TestMergeWithCached(t *testing.T) {
	gameTime := time.Date(2025, 6, 3, 23, 10, 0, 0, time.UTC)
	afterStart := gameTime.Add(30 * time.Minute)
	beforeStart := gameTime.Add(-2 * time.Hour)

	t.Run("no cached feed", func(t *testing.T) {
		fresh := feedWithGame("2025-06-03", "evt-1", gameTime)
		assert.Same(t, fresh, MergeWithCached(fresh, nil, afterStart))
	})

	t.Run("cached feed from another day is ignored", func(t *testing.T) {
		fresh := feedWithGame("2025-06-03", "evt-1", gameTime)
		cached := feedWithGame("2025-06-02", "evt-1", gameTime, prop("J. Doe"))

		got := MergeWithCached(fresh, cached, afterStart)
		assert.Empty(t, got.Games[0].Pitchers)
	})

	t.Run("started game inherits cached props", func(t *testing.T) {
		fresh := feedWithGame("2025-06-03", "evt-1", gameTime)
		cached := feedWithGame("2025-06-03", "evt-1", gameTime, prop("J. Doe"))

		got := MergeWithCached(fresh, cached, afterStart)

		require.Len(t, got.Games[0].Pitchers, 1)
		assert.Equal(t, "J. Doe", got.Games[0].Pitchers[0].PitcherName)
		assert.Equal(t, Summary{TotalGames: 1, TotalPitchers: 1, GamesWithProps: 1}, got.Summary)
	})

	t.Run("unstarted game stays empty", func(t *testing.T) {
		fresh := feedWithGame("2025-06-03", "evt-1", gameTime)
		cached := feedWithGame("2025-06-03", "evt-1", gameTime, prop("J. Doe"))

		got := MergeWithCached(fresh, cached, beforeStart)
		assert.Empty(t, got.Games[0].Pitchers)
	})

	t.Run("fresh props always win", func(t *testing.T) {
		fresh := feedWithGame("2025-06-03", "evt-1", gameTime, prop("R. Roe"))
		cached := feedWithGame("2025-06-03", "evt-1", gameTime, prop("J. Doe"))

		got := MergeWithCached(fresh, cached, afterStart)

		require.Len(t, got.Games[0].Pitchers, 1)
		assert.Equal(t, "R. Roe", got.Games[0].Pitchers[0].PitcherName)
	})
}

func TestMergeWithCached_NilFresh(t *testing.T) {
	cached := feedWithGame("2025-06-03", "evt-1", time.Now())
	assert.Same(t, cached, MergeWithCached(nil, cached, time.Now()))
}
