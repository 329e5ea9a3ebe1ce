package feed

import "time"

// MergeWithCached carries cached props forward into a fresh feed. Books
// pull player props once a game goes live, so a refresh during play would
// otherwise wipe lines the feed showed all day. A fresh game with no
// pitchers inherits the cached pitchers when the cached document is for the
// same date, has that game with props, and the game already started.
//
// The fresh document wins everywhere else. Returns fresh unchanged when
// there is nothing usable to merge.
func MergeWithCached(fresh, cached *Feed, now time.Time) *Feed {
	if fresh == nil {
		return cached
	}
	if cached == nil || cached.Metadata.Date != fresh.Metadata.Date {
		return fresh
	}

	cachedGames := make(map[string]*Game, len(cached.Games))
	for i := range cached.Games {
		cachedGames[cached.Games[i].EventID] = &cached.Games[i]
	}

	carried := 0
	for i := range fresh.Games {
		g := &fresh.Games[i]
		if len(g.Pitchers) > 0 {
			continue
		}

		prev, ok := cachedGames[g.EventID]
		if !ok || len(prev.Pitchers) == 0 {
			continue
		}
		if now.Before(g.GameTime) {
			continue // not started yet; empty means props really are gone
		}

		g.Pitchers = prev.Pitchers
		carried++
	}

	if carried > 0 {
		recountSummary(fresh)
	}
	return fresh
}

func recountSummary(f *Feed) {
	f.Summary = Summary{TotalGames: len(f.Games)}
	for _, g := range f.Games {
		f.Summary.TotalPitchers += len(g.Pitchers)
		if len(g.Pitchers) > 0 {
			f.Summary.GamesWithProps++
		}
	}
}
