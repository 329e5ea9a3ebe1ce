package props

import (
	"sort"
	"time"
)

// Side of an over/under proposition.
type Side string

const (
	SideOver  Side = "Over"
	SideUnder Side = "Under"
)

// Observation is a single bookmaker's quote for one side of one pitcher's
// strikeout line in one game.
type Observation struct {
	Pitcher string
	Line    float64
	Side    Side
	Price   int // American odds; never 0 in valid data
	Book    string
}

// valid reports whether the observation carries every field the grouping
// needs. Sportsbook feeds routinely ship partial outcomes; those are
// dropped, not surfaced as errors.
func (o Observation) valid() bool {
	if o.Pitcher == "" || o.Book == "" || o.Price == 0 {
		return false
	}
	return o.Side == SideOver || o.Side == SideUnder
}

// PropKey identifies one proposition inside one game.
type PropKey struct {
	Pitcher string
	Line    float64
}

// BookOdds is one sportsbook's over/under pair for a proposition. A side
// the book did not quote stays nil.
type BookOdds struct {
	Over  *int `json:"over,omitempty"`
	Under *int `json:"under,omitempty"`
}

// PropGroup accumulates every observation for one (pitcher, line) key: the
// raw over and under quotes, the set of contributing sportsbooks and the
// per-book breakdown.
type PropGroup struct {
	Pitcher   string
	Line      float64
	OverOdds  []int
	UnderOdds []int
	PerBook   map[string]*BookOdds

	books map[string]struct{}
}

func newPropGroup(key PropKey) *PropGroup {
	return &PropGroup{
		Pitcher: key.Pitcher,
		Line:    key.Line,
		PerBook: make(map[string]*BookOdds),
		books:   make(map[string]struct{}),
	}
}

func (g *PropGroup) add(o Observation) {
	price := o.Price

	entry := g.PerBook[o.Book]
	if entry == nil {
		entry = &BookOdds{}
		g.PerBook[o.Book] = entry
	}

	switch o.Side {
	case SideOver:
		g.OverOdds = append(g.OverOdds, price)
		entry.Over = &price
	case SideUnder:
		g.UnderOdds = append(g.UnderOdds, price)
		entry.Under = &price
	}

	g.books[o.Book] = struct{}{}
}

// Books returns the contributing sportsbook names sorted ascending, so the
// serialized order is reproducible regardless of map iteration order.
func (g *PropGroup) Books() []string {
	names := make([]string, 0, len(g.books))
	for b := range g.books {
		names = append(names, b)
	}
	sort.Strings(names)
	return names
}

// BookCount is the number of distinct sportsbooks quoting either side.
func (g *PropGroup) BookCount() int {
	return len(g.books)
}

// ConsensusOdds holds the probability-space average per side. A side with
// no quotes stays nil.
type ConsensusOdds struct {
	Over  *int
	Under *int
}

// Consensus computes the group's consensus quote for each side.
func (g *PropGroup) Consensus() ConsensusOdds {
	return ConsensusOdds{
		Over:  Consensus(g.OverOdds),
		Under: Consensus(g.UnderOdds),
	}
}

// GroupByProposition partitions observations by (pitcher, line). Malformed
// observations are discarded; the second return value reports how many, so
// callers can log the drop rate without treating it as a failure.
func GroupByProposition(obs []Observation) (map[PropKey]*PropGroup, int) {
	groups := make(map[PropKey]*PropGroup)
	dropped := 0

	for _, o := range obs {
		if !o.valid() {
			dropped++
			continue
		}

		key := PropKey{Pitcher: o.Pitcher, Line: o.Line}
		g := groups[key]
		if g == nil {
			g = newPropGroup(key)
			groups[key] = g
		}
		g.add(o)
	}

	return groups, dropped
}

// SelectPrimaryLine picks the most widely quoted line when a pitcher has
// several lines posted in the same game: greatest total sportsbook count
// wins, and ties go to the lowest line value so a rerun on the same input
// is deterministic. Returns nil for an empty slice.
func SelectPrimaryLine(groups []*PropGroup) *PropGroup {
	if len(groups) == 0 {
		return nil
	}
	if len(groups) == 1 {
		return groups[0]
	}

	best := groups[0]
	for _, g := range groups[1:] {
		if g.BookCount() > best.BookCount() {
			best = g
			continue
		}
		if g.BookCount() == best.BookCount() && g.Line < best.Line {
			best = g
		}
	}
	return best
}

// GameInfo is the schedule metadata for one game.
type GameInfo struct {
	EventID   string
	AwayTeam  string
	HomeTeam  string
	StartTime time.Time
}

// Matchup renders the conventional "Away @ Home" label.
func (g GameInfo) Matchup() string {
	return g.AwayTeam + " @ " + g.HomeTeam
}

// Entry is one pitcher's primary-line proposition with consensus attached.
type Entry struct {
	Pitcher   string
	Line      float64
	Consensus ConsensusOdds
	Books     []string
	BookCount int
	PerBook   map[string]*BookOdds
	OverOdds  []int
	UnderOdds []int
}

// GameAggregate is one game's metadata plus its pitcher entries, reduced to
// the primary line per pitcher and sorted by pitcher name.
type GameAggregate struct {
	Game    GameInfo
	Entries []Entry
	Dropped int // malformed observations discarded while grouping
}

// BuildGameAggregate reduces the raw observations for one game to one entry
// per pitcher: group by (pitcher, line), compute consensus per group,
// collapse each pitcher to the primary line, then sort by pitcher name
// (ordinal, ascending). An empty observation set yields an aggregate with
// no entries, which is the normal state before props are posted.
func BuildGameAggregate(game GameInfo, obs []Observation) GameAggregate {
	groups, dropped := GroupByProposition(obs)

	byPitcher := make(map[string][]*PropGroup)
	for _, g := range groups {
		byPitcher[g.Pitcher] = append(byPitcher[g.Pitcher], g)
	}

	entries := make([]Entry, 0, len(byPitcher))
	for _, pitcherGroups := range byPitcher {
		g := SelectPrimaryLine(pitcherGroups)
		if g == nil {
			continue
		}
		entries = append(entries, Entry{
			Pitcher:   g.Pitcher,
			Line:      g.Line,
			Consensus: g.Consensus(),
			Books:     g.Books(),
			BookCount: g.BookCount(),
			PerBook:   g.PerBook,
			OverOdds:  g.OverOdds,
			UnderOdds: g.UnderOdds,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Pitcher < entries[j].Pitcher
	})

	return GameAggregate{Game: game, Entries: entries, Dropped: dropped}
}

// SortAggregates orders games by start time, then by matchup label for
// games sharing a slot, matching the feed's presentation order.
func SortAggregates(aggs []GameAggregate) {
	sort.Slice(aggs, func(i, j int) bool {
		if !aggs[i].Game.StartTime.Equal(aggs[j].Game.StartTime) {
			return aggs[i].Game.StartTime.Before(aggs[j].Game.StartTime)
		}
		return aggs[i].Game.Matchup() < aggs[j].Game.Matchup()
	})
}
