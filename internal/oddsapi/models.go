package oddsapi

import (
	"time"

	"github.com/strikeoutcenter/propsfeed/internal/props"
)

// Event is one scheduled game from /sports/{sport}/events.
type Event struct {
	ID           string    `json:"id"`
	SportKey     string    `json:"sport_key"`
	CommenceTime time.Time `json:"commence_time"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
}

// Outcome is one side of one participant's line as quoted by a bookmaker.
// Description carries the player name for player-prop markets; Point is the
// numeric line and is absent for moneyline-style markets.
type Outcome struct {
	Name        string   `json:"name"` // "Over" / "Under"
	Description string   `json:"description"`
	Price       int      `json:"price"` // American odds
	Point       *float64 `json:"point"`
}

type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

// EventOdds is the per-event odds response from /events/{id}/odds.
type EventOdds struct {
	ID           string      `json:"id"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Observations flattens the response into raw aggregation inputs for the
// requested market key. Outcomes with no point are skipped here because the
// line is part of the grouping key; every other malformed field is left for
// the grouping stage to discard and count.
func (e *EventOdds) Observations(marketKey string) []props.Observation {
	var obs []props.Observation

	for _, bk := range e.Bookmakers {
		for _, m := range bk.Markets {
			if m.Key != marketKey {
				continue
			}
			for _, out := range m.Outcomes {
				if out.Point == nil {
					continue
				}
				obs = append(obs, props.Observation{
					Pitcher: out.Description,
					Line:    *out.Point,
					Side:    props.Side(out.Name),
					Price:   out.Price,
					Book:    bk.Title,
				})
			}
		}
	}

	return obs
}
