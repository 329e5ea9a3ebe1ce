package events

import "time"

// Event published on the "props_feed_refreshed" topic
type FeedRefreshed struct {
	Date           string    `json:"date"` // feed date, "2006-01-02"
	GeneratedAt    time.Time `json:"generated_at"`
	TotalGames     int       `json:"total_games"`
	TotalPitchers  int       `json:"total_pitchers"`
	GamesWithProps int       `json:"games_with_props"`
	PublicDir      string    `json:"public_dir"`
	Source         string    `json:"source"` // "feed-publisher"
}
