package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/strikeoutcenter/propsfeed/internal/feed"
	"github.com/strikeoutcenter/propsfeed/internal/props"
)

// Number of entries kept on the ranking endpoints.
const rankingSize = 20

// Writer renders the public artifact directory: the JSON endpoints under
// api/v1/, the documentation page and the static-host support files. The
// layout is what GitHub Pages / Netlify style hosting serves as-is.
type Writer struct {
	Dir string
	Log *zap.Logger
}

// Endpoint filenames inside Dir.
const (
	apiDir        = "api/v1"
	fullFile      = "strikeout-props.json"
	summaryFile   = "summary.json"
	pitchersFile  = "pitchers.json"
	bestOddsFile  = "best-odds.json"
	indexFile     = "index.html"
	headersFile   = "_headers"
	readmeFile    = "README.md"
)

type summaryGame struct {
	EventID           string    `json:"event_id"`
	AwayTeam          string    `json:"away_team"`
	HomeTeam          string    `json:"home_team"`
	Matchup           string    `json:"matchup"`
	GameTime          time.Time `json:"game_time"`
	GameTimeFormatted string    `json:"game_time_formatted"`
	PitcherCount      int       `json:"pitcher_count"`
}

type summaryDoc struct {
	Metadata feed.Metadata `json:"metadata"`
	Summary  feed.Summary  `json:"summary"`
	Games    []summaryGame `json:"games"`
}

type gameInfo struct {
	Matchup  string `json:"matchup"`
	GameTime string `json:"game_time"`
	AwayTeam string `json:"away_team"`
	HomeTeam string `json:"home_team"`
}

type pitcherEntry struct {
	feed.PitcherProp
	GameInfo gameInfo `json:"game_info"`
}

type pitchersDoc struct {
	Metadata feed.Metadata  `json:"metadata"`
	Pitchers []pitcherEntry `json:"pitchers"`
}

type bestOddsDoc struct {
	Metadata      feed.Metadata      `json:"metadata"`
	BestOvers     []props.RankedProp `json:"best_overs"`
	BestUnders    []props.RankedProp `json:"best_unders"`
	MostAvailable []props.RankedProp `json:"most_available"`
}

// WriteAll renders every artifact for the given feed document and returns
// the list of files written, relative to Dir.
func (w *Writer) WriteAll(f *feed.Feed) ([]string, error) {
	if err := os.MkdirAll(filepath.Join(w.Dir, apiDir), 0o755); err != nil {
		return nil, fmt.Errorf("create public dir: %w", err)
	}

	files := []struct {
		rel string
		gen func() ([]byte, error)
	}{
		{filepath.Join(apiDir, fullFile), func() ([]byte, error) { return marshal(f) }},
		{filepath.Join(apiDir, summaryFile), func() ([]byte, error) { return marshal(buildSummary(f)) }},
		{filepath.Join(apiDir, pitchersFile), func() ([]byte, error) { return marshal(buildPitchers(f)) }},
		{filepath.Join(apiDir, bestOddsFile), func() ([]byte, error) { return marshal(buildBestOdds(f)) }},
		{indexFile, func() ([]byte, error) { return renderIndexPage(f) }},
		{headersFile, func() ([]byte, error) { return []byte(corsHeaders), nil }},
		{readmeFile, func() ([]byte, error) { return renderReadme(f), nil }},
	}

	written := make([]string, 0, len(files))
	for _, file := range files {
		b, err := file.gen()
		if err != nil {
			return written, fmt.Errorf("render %s: %w", file.rel, err)
		}
		if err := os.WriteFile(filepath.Join(w.Dir, file.rel), b, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", file.rel, err)
		}
		written = append(written, file.rel)
	}

	w.Log.Info("public feed written",
		zap.String("dir", w.Dir),
		zap.Int("files", len(written)),
		zap.Int("games", f.Summary.TotalGames),
		zap.Int("pitchers", f.Summary.TotalPitchers),
	)

	return written, nil
}

func marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func buildSummary(f *feed.Feed) summaryDoc {
	doc := summaryDoc{
		Metadata: f.Metadata,
		Summary:  f.Summary,
		Games:    make([]summaryGame, 0, len(f.Games)),
	}
	for _, g := range f.Games {
		doc.Games = append(doc.Games, summaryGame{
			EventID:           g.EventID,
			AwayTeam:          g.AwayTeam,
			HomeTeam:          g.HomeTeam,
			Matchup:           g.Matchup,
			GameTime:          g.GameTime,
			GameTimeFormatted: g.GameTimeFormatted,
			PitcherCount:      len(g.Pitchers),
		})
	}
	return doc
}

func buildPitchers(f *feed.Feed) pitchersDoc {
	doc := pitchersDoc{Metadata: f.Metadata, Pitchers: []pitcherEntry{}}
	for _, g := range f.Games {
		for _, p := range g.Pitchers {
			doc.Pitchers = append(doc.Pitchers, pitcherEntry{
				PitcherProp: p,
				GameInfo: gameInfo{
					Matchup:  g.Matchup,
					GameTime: g.GameTimeFormatted,
					AwayTeam: g.AwayTeam,
					HomeTeam: g.HomeTeam,
				},
			})
		}
	}
	return doc
}

func buildBestOdds(f *feed.Feed) bestOddsDoc {
	overs, unders := rankedProps(f)

	all := make([]props.RankedProp, 0, len(overs)+len(unders))
	all = append(all, overs...)
	all = append(all, unders...)

	return bestOddsDoc{
		Metadata:      f.Metadata,
		BestOvers:     props.BestOdds(overs, rankingSize),
		BestUnders:    props.BestOdds(unders, rankingSize),
		MostAvailable: props.MostAvailable(all, rankingSize),
	}
}

// rankedProps flattens the feed into per-side ranking inputs; an entry
// missing a side's consensus is left out of that side's list.
func rankedProps(f *feed.Feed) (overs, unders []props.RankedProp) {
	for _, g := range f.Games {
		for _, p := range g.Pitchers {
			if p.ConsensusOdds.Over != nil {
				overs = append(overs, props.RankedProp{
					Pitcher:       p.PitcherName,
					Game:          g.Matchup,
					Line:          p.StrikeoutLine,
					Odds:          *p.ConsensusOdds.Over,
					OddsFormatted: p.ConsensusOdds.OverFormatted,
					BookCount:     p.SportsbookCount,
				})
			}
			if p.ConsensusOdds.Under != nil {
				unders = append(unders, props.RankedProp{
					Pitcher:       p.PitcherName,
					Game:          g.Matchup,
					Line:          p.StrikeoutLine,
					Odds:          *p.ConsensusOdds.Under,
					OddsFormatted: p.ConsensusOdds.UnderFormatted,
					BookCount:     p.SportsbookCount,
				})
			}
		}
	}
	return overs, unders
}

const corsHeaders = `/*
  Access-Control-Allow-Origin: *
  Access-Control-Allow-Methods: GET, HEAD, OPTIONS
  Access-Control-Allow-Headers: Content-Type
  Access-Control-Max-Age: 86400

/api/*
  Content-Type: application/json
  Cache-Control: public, max-age=300
`

func renderReadme(f *feed.Feed) []byte {
	return []byte(fmt.Sprintf(`# MLB Strikeout Props Public Feed

Static JSON endpoints with consensus strikeout prop odds for today's games.

## Generated: %s

## Files
- index.html - API documentation
- api/v1/strikeout-props.json - full dataset
- api/v1/summary.json - game list with pitcher counts
- api/v1/pitchers.json - pitcher-focused view
- api/v1/best-odds.json - best odds and availability rankings

## Stats
- Total Games: %d
- Total Pitchers: %d
- Games with Props: %d

Designed to be served as-is via GitHub Pages, Netlify or similar hosting.
`,
		f.Metadata.GeneratedAtFormatted,
		f.Summary.TotalGames,
		f.Summary.TotalPitchers,
		f.Summary.GamesWithProps,
	))
}
