package export

import (
	"bytes"
	"html/template"

	"github.com/strikeoutcenter/propsfeed/internal/feed"
)

// Documentation page served at the root of the public directory. Kept
// self-contained: no external assets, so it works from any static host.
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>MLB Strikeout Props API</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 1000px; margin: 0 auto; padding: 20px; }
        .endpoint { background: #f5f5f5; padding: 15px; margin: 10px 0; border-radius: 5px; }
        .url { background: #333; color: #fff; padding: 5px 10px; border-radius: 3px; font-family: monospace; }
        code { background: #f0f0f0; padding: 2px 5px; border-radius: 3px; }
        .updated { color: #666; font-style: italic; }
    </style>
</head>
<body>
    <h1>MLB Strikeout Props JSON API</h1>

    <p class="updated">Last updated: {{.Metadata.GeneratedAtFormatted}}</p>
    <p>{{.Summary.TotalPitchers}} pitchers across {{.Summary.TotalGames}} games
       ({{.Summary.GamesWithProps}} with props posted).</p>

    <h2>Available Endpoints</h2>

    <div class="endpoint">
        <h3>Full Strikeout Props Data</h3>
        <div class="url">GET /api/v1/strikeout-props.json</div>
        <p>Complete dataset with all games, pitchers, lines and consensus odds
           from multiple sportsbooks, including the per-book breakdown.</p>
    </div>

    <div class="endpoint">
        <h3>Summary Data</h3>
        <div class="url">GET /api/v1/summary.json</div>
        <p>Lightweight game list with pitcher counts and no odds data.</p>
    </div>

    <div class="endpoint">
        <h3>Pitchers Only</h3>
        <div class="url">GET /api/v1/pitchers.json</div>
        <p>All pitcher props flattened with game context, for pitcher-focused views.</p>
    </div>

    <div class="endpoint">
        <h3>Best Odds</h3>
        <div class="url">GET /api/v1/best-odds.json</div>
        <p>Top {{.RankingSize}} overs and unders by consensus odds value, plus the
           most widely quoted props by sportsbook count.</p>
    </div>

    <h2>Data Freshness</h2>
    <ul>
        <li>Data refreshes multiple times per day</li>
        <li>Covers only the current day's games ({{.Metadata.Timezone}})</li>
        <li>Consensus odds are probability-space averages across available sportsbooks</li>
        <li>Props for games already underway are carried forward from earlier in the day</li>
    </ul>

    <h2>Response Format</h2>
    <p>Every endpoint returns JSON with the same envelope:</p>
    <ul>
        <li><code>metadata</code>: generation timestamp, feed date, timezone</li>
        <li><code>summary</code>: total counts (full and summary feeds)</li>
        <li><code>games</code> or <code>pitchers</code>: main data arrays</li>
    </ul>

    <h2>CORS</h2>
    <p>All endpoints allow cross-origin GET requests; responses are cacheable for five minutes.</p>
</body>
</html>
`))

type indexPageData struct {
	Metadata    feed.Metadata
	Summary     feed.Summary
	RankingSize int
}

func renderIndexPage(f *feed.Feed) ([]byte, error) {
	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, indexPageData{
		Metadata:    f.Metadata,
		Summary:     f.Summary,
		RankingSize: rankingSize,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
