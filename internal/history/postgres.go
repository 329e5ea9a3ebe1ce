package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/strikeoutcenter/propsfeed/internal/feed"
)

// PropRecord is one pitcher-line consensus snapshot.
type PropRecord struct {
	EventID    string
	Pitcher    string
	Line       float64
	Over       *int // nil when the side had no quotes
	Under      *int
	BookCount  int
	CapturedAt time.Time
}

// Repo records consensus snapshots in Postgres: props_current keeps the
// latest quote per proposition, props_history accumulates every run so
// line movement can be reconstructed later.
type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// EnsureSchema creates the tables when they don't exist yet. Kept in code
// because the feed runs from cron-style environments with no migration
// tooling around them.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	const q = `
		CREATE TABLE IF NOT EXISTS props_current (
		  event_id    TEXT             NOT NULL,
		  pitcher     TEXT             NOT NULL,
		  line        DOUBLE PRECISION NOT NULL,
		  over_odds   INTEGER,
		  under_odds  INTEGER,
		  book_count  INTEGER          NOT NULL,
		  captured_at TIMESTAMPTZ      NOT NULL,
		  PRIMARY KEY (event_id, pitcher, line)
		);
		CREATE TABLE IF NOT EXISTS props_history (
		  id          BIGSERIAL PRIMARY KEY,
		  event_id    TEXT             NOT NULL,
		  pitcher     TEXT             NOT NULL,
		  line        DOUBLE PRECISION NOT NULL,
		  over_odds   INTEGER,
		  under_odds  INTEGER,
		  book_count  INTEGER          NOT NULL,
		  captured_at TIMESTAMPTZ      NOT NULL
		);
	`
	if _, err := r.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("ensure props schema: %w", err)
	}
	return nil
}

// UpsertCurrent inserts or refreshes the latest consensus for one
// proposition, keyed by (event_id, pitcher, line).
func (r *Repo) UpsertCurrent(ctx context.Context, rec PropRecord) error {
	const q = `
		INSERT INTO props_current
		  (event_id, pitcher, line, over_odds, under_odds, book_count, captured_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (event_id, pitcher, line) DO UPDATE SET
		  over_odds   = EXCLUDED.over_odds,
		  under_odds  = EXCLUDED.under_odds,
		  book_count  = EXCLUDED.book_count,
		  captured_at = EXCLUDED.captured_at
	`
	_, err := r.DB.ExecContext(ctx, q,
		rec.EventID, rec.Pitcher, rec.Line,
		rec.Over, rec.Under, rec.BookCount, rec.CapturedAt,
	)
	return err
}

// InsertHistory appends one snapshot row.
func (r *Repo) InsertHistory(ctx context.Context, rec PropRecord) error {
	const q = `
		INSERT INTO props_history
		  (event_id, pitcher, line, over_odds, under_odds, book_count, captured_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7)
	`
	_, err := r.DB.ExecContext(ctx, q,
		rec.EventID, rec.Pitcher, rec.Line,
		rec.Over, rec.Under, rec.BookCount, rec.CapturedAt,
	)
	return err
}

// RecordFeed walks a feed document and records every proposition, current
// and history. Returns the number of propositions recorded.
func (r *Repo) RecordFeed(ctx context.Context, f *feed.Feed) (int, error) {
	recorded := 0
	for _, g := range f.Games {
		for _, p := range g.Pitchers {
			rec := PropRecord{
				EventID:    g.EventID,
				Pitcher:    p.PitcherName,
				Line:       p.StrikeoutLine,
				Over:       p.ConsensusOdds.Over,
				Under:      p.ConsensusOdds.Under,
				BookCount:  p.SportsbookCount,
				CapturedAt: f.Metadata.GeneratedAt,
			}
			if err := r.UpsertCurrent(ctx, rec); err != nil {
				return recorded, fmt.Errorf("upsert %s/%s: %w", g.EventID, p.PitcherName, err)
			}
			if err := r.InsertHistory(ctx, rec); err != nil {
				return recorded, fmt.Errorf("history %s/%s: %w", g.EventID, p.PitcherName, err)
			}
			recorded++
		}
	}
	return recorded, nil
}
