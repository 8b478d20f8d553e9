package stats

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/domino14/hangman/game"
)

const schema = `CREATE TABLE IF NOT EXISTS games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	word TEXT NOT NULL,
	outcome TEXT NOT NULL,
	misses INTEGER NOT NULL,
	guesses INTEGER NOT NULL,
	finished_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_games_outcome ON games(outcome);`

const connPragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Result is one finished game.
type Result struct {
	Word    string
	Outcome game.PlayState
	Misses  int
	Guesses int
}

func ResultOf(g *game.Game) Result {
	return Result{
		Word:    g.Word(),
		Outcome: g.PlayState(),
		Misses:  len(g.Misses()),
		Guesses: len(g.Guessed()),
	}
}

// Summary aggregates every recorded game. The win rate and the misses
// statistics only count games that were won or lost.
type Summary struct {
	Played      int
	Won         int
	Lost        int
	Quit        int
	WinRate     float64
	WinRateLow  float64
	WinRateHigh float64
	MissesMean  float64
	MissesStdev float64
}

func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d (won %d, lost %d, quit %d)\n", s.Played, s.Won, s.Lost, s.Quit)
	if s.Won+s.Lost > 0 {
		fmt.Fprintf(&sb, "Win rate: %.1f%% (95%% interval %.1f%% - %.1f%%)\n",
			100*s.WinRate, 100*s.WinRateLow, 100*s.WinRateHigh)
		fmt.Fprintf(&sb, "Misses per game: %.2f ± %.2f\n", s.MissesMean, s.MissesStdev)
	}
	return sb.String()
}

// Recorder keeps finished-game results in a sqlite database.
type Recorder struct {
	db *sql.DB
}

func Open(path string) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating stats directory: %w", err)
	}
	// Pragmas in the DSN are applied to every pooled connection.
	db, err := sql.Open("sqlite", path+connPragmas)
	if err != nil {
		return nil, fmt.Errorf("opening stats database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating stats schema: %w", err)
	}
	log.Debug().Str("path", path).Msg("opened-stats-db")
	return &Recorder{db: db}, nil
}

func (r *Recorder) Record(ctx context.Context, res Result) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO games (word, outcome, misses, guesses) VALUES (?, ?, ?, ?)`,
		res.Word, res.Outcome.String(), res.Misses, res.Guesses)
	if err != nil {
		return fmt.Errorf("recording game: %w", err)
	}
	return nil
}

func (r *Recorder) Summary(ctx context.Context) (Summary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT outcome, misses FROM games ORDER BY id`)
	if err != nil {
		return Summary{}, fmt.Errorf("reading stats: %w", err)
	}
	defer rows.Close()

	var s Summary
	misses := &Statistic{}
	for rows.Next() {
		var outcome string
		var m int
		if err := rows.Scan(&outcome, &m); err != nil {
			return Summary{}, fmt.Errorf("reading stats: %w", err)
		}
		s.Played++
		switch outcome {
		case game.Won.String():
			s.Won++
		case game.Lost.String():
			s.Lost++
		default:
			s.Quit++
			continue
		}
		misses.Push(float64(m))
	}
	if err := rows.Err(); err != nil {
		return Summary{}, fmt.Errorf("reading stats: %w", err)
	}
	if decided := s.Won + s.Lost; decided > 0 {
		s.WinRate = float64(s.Won) / float64(decided)
		s.WinRateLow, s.WinRateHigh = ProportionInterval(s.Won, decided, 95)
	}
	s.MissesMean = misses.Mean()
	s.MissesStdev = misses.Stdev()
	return s, nil
}

func (r *Recorder) Close() error {
	return r.db.Close()
}
