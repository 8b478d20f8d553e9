package stats

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/hangman/game"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Count(), len(c.scores))
	}
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	is.True(FuzzyEqual(ZVal(99), 2.5758293035489))
}

func TestProportionInterval(t *testing.T) {
	is := is.New(t)
	lo, hi := ProportionInterval(0, 0, 95)
	is.Equal(lo, 0.0)
	is.Equal(hi, 0.0)

	lo, hi = ProportionInterval(50, 100, 95)
	is.True(FuzzyEqual(lo, 0.5-1.959963984540054*0.05))
	is.True(FuzzyEqual(hi, 0.5+1.959963984540054*0.05))

	lo, hi = ProportionInterval(10, 10, 95)
	is.Equal(lo, 1.0)
	is.Equal(hi, 1.0)
}

func TestRecorder(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	rec, err := Open(filepath.Join(t.TempDir(), "stats", "hangman.db"))
	is.NoErr(err)
	defer rec.Close()

	s, err := rec.Summary(ctx)
	is.NoErr(err)
	is.Equal(s, Summary{})

	for _, r := range []Result{
		{Word: "mango", Outcome: game.Won, Misses: 1, Guesses: 6},
		{Word: "apple", Outcome: game.Won, Misses: 3, Guesses: 7},
		{Word: "grape", Outcome: game.Lost, Misses: 6, Guesses: 8},
		{Word: "lemon", Outcome: game.QuitConfirmed, Misses: 2, Guesses: 2},
	} {
		is.NoErr(rec.Record(ctx, r))
	}

	s, err = rec.Summary(ctx)
	is.NoErr(err)
	is.Equal(s.Played, 4)
	is.Equal(s.Won, 2)
	is.Equal(s.Lost, 1)
	is.Equal(s.Quit, 1)
	is.True(FuzzyEqual(s.WinRate, 2.0/3.0))
	is.True(s.WinRateLow < s.WinRate && s.WinRate < s.WinRateHigh)
	// The quit game's misses are not counted.
	is.True(FuzzyEqual(s.MissesMean, 10.0/3.0))
	is.True(FuzzyEqual(s.MissesStdev, 2.5166114784235836))
	is.True(strings.Contains(s.String(), "Games played: 4 (won 2, lost 1, quit 1)"))
}

func TestRecorderPersists(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "hangman.db")

	rec, err := Open(path)
	is.NoErr(err)
	is.NoErr(rec.Record(ctx, Result{Word: "mango", Outcome: game.Won}))
	is.NoErr(rec.Close())

	rec, err = Open(path)
	is.NoErr(err)
	defer rec.Close()
	s, err := rec.Summary(ctx)
	is.NoErr(err)
	is.Equal(s.Played, 1)
	is.Equal(s.Won, 1)
}

func TestPragmasOnEveryConnection(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	rec, err := Open(filepath.Join(t.TempDir(), "stats.db"))
	is.NoErr(err)
	defer rec.Close()

	// Hold two connections at once so the pool has to open a second one.
	c1, err := rec.db.Conn(ctx)
	is.NoErr(err)
	defer c1.Close()
	c2, err := rec.db.Conn(ctx)
	is.NoErr(err)
	defer c2.Close()

	for _, c := range []*sql.Conn{c1, c2} {
		var timeout int
		is.NoErr(c.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout))
		is.Equal(timeout, 5000)
		var mode string
		is.NoErr(c.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
		is.Equal(strings.ToLower(mode), "wal")
	}
}
