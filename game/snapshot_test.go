package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestSnapshotRoundTrip(t *testing.T) {
	is := is.New(t)
	g := mangoGame(t)
	for _, l := range []string{"m", "e", "o"} {
		_, err := g.Guess(l)
		is.NoErr(err)
	}
	snap := g.Snapshot()
	is.Equal(snap, Snapshot{
		Version:  SnapshotVersion,
		Word:     "mango",
		Alphabet: "aeglmnopr",
		Guessed:  "meo",
		Turn:     1,
		Over:     false,
		State:    "in_progress",
	})

	restored, err := FromSnapshot(snap)
	is.NoErr(err)
	is.Equal(restored.Snapshot(), snap)

	// Both games behave identically for the same inputs.
	for _, in := range []string{"l", "l", "z", "a", "p", "n", "g"} {
		r1, err1 := g.Guess(in)
		r2, err2 := restored.Guess(in)
		is.Equal(r1, r2)
		is.Equal(err1 == nil, err2 == nil)
		is.Equal(g.Evaluate(), restored.Evaluate())
		is.Equal(g.Obfuscated(), restored.Obfuscated())
		is.Equal(g.Turn(), restored.Turn())
	}
	is.Equal(restored.PlayState(), Won)
}

func TestSnapshotTerminalState(t *testing.T) {
	is := is.New(t)
	g := mangoGame(t)
	g.Quit()
	snap := g.Snapshot()
	is.True(snap.Over)
	is.Equal(snap.State, "quit")
	restored, err := FromSnapshot(snap)
	is.NoErr(err)
	is.True(restored.Over())
	is.Equal(restored.PlayState(), QuitConfirmed)
}

func TestFromSnapshotRejects(t *testing.T) {
	is := is.New(t)
	valid := Snapshot{
		Version:  SnapshotVersion,
		Word:     "mango",
		Alphabet: "aeglmnopr",
		Guessed:  "me",
		Turn:     1,
		State:    "in_progress",
	}
	_, err := FromSnapshot(valid)
	is.NoErr(err)

	for _, tc := range []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"version", func(s *Snapshot) { s.Version = 2 }},
		{"short word", func(s *Snapshot) { s.Word = "man" }},
		{"unsorted alphabet", func(s *Snapshot) { s.Alphabet = "eaglmnopr" }},
		{"duplicate in alphabet", func(s *Snapshot) { s.Alphabet = "aaeglmnopr" }},
		{"word letter outside alphabet", func(s *Snapshot) { s.Word = "mangos" }},
		{"guess outside alphabet", func(s *Snapshot) { s.Guessed = "mz" }},
		{"repeated guess", func(s *Snapshot) { s.Guessed = "mee" }},
		{"turn does not match misses", func(s *Snapshot) { s.Turn = 3 }},
		{"unknown state", func(s *Snapshot) { s.State = "paused" }},
		{"over flag", func(s *Snapshot) { s.Over = true }},
		{"won too early", func(s *Snapshot) { s.State, s.Over = "won", true }},
		{"lost too early", func(s *Snapshot) { s.State, s.Over = "lost", true }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			s := valid
			tc.mutate(&s)
			_, err := FromSnapshot(s)
			is.True(errors.Is(err, ErrInvalidSnapshot))
		})
	}
}
