package game

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/domino14/hangman/dictionary"
)

// SnapshotVersion is the current version of the Snapshot layout.
const SnapshotVersion = 1

var ErrInvalidSnapshot = errors.New("invalid game snapshot")

// Snapshot is the persisted form of a Game. Alphabet and Guessed hold one
// character per rune; Guessed is in guess order.
type Snapshot struct {
	Version  int    `yaml:"version"`
	Word     string `yaml:"word"`
	Alphabet string `yaml:"alphabet"`
	Guessed  string `yaml:"guessed"`
	Turn     int    `yaml:"turn"`
	Over     bool   `yaml:"over"`
	State    string `yaml:"state"`
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Version:  SnapshotVersion,
		Word:     g.word,
		Alphabet: string(g.alphabet),
		Guessed:  string(g.guessed),
		Turn:     g.turn,
		Over:     g.Over(),
		State:    g.playing.String(),
	}
}

func invalid(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSnapshot, fmt.Sprintf(format, a...))
}

// FromSnapshot restores a game, checking that the snapshot describes a state
// the game could actually have reached.
func FromSnapshot(s Snapshot) (*Game, error) {
	if s.Version != SnapshotVersion {
		return nil, invalid("unsupported version %d", s.Version)
	}
	n := utf8.RuneCountInString(s.Word)
	if n < dictionary.MinWordLength || n > dictionary.MaxWordLength {
		return nil, invalid("word has %d letters", n)
	}
	alphabet := []rune(s.Alphabet)
	if !slices.IsSorted(alphabet) || len(slices.Compact(slices.Clone(alphabet))) != len(alphabet) {
		return nil, invalid("alphabet is not a sorted set")
	}
	inAlphabet := func(r rune) bool {
		_, found := slices.BinarySearch(alphabet, r)
		return found
	}
	for _, r := range s.Word {
		if !inAlphabet(r) {
			return nil, invalid("word letter %q not in alphabet", r)
		}
	}
	guessed := []rune(s.Guessed)
	misses := 0
	for i, r := range guessed {
		if !inAlphabet(r) {
			return nil, invalid("guess %q not in alphabet", r)
		}
		if slices.Contains(guessed[:i], r) {
			return nil, invalid("guess %q repeated", r)
		}
		if !strings.ContainsRune(s.Word, r) {
			misses++
		}
	}
	if s.Turn != misses || s.Turn > MaxTurns-1 {
		return nil, invalid("turn %d does not match %d misses", s.Turn, misses)
	}
	playing, ok := playStateFromString(s.State)
	if !ok {
		return nil, invalid("unknown state %q", s.State)
	}
	if s.Over != (playing != InProgress) {
		return nil, invalid("over flag disagrees with state %q", s.State)
	}

	g := &Game{
		word:     s.Word,
		alphabet: alphabet,
		guessed:  guessed,
		turn:     s.Turn,
		playing:  playing,
	}
	switch {
	case playing == Won && !g.complete():
		return nil, invalid("won with letters left to guess")
	case playing == Lost && (g.complete() || g.turn != MaxTurns-1):
		return nil, invalid("lost before the last stage")
	}
	return g, nil
}
