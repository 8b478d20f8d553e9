// Package game encapsulates the mechanics of a game of hangman: the secret
// word, the letters that may be guessed, the guesses so far and the gallows
// stage. It does no I/O; a shell drives it one turn at a time.
package game

import (
	"errors"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/domino14/hangman/dictionary"
)

// MaxTurns is the number of gallows stages. Reaching the last one without
// completing the word loses the game.
const MaxTurns = len(Stages)

var ErrGameOver = errors.New("game is over")

// Game is the internal game structure. It owns all mutable game state and
// is only changed by Guess, Evaluate and Quit.
type Game struct {
	word     string
	alphabet []rune
	guessed  []rune
	turn     int
	playing  PlayState
}

// New picks a word from dict using src. The alphabet is taken from the whole
// dictionary, not just the picked word.
func New(dict *dictionary.Dictionary, src Source) (*Game, error) {
	if dict == nil || dict.Len() == 0 {
		return nil, dictionary.ErrEmptyDictionary
	}
	words := dict.Words()
	g := &Game{
		word:     words[src.Intn(len(words))],
		alphabet: dict.Alphabet(),
		guessed:  []rune{},
		playing:  InProgress,
	}
	log.Debug().Str("dictionary", dict.Name()).Int("word-length", len([]rune(g.word))).
		Msg("new-game")
	return g, nil
}

func (g *Game) Word() string { return g.word }

func (g *Game) Alphabet() []rune { return slices.Clone(g.alphabet) }

// Guessed returns the accepted guesses in the order they were made.
func (g *Game) Guessed() []rune { return slices.Clone(g.guessed) }

// Turn returns the current gallows stage, 0 through MaxTurns-1.
func (g *Game) Turn() int { return g.turn }

func (g *Game) PlayState() PlayState { return g.playing }

func (g *Game) Over() bool { return g.playing != InProgress }

func (g *Game) hasGuessed(r rune) bool {
	return slices.Contains(g.guessed, r)
}

// complete reports whether every letter of the word has been guessed.
func (g *Game) complete() bool {
	for _, r := range g.word {
		if !g.hasGuessed(r) {
			return false
		}
	}
	return true
}
