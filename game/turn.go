package game

import (
	"strings"

	"github.com/rs/zerolog/log"
)

type PlayState int

const (
	InProgress PlayState = iota
	Won
	Lost
	QuitConfirmed
)

var playStateNames = map[PlayState]string{
	InProgress:    "in_progress",
	Won:           "won",
	Lost:          "lost",
	QuitConfirmed: "quit",
}

func (p PlayState) String() string {
	if s, ok := playStateNames[p]; ok {
		return s
	}
	return "unknown"
}

func playStateFromString(s string) (PlayState, bool) {
	for k, v := range playStateNames {
		if v == s {
			return k, true
		}
	}
	return InProgress, false
}

// Evaluate runs the end-of-game checks that start every turn. A completed
// word wins even on the last stage, so the win check goes first.
func (g *Game) Evaluate() PlayState {
	if g.Over() {
		return g.playing
	}
	if g.complete() {
		g.playing = Won
		log.Debug().Int("turn", g.turn).Int("guesses", len(g.guessed)).Msg("game-won")
	} else if g.turn == MaxTurns-1 {
		g.playing = Lost
		log.Debug().Int("turn", g.turn).Msg("game-lost")
	}
	return g.playing
}

// Guess validates input and, if accepted, records it. Only a letter that is
// not in the word advances the turn. The state is untouched on rejection.
func (g *Game) Guess(input string) (rune, error) {
	if g.Over() {
		return 0, ErrGameOver
	}
	r, err := ValidateGuess(input, g.alphabet, g.guessed)
	if err != nil {
		return 0, err
	}
	hit := strings.ContainsRune(g.word, r)
	if !hit {
		g.turn++
	}
	g.guessed = append(g.guessed, r)
	log.Debug().Str("letter", string(r)).Bool("hit", hit).Int("turn", g.turn).Msg("guess")
	return r, nil
}

// Quit ends the game after the player confirmed they want to stop.
func (g *Game) Quit() {
	if g.Over() {
		return
	}
	g.playing = QuitConfirmed
	log.Debug().Int("turn", g.turn).Msg("game-quit")
}
