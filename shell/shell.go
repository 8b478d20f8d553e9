package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/domino14/hangman/cache"
	"github.com/domino14/hangman/config"
	"github.com/domino14/hangman/game"
	"github.com/domino14/hangman/savegame"
	"github.com/domino14/hangman/stats"
)

// errExit ends the session; it is returned when input is closed or
// interrupted.
var errExit = errors.New("exiting")

// lineReader is the part of *readline.Instance the shell uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(p string)
	Close() error
}

type ShellController struct {
	l   lineReader
	out io.Writer

	config *config.Config

	store *savegame.Store
	stats *stats.Recorder
	src   game.Source
	game  *game.Game
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func newController(l lineReader, out io.Writer, cfg *config.Config, src game.Source) *ShellController {
	sc := &ShellController{
		l:      l,
		out:    out,
		config: cfg,
		store:  savegame.NewStore(cfg.SaveDir()),
		src:    src,
	}
	rec, err := stats.Open(cfg.StatsDBPath())
	if err != nil {
		log.Error().Err(err).Msg("statistics will not be recorded")
	} else {
		sc.stats = rec
	}
	return sc
}

func NewShellController(cfg *config.Config) *ShellController {
	sc := newController(nil, nil, cfg, game.NewRandSource(cfg.GetInt64(config.ConfigSeed)))

	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mhangman>\033[0m ",
		HistoryFile:     cfg.GetString(config.ConfigHistoryFile),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stdout()
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// readLine shows prompt and returns the line typed in response, untrimmed.
// Ctrl-C on an empty line or EOF ends the session; Ctrl-C with text typed
// discards the text and asks again.
func (sc *ShellController) readLine(prompt string) (string, error) {
	sc.l.SetPrompt(prompt)
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return "", errExit
			}
			continue
		} else if err == io.EOF {
			return "", errExit
		} else if err != nil {
			return "", err
		}
		return line, nil
	}
}

// ask shows prompt and returns the trimmed line typed in response.
func (sc *ShellController) ask(prompt string) (string, error) {
	line, err := sc.readLine(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question; only "y" counts as yes.
func (sc *ShellController) confirm(prompt string) (bool, error) {
	ans, err := sc.ask(prompt)
	if err != nil {
		return false, err
	}
	return strings.ToLower(ans) == "y", nil
}

// Loop runs the session until the player leaves, then signals the caller.
func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	err := sc.session()
	if err != nil && !errors.Is(err, errExit) {
		log.Error().Err(err).Msg("")
	}
	log.Debug().Msgf("Exiting readline loop...")
	sig <- syscall.SIGINT
}

func (sc *ShellController) Cleanup() {
	if sc.stats != nil {
		if err := sc.stats.Close(); err != nil {
			log.Error().Err(err).Msg("closing stats database")
		}
	}
}

func (sc *ShellController) session() error {
	sc.showMessage("\n\nH A N G M A N\n\n")
	for {
		g, err := sc.menu()
		if err != nil {
			return err
		}
		if g == nil {
			continue
		}
		sc.game = g
		if err := sc.playGame(); err != nil {
			return err
		}
		again, err := sc.confirm("Play again? (y/n) >>> ")
		if err != nil || !again {
			return err
		}
	}
}

// menu returns the game to play, or nil if the chosen action did not
// produce one.
func (sc *ShellController) menu() (*game.Game, error) {
	sc.showMessage("Welcome! What do you want to do?\n1: New game\n2: Load saved game\n")
	choice := ""
	for choice != "1" && choice != "2" {
		var err error
		choice, err = sc.ask("Input your choice (1 or 2) >>> ")
		if err != nil {
			return nil, err
		}
	}
	if choice == "2" {
		return sc.loadGame()
	}
	g, err := sc.newGame()
	if err != nil {
		sc.showError(err)
		return nil, nil
	}
	return g, nil
}

func (sc *ShellController) newGame() (*game.Game, error) {
	dict, err := cache.Dictionary(sc.config.WordListPath())
	if err != nil {
		return nil, err
	}
	return game.New(dict, sc.src)
}

func (sc *ShellController) loadGame() (*game.Game, error) {
	names, err := sc.store.List()
	if err != nil {
		sc.showError(err)
		return nil, nil
	}
	if len(names) == 0 {
		sc.showMessage("There are no games saved.")
		return nil, nil
	}
	var sb strings.Builder
	sb.WriteString("\nSave games available:\n")
	for i, n := range names {
		fmt.Fprintf(&sb, "%d - %s\n", i+1, n)
	}
	sc.showMessage(sb.String())

	var idx int
	for {
		in, err := sc.ask(fmt.Sprintf("\nPick a number to load from 1 - %d >>> ", len(names)))
		if err != nil {
			return nil, err
		}
		idx, err = strconv.Atoi(in)
		if err == nil && idx >= 1 && idx <= len(names) {
			break
		}
	}
	g, err := sc.store.Load(names[idx-1])
	if err != nil {
		sc.showError(err)
		return nil, nil
	}
	if g.Over() {
		sc.showMessage("That game is already over.")
		return nil, nil
	}
	return g, nil
}

func (sc *ShellController) playGame() error {
	for !sc.game.Over() {
		if err := sc.playTurn(); err != nil {
			return err
		}
	}
	sc.recordStats()
	return nil
}

// playTurn plays one turn: show the board, end the game if it was won or
// lost, otherwise keep reading input until a guess is accepted or the
// player quits. Saving, help and stats do not use up the turn.
func (sc *ShellController) playTurn() error {
	usage(sc.out, "turn")
	sc.showMessage(sc.game.ToDisplayText())

	switch sc.game.Evaluate() {
	case game.Won:
		sc.showMessage("You won!")
		return nil
	case game.Lost:
		sc.showMessage("You lost! The word was " + sc.game.Word() + ".")
		return nil
	}

	for {
		raw, err := sc.readLine("Input a letter >>> ")
		if err != nil {
			return err
		}
		line := strings.TrimSpace(raw)
		// A line that does not parse as a command is still a guess.
		cmd, _ := extractFields(line)
		if cmd != nil {
			handled, err := sc.turnCommand(cmd)
			if err != nil {
				return err
			}
			if sc.game.Over() {
				return nil
			}
			if handled {
				continue
			}
		}

		// Surrounding blanks are ignored, unless the blank is the guess:
		// word lists may contain words with spaces in them.
		guess := line
		if guess == "" {
			guess = raw
		}
		r, err := sc.game.Guess(guess)
		var verr *game.ValidationError
		if errors.As(err, &verr) {
			sc.showMessage(verr.Error() + "\n")
			continue
		} else if err != nil {
			return err
		}
		sc.showMessage(fmt.Sprintf("You guessed %s.", game.DisplayRune(r)))
		return nil
	}
}

func (sc *ShellController) recordStats() {
	if sc.stats == nil {
		return
	}
	ctx := context.Background()
	if err := sc.stats.Record(ctx, stats.ResultOf(sc.game)); err != nil {
		log.Error().Err(err).Msg("could not record game")
		return
	}
	sc.showStats()
}

func (sc *ShellController) showStats() {
	if sc.stats == nil {
		sc.showMessage("Statistics are not available.")
		return
	}
	summary, err := sc.stats.Summary(context.Background())
	if err != nil {
		sc.showError(err)
		return
	}
	sc.showMessage(summary.String())
}
