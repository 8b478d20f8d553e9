package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/hangman/savegame"
)

var errNoData = errors.New("no data in this line")

type shellcmd struct {
	cmd  string
	args []string
}

// extractFields splits a line into a lowercased command name and its
// arguments. Quoted arguments are kept together.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: strings.ToLower(fields[0])}
	if len(fields) > 1 {
		cmd.args = fields[1:]
	}
	return cmd, nil
}

// turnCommand runs cmd if it is one of the commands accepted at the guess
// prompt. handled is false if the line should be treated as a guess.
func (sc *ShellController) turnCommand(cmd *shellcmd) (handled bool, err error) {
	switch cmd.cmd {
	case "save":
		return true, sc.save(cmd)
	case "quit":
		return true, sc.quit()
	case "help":
		usage(sc.out, "help")
		return true, nil
	case "stats":
		sc.showStats()
		return true, nil
	}
	return false, nil
}

func (sc *ShellController) quit() error {
	really, err := sc.confirm("Really quit? y/n >>> ")
	if err != nil {
		return err
	}
	if really {
		sc.showMessage("Thanks for playing!")
		sc.game.Quit()
	}
	return nil
}

// save asks for a name (unless one was given with the command) until it
// gets a valid one the player is happy to use, then writes the game.
// A failed write is reported; the game itself is never affected.
func (sc *ShellController) save(cmd *shellcmd) error {
	name := ""
	if len(cmd.args) > 0 {
		name = cmd.args[0]
	}
	for {
		if name == "" {
			var err error
			name, err = sc.ask("\nPick a file name (only English letters, numbers and underscores are allowed) >>> ")
			if err != nil {
				return err
			}
		}
		if savegame.ValidName(name) != nil {
			sc.showMessage("Invalid file name!")
			name = ""
			continue
		}
		exists, err := sc.store.Exists(name)
		if err != nil {
			sc.showError(err)
			return nil
		}
		if exists {
			sc.showMessage(fmt.Sprintf("There is already a saved game with the same name (%s)!", name))
			overwrite, err := sc.confirm("Do you want to overwrite? (y/n) >>> ")
			if err != nil {
				return err
			}
			if !overwrite {
				name = ""
				continue
			}
		}
		if err := sc.store.Save(name, sc.game.Snapshot(), exists); err != nil {
			log.Error().Err(err).Str("name", name).Msg("save-failed")
			sc.showError(err)
			return nil
		}
		sc.showMessage("\nGame saved successfully.\n")
		return nil
	}
}
