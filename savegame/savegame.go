// Package savegame stores games under a save directory, one YAML file per
// named save.
package savegame

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/hangman/game"
)

const (
	FileExtension = ".yaml"
	formatVersion = 1
)

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrExists      = errors.New("a saved game with this name already exists")
	ErrCorrupt     = errors.New("saved game is corrupt")
)

// envelope is the on-disk layout. Checksum is the xxhash64 of the YAML
// encoding of Game.
type envelope struct {
	Format   int           `yaml:"format"`
	Checksum string        `yaml:"checksum"`
	Game     game.Snapshot `yaml:"game"`
}

// ValidName reports whether name may be used for a save. Only lowercase
// ASCII letters, digits and underscores are allowed.
func ValidName(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	for _, c := range name {
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_') {
			return ErrInvalidName
		}
	}
	return nil
}

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+FileExtension)
}

func (s *Store) Exists(name string) (bool, error) {
	if err := ValidName(name); err != nil {
		return false, err
	}
	_, err := os.Stat(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func checksum(snap game.Snapshot) (string, error) {
	bts, err := yaml.Marshal(snap)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(bts)), nil
}

// Save writes snap under name. An existing save is only replaced if
// overwrite is set. The file is written to a temporary name first and
// renamed into place, so a failed save leaves any previous file intact.
func (s *Store) Save(name string, snap game.Snapshot, overwrite bool) error {
	exists, err := s.Exists(name)
	if err != nil {
		return err
	}
	if exists && !overwrite {
		return ErrExists
	}
	sum, err := checksum(snap)
	if err != nil {
		return err
	}
	bts, err := yaml.Marshal(envelope{Format: formatVersion, Checksum: sum, Game: snap})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}
	f, err := os.CreateTemp(s.dir, ".save-*")
	if err != nil {
		return fmt.Errorf("creating save file: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := f.Write(bts); err != nil {
		f.Close()
		return fmt.Errorf("writing save file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("writing save file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing save file: %w", err)
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		return fmt.Errorf("writing save file: %w", err)
	}
	log.Info().Str("name", name).Str("dir", s.dir).Bool("overwrite", exists).Msg("saved-game")
	return nil
}

// List returns the names of all saves, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing saved games: %w", err)
	}
	names := []string{}
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), FileExtension) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), FileExtension)
		if ValidName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// Load reads the save called name and restores the game from it.
func (s *Store) Load(name string) (*game.Game, error) {
	if err := ValidName(name); err != nil {
		return nil, err
	}
	bts, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("reading saved game: %w", err)
	}
	var env envelope
	if err := yaml.Unmarshal(bts, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if env.Format != formatVersion {
		return nil, fmt.Errorf("%w: unknown format %d", ErrCorrupt, env.Format)
	}
	sum, err := checksum(env.Game)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if sum != env.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	g, err := game.FromSnapshot(env.Game)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	log.Info().Str("name", name).Int("turn", g.Turn()).Msg("loaded-game")
	return g, nil
}
